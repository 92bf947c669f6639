package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/tailored-agentic-units/layers/editor"
	"github.com/tailored-agentic-units/layers/layer"
)

// render writes the forest of s as an indented outline. Containers carry a
// [-] (expanded) or [+] (collapsed) marker and the children of a collapsed
// container are not listed.
func render(w io.Writer, s *editor.Snapshot) {
	for _, root := range s.Roots() {
		renderNode(w, s, root, 0)
	}
}

func renderNode(w io.Writer, s *editor.Snapshot, n *layer.Node, depth int) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))

	collapsed := s.Collapsed().Has(n.ID())
	switch {
	case !n.IsContainer():
		b.WriteString("    ")
	case collapsed:
		b.WriteString("[+] ")
	default:
		b.WriteString("[-] ")
	}

	if s.Selected().Has(n.ID()) {
		b.WriteString("* ")
	}
	fmt.Fprintf(&b, "%s (%s %s)", n.Name(), n.Kind(), n.ID())
	if s.Hidden().Has(n.ID()) {
		b.WriteString(" (hidden)")
	}
	if n.IsRoot() && n.ID() == s.ActiveRootID() {
		b.WriteString(" <active>")
	}
	fmt.Fprintln(w, b.String())

	if collapsed {
		return
	}
	for _, c := range n.Children() {
		renderNode(w, s, c, depth+1)
	}
}
