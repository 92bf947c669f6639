// Package document persists editor snapshots: a versioned JSON wire format,
// a request script format and named document stores.
package document

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tailored-agentic-units/layers/editor"
	"github.com/tailored-agentic-units/layers/idset"
	"github.com/tailored-agentic-units/layers/layer"
)

// Version is the wire format version written by Encode and accepted by
// Decode.
const Version = 1

type wireDocument struct {
	Version      int           `json:"version"`
	ActiveRootID string        `json:"active_root_id"`
	Roots        []*layer.Node `json:"roots"`
	Selected     []string      `json:"selected"`
	Collapsed    []string      `json:"collapsed"`
	Hidden       []string      `json:"hidden"`
}

// Encode renders s in the current wire format.
func Encode(s *editor.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil snapshot", editor.ErrInvalidSnapshot)
	}
	return json.Marshal(wireDocument{
		Version:      Version,
		ActiveRootID: s.ActiveRootID(),
		Roots:        s.Roots(),
		Selected:     s.Selected().Slice(),
		Collapsed:    s.Collapsed().Slice(),
		Hidden:       s.Hidden().Slice(),
	})
}

// Decode parses a document and rebuilds its snapshot. The forest must
// satisfy every snapshot invariant; flag IDs that name no node are dropped.
func Decode(data []byte) (*editor.Snapshot, error) {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", editor.ErrInvalidSnapshot, err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, doc.Version)
	}
	return editor.Restore(doc.Roots, doc.ActiveRootID,
		idset.Of(doc.Selected...), idset.Of(doc.Collapsed...), idset.Of(doc.Hidden...))
}
