package document

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tailored-agentic-units/layers/editor"
)

// DecodeRequests parses a request script: a JSON array of objects whose
// "type" field names the request kind and whose other fields carry its
// payload.
//
//	[
//	  {"type": "add_layers", "nodes": [{"id": "a", "kind": "leaf", "name": "A"}]},
//	  {"type": "select_layers", "ids": ["a"]},
//	  {"type": "delete_selected"}
//	]
func DecodeRequests(data []byte) ([]editor.Request, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	reqs := make([]editor.Request, 0, len(raw))
	for i, msg := range raw {
		req, err := decodeRequest(msg)
		if err != nil {
			return nil, fmt.Errorf("%w: request %d: %w", ErrInvalidRequest, i, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

var errMissingType = errors.New("missing type")

func decodeRequest(msg json.RawMessage) (editor.Request, error) {
	var envelope struct {
		Type editor.RequestKind `json:"type"`
	}
	if err := json.Unmarshal(msg, &envelope); err != nil {
		return nil, err
	}

	switch envelope.Type {
	case editor.KindAddLayers:
		return decodeAs[editor.AddLayers](msg)
	case editor.KindClearSelection:
		return editor.ClearSelection{}, nil
	case editor.KindToggleExpansion:
		return decodeAs[editor.ToggleExpansion](msg)
	case editor.KindToggleVisibility:
		return decodeAs[editor.ToggleVisibility](msg)
	case editor.KindReplaceLayer:
		return decodeAs[editor.ReplaceLayer](msg)
	case editor.KindDeleteSelected:
		return editor.DeleteSelected{}, nil
	case editor.KindSelectLayers:
		return decodeAs[editor.SelectLayers](msg)
	case editor.KindSetActiveRoot:
		return decodeAs[editor.SetActiveRoot](msg)
	case "":
		return nil, errMissingType
	default:
		return nil, fmt.Errorf("unknown type %q", envelope.Type)
	}
}

func decodeAs[R editor.Request](msg json.RawMessage) (editor.Request, error) {
	var req R
	if err := json.Unmarshal(msg, &req); err != nil {
		return nil, err
	}
	return req, nil
}
