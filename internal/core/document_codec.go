package core

import (
	"encoding/json"
	"fmt"
	"slices"
)

// DocumentList is the persisted documents collection. It decodes each element
// into its variant using the "type" tag.
type DocumentList []Document

func (l *DocumentList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(DocumentList, 0, len(raws))
	for i, raw := range raws {
		d, err := DecodeDocument(raw)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, d)
	}
	*l = out
	return nil
}

// DecodeDocument decodes a single tagged document.
func DecodeDocument(raw []byte) (Document, error) {
	var probe struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	d, err := newDocument(probe.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Index returns the position of the document with id, or -1.
func (l DocumentList) Index(id string) int {
	return slices.IndexFunc(l, func(d Document) bool { return d.Base().ID == id })
}

// OfKind returns the documents of kind in storage order.
func (l DocumentList) OfKind(kind Kind) []Document {
	out := make([]Document, 0)
	for _, d := range l {
		if d.Base().Type == kind {
			out = append(out, d)
		}
	}
	return out
}
