package interfaces

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// PropertyMap keeps page properties in the order the source declared them.
type PropertyMap = orderedmap.OrderedMap[string, any]

// NewPropertyMap returns an empty, ordered property map.
func NewPropertyMap() *PropertyMap {
	return orderedmap.New[string, any]()
}

// Block is a single node of the source content tree. Data is keyed by Type and
// holds the type specific payload (data["paragraph"]["rich_text"], ...). Blocks
// are read-only input for the engine.
type Block struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Data     map[string]any `json:"data,omitempty"`
	Children []Block        `json:"children,omitempty"`
}

// UnmarshalJSON accepts both the {"data": {...}} envelope and the native API
// form where the payload sits under a top-level key named after the block type.
func (b *Block) UnmarshalJSON(raw []byte) error {
	type envelope struct {
		ID       string         `json:"id"`
		Type     string         `json:"type"`
		Data     map[string]any `json:"data"`
		Children []Block        `json:"children"`
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unmarshal block: %w", err)
	}

	*b = Block{
		ID:       env.ID,
		Type:     env.Type,
		Data:     env.Data,
		Children: env.Children,
	}
	if b.Data != nil || b.Type == "" {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("unmarshal block fields: %w", err)
	}
	payload, ok := fields[b.Type]
	if !ok {
		return nil
	}
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return fmt.Errorf("unmarshal block %s payload: %w", b.Type, err)
	}
	b.Data = map[string]any{b.Type: value}
	return nil
}

// HasChildren reports whether the block carries nested blocks.
func (b Block) HasChildren() bool {
	return len(b.Children) > 0
}

// Page is the document header: identity, typed properties and timestamps.
// A nil Properties map means the properties could not be read.
type Page struct {
	ID             string       `json:"id"`
	Properties     *PropertyMap `json:"properties"`
	CreatedTime    string       `json:"createdTime,omitempty"`
	LastEditedTime string       `json:"lastEditedTime,omitempty"`
	URL            string       `json:"url,omitempty"`
}

// PageWithBlocks pairs a page with its top-level content blocks.
type PageWithBlocks struct {
	Page   Page    `json:"page"`
	Blocks []Block `json:"blocks"`
}

// Metadata describes a converted document. Empty timestamps are treated as absent.
type Metadata struct {
	ID             string `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	CreatedTime    string `json:"createdTime,omitempty" yaml:"created_time,omitempty"`
	LastEditedTime string `json:"lastEditedTime,omitempty" yaml:"last_edited_time,omitempty"`
}

// ConvertedDocument is the output of a page conversion.
type ConvertedDocument struct {
	Filename string   `json:"filename"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}
