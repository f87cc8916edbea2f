package dto

import "encoding/json"

// MaxNoteTags is the per-note tag limit.
const MaxNoteTags = 4

type CreateNoteRequest struct {
	Title      string   `json:"title" validate:"required"`
	Content    string   `json:"content" validate:"required"`
	Tags       []string `json:"tags" validate:"omitempty"`
	CategoryID *string  `json:"categoryId" validate:"omitempty,uuid"`
}

// NullableString tells an explicit JSON null apart from an absent field.
// Set is true whenever the key appeared in the body, even as null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// UpdateNoteRequest is a partial patch for title/content/categoryId. The tag
// list is always a full replace: an omitted or empty list clears every tag.
// An absent categoryId leaves the category alone; an explicit null clears it.
type UpdateNoteRequest struct {
	Title      *string        `json:"title" validate:"omitempty"`
	Content    *string        `json:"content" validate:"omitempty"`
	Tags       []string       `json:"tags" validate:"omitempty"`
	CategoryID NullableString `json:"categoryId" validate:"-"`
}
