package dto

import "notehub_backend/internal/repositories"

// Page is the envelope every paginated listing returns.
type Page[T any] struct {
	Info repositories.PageInfo `json:"info"`
	Data []T                   `json:"data"`
}

func NewPage[T any](info repositories.PageInfo, data []T) *Page[T] {
	if data == nil {
		data = []T{}
	}
	return &Page[T]{Info: info, Data: data}
}
