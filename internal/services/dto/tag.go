package dto

type CreateTagRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateTagRequest struct {
	Name string `json:"name" validate:"required"`
}
