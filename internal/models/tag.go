package models

type Tag struct {
	BaseModel
	Name     string `gorm:"not null;uniqueIndex:idx_tags_name_author" json:"name"`
	AuthorID string `gorm:"type:uuid;not null;uniqueIndex:idx_tags_name_author;index" json:"authorId"`

	Notes []Note `gorm:"many2many:note_tags;constraint:OnDelete:CASCADE" json:"notes,omitempty"`

	NoteCount int64 `gorm:"->;-:migration" json:"count"`
}
