package models

// Note belongs to a user and optionally to one of that user's categories.
// Every query on notes is scoped by (id, author_id) so a note owned by
// another user is indistinguishable from a missing one.
type Note struct {
	BaseModel
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"not null" json:"content"`
	AuthorID string `gorm:"type:uuid;not null;index" json:"authorId"`

	CategoryID *string   `gorm:"type:uuid" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Tags       []Tag     `gorm:"many2many:note_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}
