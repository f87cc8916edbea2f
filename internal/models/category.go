package models

type Category struct {
	BaseModel
	Name     string `gorm:"not null;uniqueIndex:idx_categories_name_author" json:"name"`
	AuthorID string `gorm:"type:uuid;not null;uniqueIndex:idx_categories_name_author;index" json:"authorId"`

	Notes []Note `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"notes,omitempty"`

	// NoteCount is computed from relation cardinality at read time, it is
	// never stored.
	NoteCount int64 `gorm:"->;-:migration" json:"count"`
}
