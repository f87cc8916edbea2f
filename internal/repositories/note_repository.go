package repositories

import (
	"errors"

	"notehub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNoteNotFound = errors.New("note not found")
)

// NoteInclude toggles relation loading on note reads.
type NoteInclude struct {
	Category bool
	Tags     bool
}

var noteList = ListDescriptor{
	SearchFields: []string{"notes.title", "notes.content"},
	SortFields: map[string]string{
		"title":     "notes.title",
		"createdAt": "notes.created_at",
		"updatedAt": "notes.updated_at",
	},
}

type NoteRepository interface {
	FindOne(db *gorm.DB, id, authorID string, include NoteInclude) (*models.Note, error)
	Create(db *gorm.DB, note *models.Note) error
	Updates(db *gorm.DB, id, authorID string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id, authorID string) error
	Paginate(db *gorm.DB, authorID string, q PageQuery, include NoteInclude, scopes ...func(*gorm.DB) *gorm.DB) (PageInfo, []models.Note, error)

	// ReplaceTags swaps the note's tag set for exactly tags. An empty slice
	// clears every association.
	ReplaceTags(db *gorm.DB, note *models.Note, tags []models.Tag) error
	FindTags(db *gorm.DB, id, authorID string) ([]models.Tag, error)
}

type noteRepository struct{}

func NewNoteRepository() NoteRepository {
	return &noteRepository{}
}

func ownedNote(id, authorID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("notes.id = ? AND notes.author_id = ?", id, authorID)
	}
}

// InCategory composes "notes belonging to category X" with the paginated,
// ownership-scoped listing.
func InCategory(categoryID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("notes.category_id = ?", categoryID)
	}
}

// WithTag composes "notes tagged with tag Y" through the join table.
func WithTag(tagID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN note_tags ON note_tags.note_id = notes.id").
			Where("note_tags.tag_id = ?", tagID)
	}
}

func withInclude(include NoteInclude) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if include.Category {
			db = db.Preload("Category")
		}
		if include.Tags {
			db = db.Preload("Tags")
		}
		return db
	}
}

func (r *noteRepository) FindOne(db *gorm.DB, id, authorID string, include NoteInclude) (*models.Note, error) {
	var note models.Note
	err := db.Scopes(ownedNote(id, authorID), withInclude(include)).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Create(db *gorm.DB, note *models.Note) error {
	// Associations are managed explicitly through ReplaceTags.
	return db.Omit("Tags", "Category").Create(note).Error
}

func (r *noteRepository) Updates(db *gorm.DB, id, authorID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		// Still confirm the row exists under this owner.
		var count int64
		if err := db.Model(&models.Note{}).Scopes(ownedNote(id, authorID)).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNoteNotFound
		}
		return nil
	}

	result := db.Model(&models.Note{}).Scopes(ownedNote(id, authorID)).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *noteRepository) Delete(db *gorm.DB, id, authorID string) error {
	result := db.Scopes(ownedNote(id, authorID)).Delete(&models.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *noteRepository) Paginate(db *gorm.DB, authorID string, q PageQuery, include NoteInclude, scopes ...func(*gorm.DB) *gorm.DB) (PageInfo, []models.Note, error) {
	owned := func(db *gorm.DB) *gorm.DB {
		return db.Where("notes.author_id = ?", authorID)
	}
	all := append([]func(*gorm.DB) *gorm.DB{owned, withInclude(include)}, scopes...)
	return Paginate[models.Note](db, q, noteList, all...)
}

func (r *noteRepository) ReplaceTags(db *gorm.DB, note *models.Note, tags []models.Tag) error {
	if len(tags) == 0 {
		return db.Model(note).Association("Tags").Clear()
	}
	return db.Model(note).Association("Tags").Replace(tags)
}

func (r *noteRepository) FindTags(db *gorm.DB, id, authorID string) ([]models.Tag, error) {
	note, err := r.FindOne(db, id, authorID, NoteInclude{Tags: true})
	if err != nil {
		return nil, err
	}
	return note.Tags, nil
}
