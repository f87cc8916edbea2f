package repositories

import (
	"errors"

	"notehub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")
)

const tagNoteCount = "tags.*, (SELECT COUNT(*) FROM note_tags WHERE note_tags.tag_id = tags.id) AS note_count"

var tagList = ListDescriptor{
	SearchFields: []string{"tags.name"},
	SortFields: map[string]string{
		"name":      "tags.name",
		"createdAt": "tags.created_at",
		"updatedAt": "tags.updated_at",
	},
	Select: tagNoteCount,
}

type TagRepository interface {
	FindOne(db *gorm.DB, id, authorID string) (*models.Tag, error)
	Create(db *gorm.DB, tag *models.Tag) error
	Update(db *gorm.DB, id, authorID string, name string) (*models.Tag, error)
	Delete(db *gorm.DB, id, authorID string) error
	Paginate(db *gorm.DB, authorID string, q PageQuery) (PageInfo, []models.Tag, error)

	// UpsertByName returns the author's tag with that name, creating it
	// when missing. Used by note create/update to connect tags inline.
	UpsertByName(db *gorm.DB, name, authorID string) (*models.Tag, error)
}

type tagRepository struct{}

func NewTagRepository() TagRepository {
	return &tagRepository{}
}

func ownedTag(id, authorID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tags.id = ? AND tags.author_id = ?", id, authorID)
	}
}

func (r *tagRepository) FindOne(db *gorm.DB, id, authorID string) (*models.Tag, error) {
	var tag models.Tag
	err := db.Model(&models.Tag{}).
		Select(tagNoteCount).
		Scopes(ownedTag(id, authorID)).
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Create(db *gorm.DB, tag *models.Tag) error {
	err := db.Create(tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTagAlreadyExists
		}
		return err
	}
	return nil
}

func (r *tagRepository) Update(db *gorm.DB, id, authorID string, name string) (*models.Tag, error) {
	result := db.Model(&models.Tag{}).
		Scopes(ownedTag(id, authorID)).
		Update("name", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrTagAlreadyExists
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTagNotFound
	}
	return r.FindOne(db, id, authorID)
}

func (r *tagRepository) Delete(db *gorm.DB, id, authorID string) error {
	result := db.Scopes(ownedTag(id, authorID)).Delete(&models.Tag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *tagRepository) Paginate(db *gorm.DB, authorID string, q PageQuery) (PageInfo, []models.Tag, error) {
	owned := func(db *gorm.DB) *gorm.DB {
		return db.Where("tags.author_id = ?", authorID)
	}
	return Paginate[models.Tag](db, q, tagList, owned)
}

func (r *tagRepository) UpsertByName(db *gorm.DB, name, authorID string) (*models.Tag, error) {
	var tag models.Tag
	err := db.Where(models.Tag{Name: name, AuthorID: authorID}).FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
