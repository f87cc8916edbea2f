package repositories

import (
	"errors"

	"notehub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

// categoryNoteCount annotates each row with the number of notes referencing
// it. Computed at read time, never stored.
const categoryNoteCount = "categories.*, (SELECT COUNT(*) FROM notes WHERE notes.category_id = categories.id) AS note_count"

// categoryList is the capability descriptor the shared pagination core is
// parameterized with for categories.
var categoryList = ListDescriptor{
	SearchFields: []string{"categories.name"},
	SortFields: map[string]string{
		"name":      "categories.name",
		"createdAt": "categories.created_at",
		"updatedAt": "categories.updated_at",
	},
	Select: categoryNoteCount,
}

type CategoryRepository interface {
	FindOne(db *gorm.DB, id, authorID string) (*models.Category, error)
	Create(db *gorm.DB, category *models.Category) error
	Update(db *gorm.DB, id, authorID string, name string) (*models.Category, error)
	Delete(db *gorm.DB, id, authorID string) error
	Paginate(db *gorm.DB, authorID string, q PageQuery) (PageInfo, []models.Category, error)
}

type categoryRepository struct{}

func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

func ownedCategory(id, authorID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("categories.id = ? AND categories.author_id = ?", id, authorID)
	}
}

func (r *categoryRepository) FindOne(db *gorm.DB, id, authorID string) (*models.Category, error) {
	var category models.Category
	err := db.Model(&models.Category{}).
		Select(categoryNoteCount).
		Scopes(ownedCategory(id, authorID)).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(db *gorm.DB, category *models.Category) error {
	err := db.Create(category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCategoryAlreadyExists
		}
		return err
	}
	return nil
}

func (r *categoryRepository) Update(db *gorm.DB, id, authorID string, name string) (*models.Category, error) {
	result := db.Model(&models.Category{}).
		Scopes(ownedCategory(id, authorID)).
		Update("name", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCategoryNotFound
	}
	return r.FindOne(db, id, authorID)
}

func (r *categoryRepository) Delete(db *gorm.DB, id, authorID string) error {
	result := db.Scopes(ownedCategory(id, authorID)).Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Paginate(db *gorm.DB, authorID string, q PageQuery) (PageInfo, []models.Category, error) {
	owned := func(db *gorm.DB) *gorm.DB {
		return db.Where("categories.author_id = ?", authorID)
	}
	return Paginate[models.Category](db, q, categoryList, owned)
}
