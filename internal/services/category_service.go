package services

import (
	"fmt"

	"notehub_backend/internal/models"
	"notehub_backend/internal/repositories"
	"notehub_backend/internal/services/dto"
	"notehub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CategoryService interface {
	FindOne(db *gorm.DB, categoryID, authorID string) (*models.Category, error)
	Create(db *gorm.DB, req *dto.CreateCategoryRequest, authorID string) (*models.Category, error)
	Update(db *gorm.DB, categoryID, authorID string, req *dto.UpdateCategoryRequest) (*models.Category, error)
	Destroy(db *gorm.DB, categoryID, authorID string) error
	Paginate(db *gorm.DB, authorID string, q repositories.PageQuery) (*dto.Page[models.Category], error)

	// FindNotes lists the category's notes through the shared pagination
	// path, composed with the category constraint.
	FindNotes(db *gorm.DB, categoryID, authorID string, q repositories.PageQuery) (*dto.Page[models.Note], error)
}

type categoryServiceImpl struct {
	categoryRepo repositories.CategoryRepository
	noteRepo     repositories.NoteRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, noteRepo repositories.NoteRepository) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
		noteRepo:     noteRepo,
	}
}

func (s *categoryServiceImpl) FindOne(db *gorm.DB, categoryID, authorID string) (*models.Category, error) {
	category, err := s.categoryRepo.FindOne(db, categoryID, authorID)
	if err != nil {
		return nil, translateCategoryError(err, "")
	}
	return category, nil
}

func (s *categoryServiceImpl) Create(db *gorm.DB, req *dto.CreateCategoryRequest, authorID string) (*models.Category, error) {
	category := &models.Category{
		Name:     req.Name,
		AuthorID: authorID,
	}
	if err := s.categoryRepo.Create(db, category); err != nil {
		return nil, translateCategoryError(err, req.Name)
	}
	return category, nil
}

func (s *categoryServiceImpl) Update(db *gorm.DB, categoryID, authorID string, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.Update(db, categoryID, authorID, req.Name)
	if err != nil {
		return nil, translateCategoryError(err, req.Name)
	}
	return category, nil
}

func (s *categoryServiceImpl) Destroy(db *gorm.DB, categoryID, authorID string) error {
	if err := s.categoryRepo.Delete(db, categoryID, authorID); err != nil {
		return translateCategoryError(err, "")
	}
	return nil
}

func (s *categoryServiceImpl) Paginate(db *gorm.DB, authorID string, q repositories.PageQuery) (*dto.Page[models.Category], error) {
	info, categories, err := s.categoryRepo.Paginate(db, authorID, q)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPage(info, categories), nil
}

func (s *categoryServiceImpl) FindNotes(db *gorm.DB, categoryID, authorID string, q repositories.PageQuery) (*dto.Page[models.Note], error) {
	// The category lookup also enforces ownership; a foreign category is a
	// plain 404.
	if _, err := s.categoryRepo.FindOne(db, categoryID, authorID); err != nil {
		return nil, translateCategoryError(err, "")
	}

	info, notes, err := s.noteRepo.Paginate(db, authorID, q, repositories.NoteInclude{}, repositories.InCategory(categoryID))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPage(info, notes), nil
}

func translateCategoryError(err error, name string) error {
	if apperrors.Is(err, repositories.ErrCategoryNotFound) {
		return apperrors.NotFound("Category")
	}
	if apperrors.Is(err, repositories.ErrCategoryAlreadyExists) {
		return apperrors.BadRequest(fmt.Sprintf("category with name '%s' already exist", name))
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}
