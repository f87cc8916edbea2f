package services

import (
	"fmt"

	"notehub_backend/internal/models"
	"notehub_backend/internal/repositories"
	"notehub_backend/internal/services/dto"
	"notehub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TagService interface {
	FindOne(db *gorm.DB, tagID, authorID string) (*models.Tag, error)
	Create(db *gorm.DB, req *dto.CreateTagRequest, authorID string) (*models.Tag, error)
	Update(db *gorm.DB, tagID, authorID string, req *dto.UpdateTagRequest) (*models.Tag, error)
	Destroy(db *gorm.DB, tagID, authorID string) error
	Paginate(db *gorm.DB, authorID string, q repositories.PageQuery) (*dto.Page[models.Tag], error)
	FindNotes(db *gorm.DB, tagID, authorID string, q repositories.PageQuery) (*dto.Page[models.Note], error)
}

type tagServiceImpl struct {
	tagRepo  repositories.TagRepository
	noteRepo repositories.NoteRepository
}

func NewTagService(tagRepo repositories.TagRepository, noteRepo repositories.NoteRepository) TagService {
	return &tagServiceImpl{
		tagRepo:  tagRepo,
		noteRepo: noteRepo,
	}
}

func (s *tagServiceImpl) FindOne(db *gorm.DB, tagID, authorID string) (*models.Tag, error) {
	tag, err := s.tagRepo.FindOne(db, tagID, authorID)
	if err != nil {
		return nil, translateTagError(err, "")
	}
	return tag, nil
}

func (s *tagServiceImpl) Create(db *gorm.DB, req *dto.CreateTagRequest, authorID string) (*models.Tag, error) {
	tag := &models.Tag{
		Name:     req.Name,
		AuthorID: authorID,
	}
	if err := s.tagRepo.Create(db, tag); err != nil {
		return nil, translateTagError(err, req.Name)
	}
	return tag, nil
}

func (s *tagServiceImpl) Update(db *gorm.DB, tagID, authorID string, req *dto.UpdateTagRequest) (*models.Tag, error) {
	tag, err := s.tagRepo.Update(db, tagID, authorID, req.Name)
	if err != nil {
		return nil, translateTagError(err, req.Name)
	}
	return tag, nil
}

func (s *tagServiceImpl) Destroy(db *gorm.DB, tagID, authorID string) error {
	if err := s.tagRepo.Delete(db, tagID, authorID); err != nil {
		return translateTagError(err, "")
	}
	return nil
}

func (s *tagServiceImpl) Paginate(db *gorm.DB, authorID string, q repositories.PageQuery) (*dto.Page[models.Tag], error) {
	info, tags, err := s.tagRepo.Paginate(db, authorID, q)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPage(info, tags), nil
}

func (s *tagServiceImpl) FindNotes(db *gorm.DB, tagID, authorID string, q repositories.PageQuery) (*dto.Page[models.Note], error) {
	if _, err := s.tagRepo.FindOne(db, tagID, authorID); err != nil {
		return nil, translateTagError(err, "")
	}

	info, notes, err := s.noteRepo.Paginate(db, authorID, q, repositories.NoteInclude{}, repositories.WithTag(tagID))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPage(info, notes), nil
}

func translateTagError(err error, name string) error {
	if apperrors.Is(err, repositories.ErrTagNotFound) {
		return apperrors.NotFound("Tag")
	}
	if apperrors.Is(err, repositories.ErrTagAlreadyExists) {
		return apperrors.BadRequest(fmt.Sprintf("tag with name '%s' already exist", name))
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}
