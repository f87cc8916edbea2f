package services

import (
	"fmt"

	"notehub_backend/internal/models"
	"notehub_backend/internal/repositories"
	"notehub_backend/internal/services/dto"
	"notehub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NoteService interface {
	FindOne(db *gorm.DB, noteID, authorID string, include repositories.NoteInclude) (*models.Note, error)
	Create(db *gorm.DB, req *dto.CreateNoteRequest, authorID string) (*models.Note, error)
	Update(db *gorm.DB, noteID, authorID string, req *dto.UpdateNoteRequest) (*models.Note, error)
	Destroy(db *gorm.DB, noteID, authorID string) error
	Paginate(db *gorm.DB, authorID string, q repositories.PageQuery, include repositories.NoteInclude) (*dto.Page[models.Note], error)

	// FindNoteCategory returns the note's category annotated with its note
	// count, or nil when the note has none.
	FindNoteCategory(db *gorm.DB, noteID, authorID string) (*models.Category, error)
	FindNoteTags(db *gorm.DB, noteID, authorID string) ([]models.Tag, error)
}

type noteServiceImpl struct {
	noteRepo     repositories.NoteRepository
	categoryRepo repositories.CategoryRepository
	tagRepo      repositories.TagRepository
}

func NewNoteService(noteRepo repositories.NoteRepository, categoryRepo repositories.CategoryRepository, tagRepo repositories.TagRepository) NoteService {
	return &noteServiceImpl{
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

func (s *noteServiceImpl) FindOne(db *gorm.DB, noteID, authorID string, include repositories.NoteInclude) (*models.Note, error) {
	note, err := s.noteRepo.FindOne(db, noteID, authorID, include)
	if err != nil {
		return nil, translateNoteError(err)
	}
	return note, nil
}

func (s *noteServiceImpl) Create(db *gorm.DB, req *dto.CreateNoteRequest, authorID string) (*models.Note, error) {
	if len(req.Tags) > dto.MaxNoteTags {
		return nil, apperrors.ErrTooManyTags
	}

	var created *models.Note
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkCategory(tx, req.CategoryID, authorID); err != nil {
			return err
		}

		note := &models.Note{
			Title:      req.Title,
			Content:    req.Content,
			AuthorID:   authorID,
			CategoryID: req.CategoryID,
		}
		if err := s.noteRepo.Create(tx, note); err != nil {
			return apperrors.InternalError(err)
		}

		tags, err := s.upsertTags(tx, req.Tags, authorID)
		if err != nil {
			return err
		}
		if err := s.noteRepo.ReplaceTags(tx, note, tags); err != nil {
			return apperrors.InternalError(err)
		}

		created, err = s.noteRepo.FindOne(tx, note.ID, authorID, repositories.NoteInclude{Category: true, Tags: true})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update patches title/content/categoryId, where an explicit categoryId null
// detaches the category, and fully replaces the tag set:
// an omitted or empty tag list clears every tag. Deliberate simplification,
// not a partial patch.
func (s *noteServiceImpl) Update(db *gorm.DB, noteID, authorID string, req *dto.UpdateNoteRequest) (*models.Note, error) {
	if len(req.Tags) > dto.MaxNoteTags {
		return nil, apperrors.ErrTooManyTags
	}

	var updated *models.Note
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkCategory(tx, req.CategoryID.Value, authorID); err != nil {
			return err
		}

		fields := map[string]interface{}{}
		if req.Title != nil {
			fields["title"] = *req.Title
		}
		if req.Content != nil {
			fields["content"] = *req.Content
		}
		if req.CategoryID.Set {
			if req.CategoryID.Value != nil {
				fields["category_id"] = *req.CategoryID.Value
			} else {
				// Explicit null detaches the note from its category.
				fields["category_id"] = nil
			}
		}

		if err := s.noteRepo.Updates(tx, noteID, authorID, fields); err != nil {
			return translateNoteError(err)
		}

		tags, err := s.upsertTags(tx, req.Tags, authorID)
		if err != nil {
			return err
		}
		note := &models.Note{BaseModel: models.BaseModel{ID: noteID}, AuthorID: authorID}
		if err := s.noteRepo.ReplaceTags(tx, note, tags); err != nil {
			return apperrors.InternalError(err)
		}

		updated, err = s.noteRepo.FindOne(tx, noteID, authorID, repositories.NoteInclude{Category: true, Tags: true})
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *noteServiceImpl) Destroy(db *gorm.DB, noteID, authorID string) error {
	if err := s.noteRepo.Delete(db, noteID, authorID); err != nil {
		return translateNoteError(err)
	}
	return nil
}

func (s *noteServiceImpl) Paginate(db *gorm.DB, authorID string, q repositories.PageQuery, include repositories.NoteInclude) (*dto.Page[models.Note], error) {
	info, notes, err := s.noteRepo.Paginate(db, authorID, q, include)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPage(info, notes), nil
}

func (s *noteServiceImpl) FindNoteCategory(db *gorm.DB, noteID, authorID string) (*models.Category, error) {
	note, err := s.noteRepo.FindOne(db, noteID, authorID, repositories.NoteInclude{})
	if err != nil {
		return nil, translateNoteError(err)
	}
	if note.CategoryID == nil {
		return nil, nil
	}
	category, err := s.categoryRepo.FindOne(db, *note.CategoryID, authorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *noteServiceImpl) FindNoteTags(db *gorm.DB, noteID, authorID string) ([]models.Tag, error) {
	tags, err := s.noteRepo.FindTags(db, noteID, authorID)
	if err != nil {
		return nil, translateNoteError(err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

// checkCategory verifies a referenced category exists under the same owner.
// A category owned by someone else reads as absent.
func (s *noteServiceImpl) checkCategory(db *gorm.DB, categoryID *string, authorID string) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categoryRepo.FindOne(db, *categoryID, authorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.BadRequest(fmt.Sprintf("Category with id %s doesn't exist", *categoryID))
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *noteServiceImpl) upsertTags(db *gorm.DB, names []string, authorID string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.tagRepo.UpsertByName(db, name, authorID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func translateNoteError(err error) error {
	if apperrors.Is(err, repositories.ErrNoteNotFound) {
		return apperrors.NotFound("Note")
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}
