package handlers

import (
	"net/http"

	"notehub_backend/internal/models"
	"notehub_backend/internal/services"
	"notehub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	*BaseHandler
	noteService services.NoteService
}

func NewNoteHandler(base *BaseHandler, noteService services.NoteService) *NoteHandler {
	return &NoteHandler{
		BaseHandler: base,
		noteService: noteService,
	}
}

func (h *NoteHandler) Index(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	q := ParsePageQuery(c)
	include := ParseNoteInclude(c)

	page, err := h.noteService.Paginate(db, userID, q, include)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *NoteHandler) Show(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	include := ParseNoteInclude(c)

	note, err := h.noteService.FindOne(db, c.Param("id"), userID, include)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	note, err := h.noteService.Create(db, &req, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	note, err := h.noteService.Update(db, c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) Destroy(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.noteService.Destroy(db, c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ShowCategory returns the note's category or null when it has none.
func (h *NoteHandler) ShowCategory(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	category, err := h.noteService.FindNoteCategory(db, c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if category == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *NoteHandler) IndexTags(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	tags, err := h.noteService.FindNoteTags(db, c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if tags == nil {
		tags = []models.Tag{}
	}
	c.JSON(http.StatusOK, tags)
}
