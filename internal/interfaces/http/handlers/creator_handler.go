package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creatorverse.backend/internal/domain/entities"
	domainerrors "creatorverse.backend/internal/domain/errors"
	"creatorverse.backend/internal/interfaces/http/response"
	"creatorverse.backend/internal/pages"
)

// CreatorHandler exposes the creators store as JSON
type CreatorHandler struct {
	store pages.CreatorStore
}

func NewCreatorHandler(store pages.CreatorStore) *CreatorHandler {
	return &CreatorHandler{store: store}
}

// ListCreators returns every creator, newest first.
// GET /api/v1/creators
func (h *CreatorHandler) ListCreators(c *gin.Context) {
	items, err := h.store.ListCreators(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetCreator returns one creator.
// GET /api/v1/creators/:id
func (h *CreatorHandler) GetCreator(c *gin.Context) {
	creator, err := h.store.GetCreator(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"creator": creator})
}

// CreateCreator inserts a creator.
// POST /api/v1/creators
func (h *CreatorHandler) CreateCreator(c *gin.Context) {
	var input entities.CreatorFields
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if err := input.Validate(); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	creator, err := h.store.AddCreator(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"message": "Creator created",
		"creator": creator,
	})
}

// UpdateCreator replaces the editable fields of a creator. A missing id is
// not an error.
// PUT /api/v1/creators/:id
func (h *CreatorHandler) UpdateCreator(c *gin.Context) {
	var input entities.CreatorFields
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if err := input.Validate(); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.store.UpdateCreator(c.Request.Context(), c.Param("id"), input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Creator updated"})
}

// DeleteCreator removes a creator. A missing id is not an error.
// DELETE /api/v1/creators/:id
func (h *CreatorHandler) DeleteCreator(c *gin.Context) {
	if err := h.store.DeleteCreator(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Creator deleted"})
}
