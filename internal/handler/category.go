package handler

import (
	"net/http"

	"github.com/VYR4L/backend-expense-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves category CRUD, scoped to the current user.
type CategoryHandler struct {
	Categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

type createCategoryReq struct {
	Name  string `json:"name" binding:"required,max=100"`
	Type  string `json:"type" binding:"required,oneof=income expense"`
	Color string `json:"color" binding:"required,max=7"`
	Icon  string `json:"icon" binding:"max=100"`
}

type updateCategoryReq struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Type  *string `json:"type" binding:"omitempty,oneof=income expense"`
	Color *string `json:"color" binding:"omitempty,max=7"`
	Icon  *string `json:"icon" binding:"omitempty,max=100"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Categories.Create(user.ID, service.CategoryInput{
		Name:  req.Name,
		Type:  req.Type,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id := pathID(c, "id")
	if id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	category, err := h.Categories.Get(id, user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	categories, err := h.Categories.List(user.ID, c.Query("type"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id := pathID(c, "id")
	if id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var req updateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Categories.Update(id, user.ID, service.CategoryPatch{
		Name:  req.Name,
		Type:  req.Type,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id := pathID(c, "id")
	if id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	if err := h.Categories.Delete(id, user.ID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
