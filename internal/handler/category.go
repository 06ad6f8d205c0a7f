package handler

import (
	"net/http"

	"fintrack/internal/store"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves the category registry routes.
type CategoryHandler struct {
	Categories *store.CategoryStore
}

func NewCategoryHandler(categories *store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	cats, err := h.Categories.List(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	items := make([]categoryResp, 0, len(cats))
	for i := range cats {
		items = append(items, toCategoryResp(&cats[i]))
	}
	c.JSON(http.StatusOK, items)
}

type createCategoryReq struct {
	Name  string `json:"name" binding:"required,max=64"`
	Color string `json:"color" binding:"max=16"`
	Icon  string `json:"icon" binding:"max=32"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.Categories.Create(user.ID, req.Name, req.Color, req.Icon)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResp(cat))
}

func (h *CategoryHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	cat, err := h.Categories.Get(user.ID, c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResp(cat))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.Categories.Delete(user.ID, c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
