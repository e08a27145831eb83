package handler

import (
	"net/http"
	"time"

	"expense-ledger/internal/models"
	"expense-ledger/internal/service"
	"expense-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

type categoryResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	return categoryResp{
		ID:        cat.ID,
		Name:      cat.Name,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req util.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	name, err := util.ParseCategoryName(req)
	if err != nil {
		fail(c, err)
		return
	}

	cat, err := h.Categories.Create(c.Request.Context(), name)
	if err != nil {
		fail(c, err)
		return
	}
	util.JSON(c, http.StatusCreated, toCategoryResp(cat))
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	cats, err := h.Categories.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]categoryResp, 0, len(cats))
	for i := range cats {
		items = append(items, toCategoryResp(&cats[i]))
	}
	util.JSON(c, http.StatusOK, items)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cat, err := h.Categories.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	util.JSON(c, http.StatusOK, toCategoryResp(cat))
}
