package admin

import (
	"errors"
	"strconv"

	"github.com/bookshop-next/internal/http/response"
	"github.com/bookshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "获取分类列表失败", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// CategoryCreateRequest 创建分类请求
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	category, err := h.CategoryService.Create(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNameRequired),
			errors.Is(err, service.ErrCategoryExists):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "创建分类失败", err)
		}
		return
	}
	response.Success(c, category)
}

// RemoveCategory 删除分类
func (h *Handler) RemoveCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "分类 ID 无效", nil)
		return
	}

	if err := h.CategoryService.Delete(uint(id)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "分类不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除分类失败", err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}
