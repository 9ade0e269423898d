package public

import (
	"errors"
	"strconv"

	handlershared "github.com/bookshop-next/internal/http/handlers/shared"
	"github.com/bookshop-next/internal/http/response"
	"github.com/bookshop-next/internal/repository"
	"github.com/bookshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.ProductService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// SearchProducts 商品搜索（关键字 + 分类，分页）
func (h *Handler) SearchProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	products, total, err := h.ProductService.Search(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "搜索商品失败", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"products": products}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// ProductCategories 商品分类及数量
func (h *Handler) ProductCategories(c *gin.Context) {
	rows, err := h.ProductService.GetCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "获取分类统计失败", err)
		return
	}
	response.Success(c, gin.H{"categories": rows})
}

// PopularProducts 热门商品
func (h *Handler) PopularProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	products, err := h.ProductService.GetPopular(c.Query("criteria"), limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCriteria):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "获取热门商品失败", err)
		}
		return
	}
	response.Success(c, gin.H{"products": products})
}

// IncrementProductView 累加商品浏览次数
func (h *Handler) IncrementProductView(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 无效", nil)
		return
	}

	if err := h.ProductService.IncrementView(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "商品不存在", nil)
		default:
			respondError(c, response.CodeInternal, "更新浏览次数失败", err)
		}
		return
	}
	response.Success(c, gin.H{"updated": true})
}
