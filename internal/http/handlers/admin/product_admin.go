package admin

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/bookshop-next/internal/http/response"
	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// 商品创建/更新为 multipart 表单：文本字段 + 主图（cover）+ 附图（images）
func parseProductForm(c *gin.Context) (service.ProductInput, *multipart.FileHeader, []*multipart.FileHeader, error) {
	input := service.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		ISBN:        c.PostForm("isbn"),
		Category:    c.PostForm("category"),
	}

	if raw := strings.TrimSpace(c.PostForm("price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return input, nil, nil, errors.New("价格格式错误")
		}
		input.Price = models.NewMoneyFromDecimal(price)
	}
	if raw := strings.TrimSpace(c.PostForm("stock")); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return input, nil, nil, errors.New("库存格式错误")
		}
		input.Stock = stock
	}
	if raw := strings.TrimSpace(c.PostForm("rating")); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || rating < 0 {
			return input, nil, nil, errors.New("评分格式错误")
		}
		input.Rating = rating
	}

	cover, err := c.FormFile("cover")
	if err != nil {
		cover = nil
	}
	var images []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		images = form.File["images"]
	}
	return input, cover, images, nil
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	input, cover, images, err := parseProductForm(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}

	product, err := h.ProductService.Create(input, cover, images)
	if err != nil {
		h.respondProductError(c, err, "创建商品失败")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 无效", nil)
		return
	}

	input, cover, images, err := parseProductForm(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}

	product, err := h.ProductService.Update(uint(id), input, cover, images)
	if err != nil {
		h.respondProductError(c, err, "更新商品失败")
		return
	}
	response.Success(c, product)
}

// RemoveProduct 删除商品
func (h *Handler) RemoveProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 无效", nil)
		return
	}

	if err := h.ProductService.Delete(uint(id)); err != nil {
		h.respondProductError(c, err, "删除商品失败")
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// RemoveProductImage 删除商品单张附图
func (h *Handler) RemoveProductImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "商品 ID 无效", nil)
		return
	}
	imageName := strings.TrimSpace(c.Param("imageName"))
	if imageName == "" {
		respondError(c, response.CodeBadRequest, "图片名称不能为空", nil)
		return
	}

	product, err := h.ProductService.RemoveImage(uint(id), imageName)
	if err != nil {
		h.respondProductError(c, err, "删除商品图片失败")
		return
	}
	response.Success(c, product)
}

func (h *Handler) respondProductError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidProductInput),
		errors.Is(err, service.ErrISBNExists),
		errors.Is(err, service.ErrTooManyImages):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "商品不存在", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}
