package public

import (
	"errors"
	"strconv"

	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/http/response"
	"github.com/bookshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 加入购物车请求
type CartAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// AddCartItem 加入购物车（数量缺省按 1）
func (h *Handler) AddCartItem(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}

	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	item, err := h.CartService.SetQuantity(memberID, req.ProductID, req.Quantity, 0)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// CartUpdateRequest 覆盖更新购物车请求
type CartUpdateRequest struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// UpdateCartItem 覆盖更新购物车数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}

	var req CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if req.ID == 0 && req.ProductID == 0 {
		respondError(c, response.CodeBadRequest, "缺少购物车行或商品标识", nil)
		return
	}

	item, err := h.CartService.SetQuantity(memberID, req.ProductID, req.Quantity, req.ID)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// CartIncrementRequest 累加购物车请求
type CartIncrementRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// IncrementCartItem 累加购物车数量
func (h *Handler) IncrementCartItem(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}

	var req CartIncrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	item, err := h.CartService.IncrementQuantity(memberID, req.ProductID, req.Quantity)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// ListCart 获取购物车明细
// 路径中的会员 ID 仅为兼容保留，以登录态为准。
func (h *Handler) ListCart(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	if raw := c.Param("memberId"); raw != "" {
		if pathID, err := strconv.ParseUint(raw, 10, 64); err != nil || uint(pathID) != memberID {
			respondError(c, response.CodeForbidden, "无权查看他人购物车", nil)
			return
		}
	}

	items, total, err := h.CartService.ListByMember(memberID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取购物车失败", err)
		return
	}
	response.Success(c, gin.H{
		"items": items,
		"total": total,
	})
}

// RemoveCartItem 删除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "购物车行 ID 无效", nil)
		return
	}

	if err := h.CartService.RemoveLine(memberID, uint(id)); err != nil {
		h.respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// CartConfirmRequest 收货信息确认请求
type CartConfirmRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// ConfirmDeliveryInfo 结算前确认收货信息
func (h *Handler) ConfirmDeliveryInfo(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}

	var req CartConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	member, err := h.CartService.UpdateDeliveryInfo(memberID, req.Name, req.Phone, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeliveryInfoRequired):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "会员不存在", nil)
		default:
			respondError(c, response.CodeInternal, "保存收货信息失败", err)
		}
		return
	}
	response.Success(c, memberProfileResponse(member))
}

// UploadSlip 上传支付凭证
func (h *Handler) UploadSlip(c *gin.Context) {
	if _, ok := getMemberID(c); !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "缺少上传文件", err)
		return
	}

	path, err := h.UploadService.SaveFile(file, constants.UploadSceneSlip)
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), err)
		return
	}
	response.Success(c, gin.H{"path": path})
}

// ConfirmOrderRequest 结算下单请求
type ConfirmOrderRequest struct {
	SlipImage string `json:"slip_image"`
}

// ConfirmOrder 结算购物车生成订单
func (h *Handler) ConfirmOrder(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}

	var req ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	order, err := h.OrderService.Checkout(memberID, req.SlipImage)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "会员或商品不存在", nil)
		default:
			respondError(c, response.CodeInternal, "下单失败", err)
		}
		return
	}
	response.Success(c, order)
}

// ConfirmReceived 会员确认收货
func (h *Handler) ConfirmReceived(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "订单 ID 无效", nil)
		return
	}

	if err := h.OrderService.ConfirmReceived(uint(orderID), memberID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "订单不存在", nil)
		case errors.Is(err, service.ErrInvalidStatusTransition):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "确认收货失败", err)
		}
		return
	}
	response.Success(c, gin.H{"confirmed": true})
}

func (h *Handler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "记录不存在", nil)
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, "操作购物车失败", err)
	}
}
