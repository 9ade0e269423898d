package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/bookshop-next/internal/http/response"
	"github.com/bookshop-next/internal/repository"
	"github.com/bookshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders 后台订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		OrderNo:  c.Query("order_no"),
	}
	if raw := c.Query("member_id"); raw != "" {
		if memberID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.MemberID = uint(memberID)
		}
	}
	if raw := c.Query("created_from"); raw != "" {
		if from, err := time.Parse("2006-01-02", raw); err == nil {
			filter.CreatedFrom = &from
		}
	}
	if raw := c.Query("created_to"); raw != "" {
		if to, err := time.Parse("2006-01-02", raw); err == nil {
			end := to.AddDate(0, 0, 1)
			filter.CreatedTo = &end
		}
	}

	orders, total, err := h.OrderService.ListAll(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取订单列表失败", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"orders": orders}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// OrderSendRequest 发货请求
type OrderSendRequest struct {
	ID        uint   `json:"id" binding:"required"`
	TrackCode string `json:"track_code" binding:"required"`
	Express   string `json:"express"`
	Remark    string `json:"remark"`
}

// SendOrder 订单发货
func (h *Handler) SendOrder(c *gin.Context) {
	var req OrderSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.OrderService.Ship(req.ID, req.TrackCode, req.Express, req.Remark); err != nil {
		h.respondOrderError(c, err, "发货失败")
		return
	}
	response.Success(c, gin.H{"sent": true})
}

// MarkOrderPaid 标记订单已支付
func (h *Handler) MarkOrderPaid(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "订单 ID 无效", nil)
		return
	}

	if err := h.OrderService.MarkPaid(uint(id)); err != nil {
		h.respondOrderError(c, err, "标记支付失败")
		return
	}
	response.Success(c, gin.H{"paid": true})
}

// OrderCancelRequest 取消订单请求
type OrderCancelRequest struct {
	Remark string `json:"remark" binding:"required"`
}

// CancelOrder 取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "订单 ID 无效", nil)
		return
	}

	var req OrderCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "取消订单必须填写备注", err)
		return
	}

	if err := h.OrderService.Cancel(uint(id), req.Remark); err != nil {
		h.respondOrderError(c, err, "取消订单失败")
		return
	}
	response.Success(c, gin.H{"canceled": true})
}

// AutoCompleteRequest 手动触发自动完成请求
type AutoCompleteRequest struct {
	OlderThanDays int `json:"older_than_days"`
}

// AutoCompleteOrders 手动触发超期订单自动完成
func (h *Handler) AutoCompleteOrders(c *gin.Context) {
	// body 可为空，按配置默认天数执行
	var req AutoCompleteRequest
	_ = c.ShouldBindJSON(&req)
	if req.OlderThanDays <= 0 {
		req.OlderThanDays = h.OrderService.AutoCompleteDays()
	}

	updated, err := h.OrderService.AutoComplete(req.OlderThanDays)
	if err != nil {
		respondError(c, response.CodeInternal, "自动完成订单失败", err)
		return
	}
	response.Success(c, gin.H{
		"updated":         updated,
		"older_than_days": req.OlderThanDays,
	})
}

func (h *Handler) respondOrderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "订单不存在", nil)
	case errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrRemarkRequired):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}
