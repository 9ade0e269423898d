package admin

import (
	"strconv"

	"github.com/bookshop-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Dashboard 仪表盘总览
func (h *Handler) Dashboard(c *gin.Context) {
	summary, err := h.DashboardService.Summary()
	if err != nil {
		respondError(c, response.CodeInternal, "获取仪表盘数据失败", err)
		return
	}
	response.Success(c, summary)
}

// MonthlySales 指定年份按月销售额
func (h *Handler) MonthlySales(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2200 {
		respondError(c, response.CodeBadRequest, "年份无效", nil)
		return
	}

	items, err := h.DashboardService.MonthlySales(year)
	if err != nil {
		respondError(c, response.CodeInternal, "获取月度销售额失败", err)
		return
	}
	response.Success(c, gin.H{
		"year":          year,
		"monthly_sales": items,
	})
}
