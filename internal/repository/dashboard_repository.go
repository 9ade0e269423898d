package repository

import (
	"fmt"
	"time"

	"github.com/bookshop-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetSummary(revenueStatuses []string) (DashboardSummaryRow, error)
	GetStatusCounts() ([]DashboardStatusCountRow, error)
	GetDailySales(startAt, endAt time.Time, revenueStatuses []string) ([]DashboardDailySalesRow, error)
	GetTopProducts(limit int, revenueStatuses []string) ([]DashboardProductRankingRow, error)
	GetMonthlySales(startAt, endAt time.Time, revenueStatuses []string) ([]DashboardMonthlySalesRow, error)
}

// DashboardSummaryRow 总览原始统计结果
type DashboardSummaryRow struct {
	TotalOrders   int64
	TotalMembers  int64
	TotalProducts int64
	TotalSales    float64
}

// DashboardStatusCountRow 订单状态分布统计行
type DashboardStatusCountRow struct {
	Status string
	Count  int64
}

// DashboardDailySalesRow 按天销售额统计行
type DashboardDailySalesRow struct {
	Day   string
	Total float64
}

// DashboardProductRankingRow 商品销量排行原始行
type DashboardProductRankingRow struct {
	ProductID uint
	Quantity  int64
	Amount    float64
}

// DashboardMonthlySalesRow 按月销售额统计行
type DashboardMonthlySalesRow struct {
	Month string
	Total float64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

func (r *GormDashboardRepository) revenueDetailBase(revenueStatuses []string) *gorm.DB {
	return r.db.Model(&models.OrderDetail{}).
		Joins("JOIN orders ON orders.id = order_details.order_id").
		Where("orders.status IN ?", revenueStatuses)
}

// GetSummary 获取总览统计
func (r *GormDashboardRepository) GetSummary(revenueStatuses []string) (DashboardSummaryRow, error) {
	result := DashboardSummaryRow{}

	if err := r.db.Model(&models.Order{}).Count(&result.TotalOrders).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Member{}).Count(&result.TotalMembers).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).Count(&result.TotalProducts).Error; err != nil {
		return result, err
	}
	if err := r.revenueDetailBase(revenueStatuses).
		Select("COALESCE(SUM(order_details.price * order_details.quantity), 0)").
		Scan(&result.TotalSales).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetStatusCounts 获取订单状态分布
func (r *GormDashboardRepository) GetStatusCounts() ([]DashboardStatusCountRow, error) {
	rows := make([]DashboardStatusCountRow, 0)
	if err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetDailySales 获取时间区间内按天销售额
func (r *GormDashboardRepository) GetDailySales(startAt, endAt time.Time, revenueStatuses []string) ([]DashboardDailySalesRow, error) {
	rows := make([]DashboardDailySalesRow, 0)
	expr := dayExpr(r.db, "orders.created_at")
	if err := r.revenueDetailBase(revenueStatuses).
		Select(fmt.Sprintf("%s as day, COALESCE(SUM(order_details.price * order_details.quantity), 0) as total", expr)).
		Where("orders.created_at >= ? AND orders.created_at < ?", startAt, endAt).
		Group(expr).
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopProducts 获取商品销量排行（单条聚合查询，不回表逐个查商品）
func (r *GormDashboardRepository) GetTopProducts(limit int, revenueStatuses []string) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0)
	if err := r.revenueDetailBase(revenueStatuses).
		Select(`
			order_details.product_id as product_id,
			COALESCE(SUM(order_details.quantity), 0) as quantity,
			COALESCE(SUM(order_details.price * order_details.quantity), 0) as amount
		`).
		Group("order_details.product_id").
		Order("quantity DESC, amount DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetMonthlySales 获取时间区间内按月销售额
func (r *GormDashboardRepository) GetMonthlySales(startAt, endAt time.Time, revenueStatuses []string) ([]DashboardMonthlySalesRow, error) {
	rows := make([]DashboardMonthlySalesRow, 0)
	expr := monthExpr(r.db, "orders.created_at")
	if err := r.revenueDetailBase(revenueStatuses).
		Select(fmt.Sprintf("%s as month, COALESCE(SUM(order_details.price * order_details.quantity), 0) as total", expr)).
		Where("orders.created_at >= ? AND orders.created_at < ?", startAt, endAt).
		Group(expr).
		Order("month asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
