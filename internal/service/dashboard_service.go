package service

import (
	"fmt"
	"time"

	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/repository"
)

// 总览图表默认区间与排行长度
const (
	dashboardDailyDays  = 7
	dashboardTopLimit   = 5
	dashboardMonthCount = 12
)

// DashboardService 仪表盘统计服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	productRepo   repository.ProductRepository
}

// NewDashboardService 创建仪表盘统计服务实例
func NewDashboardService(dashboardRepo repository.DashboardRepository, productRepo repository.ProductRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		productRepo:   productRepo,
	}
}

// DashboardSummary 仪表盘总览
type DashboardSummary struct {
	TotalOrders   int64            `json:"total_orders"`
	TotalMembers  int64            `json:"total_members"`
	TotalProducts int64            `json:"total_products"`
	TotalSales    models.Money     `json:"total_sales"`
	StatusCounts  map[string]int64 `json:"status_counts"`
	DailySales    []DailySalesItem `json:"daily_sales"`
	TopProducts   []TopProductItem `json:"top_products"`
}

// DailySalesItem 按天销售额
type DailySalesItem struct {
	Day   string       `json:"day"`
	Total models.Money `json:"total"`
}

// TopProductItem 商品销量排行项
type TopProductItem struct {
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	Image     string       `json:"image"`
	Quantity  int64        `json:"quantity"`
	Amount    models.Money `json:"amount"`
}

// MonthlySalesItem 按月销售额
type MonthlySalesItem struct {
	Month string       `json:"month"`
	Total models.Money `json:"total"`
}

// Summary 获取仪表盘总览
// 状态分布按规范状态归并（历史别名计入对应新状态），近 7 天销售额按天补零。
func (s *DashboardService) Summary() (*DashboardSummary, error) {
	revenue := revenueStatuses()

	row, err := s.dashboardRepo.GetSummary(revenue)
	if err != nil {
		return nil, err
	}

	statusRows, err := s.dashboardRepo.GetStatusCounts()
	if err != nil {
		return nil, err
	}
	statusCounts := make(map[string]int64)
	for _, item := range statusRows {
		statusCounts[NormalizeStatus(item.Status)] += item.Count
	}

	now := time.Now()
	endAt := now.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	startAt := endAt.AddDate(0, 0, -dashboardDailyDays)
	dailyRows, err := s.dashboardRepo.GetDailySales(startAt, endAt, revenue)
	if err != nil {
		return nil, err
	}
	dailyByDay := make(map[string]float64, len(dailyRows))
	for _, item := range dailyRows {
		dailyByDay[item.Day] += item.Total
	}
	daily := make([]DailySalesItem, 0, dashboardDailyDays)
	for i := 0; i < dashboardDailyDays; i++ {
		day := startAt.AddDate(0, 0, i).Format("2006-01-02")
		daily = append(daily, DailySalesItem{
			Day:   day,
			Total: models.NewMoneyFromFloat(dailyByDay[day]),
		})
	}

	topProducts, err := s.topProducts(revenue)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalOrders:   row.TotalOrders,
		TotalMembers:  row.TotalMembers,
		TotalProducts: row.TotalProducts,
		TotalSales:    models.NewMoneyFromFloat(row.TotalSales),
		StatusCounts:  statusCounts,
		DailySales:    daily,
		TopProducts:   topProducts,
	}, nil
}

// topProducts 销量排行，商品信息批量回填
func (s *DashboardService) topProducts(revenue []string) ([]TopProductItem, error) {
	rankingRows, err := s.dashboardRepo.GetTopProducts(dashboardTopLimit, revenue)
	if err != nil {
		return nil, err
	}
	if len(rankingRows) == 0 {
		return []TopProductItem{}, nil
	}

	ids := make([]uint, 0, len(rankingRows))
	for _, item := range rankingRows {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	items := make([]TopProductItem, 0, len(rankingRows))
	for _, row := range rankingRows {
		item := TopProductItem{
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Amount:    models.NewMoneyFromFloat(row.Amount),
		}
		if product, ok := productByID[row.ProductID]; ok {
			item.Name = product.Name
			item.Image = product.Image
		}
		items = append(items, item)
	}
	return items, nil
}

// MonthlySales 获取指定年份按月销售额（12 个月补零）
func (s *DashboardService) MonthlySales(year int) ([]MonthlySalesItem, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	startAt := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	endAt := startAt.AddDate(1, 0, 0)

	rows, err := s.dashboardRepo.GetMonthlySales(startAt, endAt, revenueStatuses())
	if err != nil {
		return nil, err
	}
	totalByMonth := make(map[string]float64, len(rows))
	for _, item := range rows {
		totalByMonth[item.Month] += item.Total
	}

	items := make([]MonthlySalesItem, 0, dashboardMonthCount)
	for month := 1; month <= dashboardMonthCount; month++ {
		key := fmt.Sprintf("%02d", month)
		items = append(items, MonthlySalesItem{
			Month: fmt.Sprintf("%d-%s", year, key),
			Total: models.NewMoneyFromFloat(totalByMonth[key]),
		})
	}
	return items, nil
}
