package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDashboardServiceTest(t *testing.T) (*DashboardService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Member{}, &models.Product{}, &models.Order{}, &models.OrderDetail{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewDashboardService(
		repository.NewDashboardRepository(db),
		repository.NewProductRepository(db),
	)
	return svc, db
}

func seedDashboardOrder(t *testing.T, db *gorm.DB, orderNo, status string, createdAt time.Time, productID uint, price float64, quantity int) {
	t.Helper()
	order := models.Order{
		OrderNo:       orderNo,
		MemberID:      1,
		Status:        status,
		CustomerName:  "张三",
		CustomerPhone: "13800000001",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}
	detail := models.OrderDetail{
		OrderID:   order.ID,
		ProductID: productID,
		Price:     models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Quantity:  quantity,
	}
	if err := db.Create(&detail).Error; err != nil {
		t.Fatalf("create detail failed: %v", err)
	}
}

func TestDashboardSummary(t *testing.T) {
	svc, db := setupDashboardServiceTest(t)

	member := models.Member{Name: "张三", Phone: "13800000001", Username: "zhangsan", PasswordHash: "x"}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("create member failed: %v", err)
	}
	book := models.Product{Name: "三体", ISBN: "9787536692930", Image: "/uploads/product/santi.jpg"}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	now := time.Now()
	// 已支付 + 历史写法 send 计入销售额，created 与 canceled 不计入
	seedDashboardOrder(t, db, "ORD-S-1", constants.OrderStatusPaid, now, book.ID, 59.8, 2)
	seedDashboardOrder(t, db, "ORD-S-2", constants.LegacyOrderStatusSend, now, book.ID, 39.5, 1)
	seedDashboardOrder(t, db, "ORD-S-3", constants.OrderStatusCreated, now, book.ID, 100, 1)
	seedDashboardOrder(t, db, "ORD-S-4", constants.OrderStatusCanceled, now, book.ID, 100, 1)

	summary, err := svc.Summary()
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if summary.TotalOrders != 4 {
		t.Fatalf("total orders want 4 got %d", summary.TotalOrders)
	}
	if summary.TotalMembers != 1 || summary.TotalProducts != 1 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if summary.TotalSales.String() != "159.10" {
		t.Fatalf("total sales want 159.10 got %s", summary.TotalSales.String())
	}

	// 历史写法 send 归并到 shipped
	if summary.StatusCounts[constants.OrderStatusShipped] != 1 {
		t.Fatalf("shipped count want 1 got %d", summary.StatusCounts[constants.OrderStatusShipped])
	}
	if _, ok := summary.StatusCounts[constants.LegacyOrderStatusSend]; ok {
		t.Fatalf("legacy send status should be normalized away: %+v", summary.StatusCounts)
	}

	if len(summary.DailySales) != dashboardDailyDays {
		t.Fatalf("daily sales want %d entries got %d", dashboardDailyDays, len(summary.DailySales))
	}

	if len(summary.TopProducts) != 1 {
		t.Fatalf("top products want 1 got %d", len(summary.TopProducts))
	}
	top := summary.TopProducts[0]
	if top.ProductID != book.ID || top.Name != "三体" || top.Quantity != 3 {
		t.Fatalf("unexpected top product: %+v", top)
	}
}

func TestMonthlySalesZeroFilled(t *testing.T) {
	svc, db := setupDashboardServiceTest(t)

	book := models.Product{Name: "活着", ISBN: "9787506365437"}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	year := 2025
	march := time.Date(year, time.March, 10, 12, 0, 0, 0, time.Local)
	seedDashboardOrder(t, db, "ORD-M-1", constants.OrderStatusCompleted, march, book.ID, 39.5, 2)

	items, err := svc.MonthlySales(year)
	if err != nil {
		t.Fatalf("monthly sales failed: %v", err)
	}
	if len(items) != dashboardMonthCount {
		t.Fatalf("months want %d got %d", dashboardMonthCount, len(items))
	}
	if items[2].Month != "2025-03" {
		t.Fatalf("month key want 2025-03 got %s", items[2].Month)
	}
	if items[2].Total.String() != "79.00" {
		t.Fatalf("march total want 79.00 got %s", items[2].Total.String())
	}
	if items[0].Total.String() != "0.00" {
		t.Fatalf("empty month should be zero, got %s", items[0].Total.String())
	}

	var yearlySum float64
	for _, item := range items {
		value, _ := item.Total.Float64()
		yearlySum += value
	}
	if fmt.Sprintf("%.2f", yearlySum) != "79.00" {
		t.Fatalf("yearly sum want 79.00 got %.2f", yearlySum)
	}
}
