package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDashboardRepositoryTest(t *testing.T) (*GormDashboardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Member{}, &models.Product{}, &models.Order{}, &models.OrderDetail{}); err != nil {
		t.Fatalf("migrate dashboard models failed: %v", err)
	}
	return NewDashboardRepository(db), db
}

func seedRevenueOrder(t *testing.T, db *gorm.DB, orderNo, status string, productID uint, price float64, quantity int, createdAt time.Time) {
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
		t.Fatalf("create order detail failed: %v", err)
	}
}

func TestGetSummaryFiltersByStatus(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)
	now := time.Now()

	book := models.Product{Name: "三体", ISBN: "9787536692930"}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	seedRevenueOrder(t, db, "ORD-D-1", constants.OrderStatusPaid, book.ID, 59.8, 2, now)
	seedRevenueOrder(t, db, "ORD-D-2", constants.OrderStatusCreated, book.ID, 100, 1, now)

	row, err := repo.GetSummary([]string{constants.OrderStatusPaid})
	if err != nil {
		t.Fatalf("get summary failed: %v", err)
	}
	if row.TotalOrders != 2 {
		t.Fatalf("total orders want 2 got %d", row.TotalOrders)
	}
	if row.TotalProducts != 1 {
		t.Fatalf("total products want 1 got %d", row.TotalProducts)
	}
	// 未支付订单不计入销售额
	if fmt.Sprintf("%.2f", row.TotalSales) != "119.60" {
		t.Fatalf("total sales want 119.60 got %.2f", row.TotalSales)
	}
}

func TestGetTopProductsAggregatesAcrossOrders(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)
	now := time.Now()

	bookA := models.Product{Name: "三体", ISBN: "9787536692930"}
	bookB := models.Product{Name: "活着", ISBN: "9787506365437"}
	if err := db.Create(&bookA).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if err := db.Create(&bookB).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	seedRevenueOrder(t, db, "ORD-T-1", constants.OrderStatusPaid, bookA.ID, 59.8, 1, now)
	seedRevenueOrder(t, db, "ORD-T-2", constants.OrderStatusCompleted, bookA.ID, 59.8, 2, now)
	seedRevenueOrder(t, db, "ORD-T-3", constants.OrderStatusPaid, bookB.ID, 39.5, 1, now)
	seedRevenueOrder(t, db, "ORD-T-4", constants.OrderStatusCanceled, bookB.ID, 39.5, 9, now)

	statuses := []string{constants.OrderStatusPaid, constants.OrderStatusShipped, constants.OrderStatusCompleted}
	rows, err := repo.GetTopProducts(5, statuses)
	if err != nil {
		t.Fatalf("get top products failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows len want 2 got %d", len(rows))
	}
	if rows[0].ProductID != bookA.ID || rows[0].Quantity != 3 {
		t.Fatalf("top row want product %d qty 3 got %+v", bookA.ID, rows[0])
	}
	if rows[1].ProductID != bookB.ID || rows[1].Quantity != 1 {
		t.Fatalf("second row want product %d qty 1 got %+v", bookB.ID, rows[1])
	}
}

func TestGetDailySalesGroupsByDay(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	book := models.Product{Name: "小王子", ISBN: "9787020042494"}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	day1 := time.Date(2026, time.May, 3, 10, 0, 0, 0, time.Local)
	day2 := time.Date(2026, time.May, 4, 10, 0, 0, 0, time.Local)
	seedRevenueOrder(t, db, "ORD-DAY-1", constants.OrderStatusPaid, book.ID, 29.9, 1, day1)
	seedRevenueOrder(t, db, "ORD-DAY-2", constants.OrderStatusPaid, book.ID, 29.9, 2, day1)
	seedRevenueOrder(t, db, "ORD-DAY-3", constants.OrderStatusPaid, book.ID, 29.9, 1, day2)

	rows, err := repo.GetDailySales(day1.AddDate(0, 0, -1), day2.AddDate(0, 0, 1), []string{constants.OrderStatusPaid})
	if err != nil {
		t.Fatalf("get daily sales failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows len want 2 got %d", len(rows))
	}
	if rows[0].Day != "2026-05-03" {
		t.Fatalf("first day want 2026-05-03 got %s", rows[0].Day)
	}
	if fmt.Sprintf("%.2f", rows[0].Total) != "89.70" {
		t.Fatalf("first day total want 89.70 got %.2f", rows[0].Total)
	}
}

func TestGetMonthlySalesGroupsByMonth(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	book := models.Product{Name: "万历十五年", ISBN: "9787101146660"}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	march := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	july := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.Local)
	seedRevenueOrder(t, db, "ORD-MON-1", constants.OrderStatusCompleted, book.ID, 45.0, 2, march)
	seedRevenueOrder(t, db, "ORD-MON-2", constants.OrderStatusPaid, book.ID, 45.0, 1, july)

	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	rows, err := repo.GetMonthlySales(start, start.AddDate(1, 0, 0),
		[]string{constants.OrderStatusPaid, constants.OrderStatusCompleted})
	if err != nil {
		t.Fatalf("get monthly sales failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows len want 2 got %d", len(rows))
	}
	if rows[0].Month != "03" || fmt.Sprintf("%.2f", rows[0].Total) != "90.00" {
		t.Fatalf("march row unexpected: %+v", rows[0])
	}
	if rows[1].Month != "07" || fmt.Sprintf("%.2f", rows[1].Total) != "45.00" {
		t.Fatalf("july row unexpected: %+v", rows[1])
	}
}
