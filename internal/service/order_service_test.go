package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bookshop-next/internal/config"
	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Member{}, &models.Product{}, &models.CartItem{}, &models.Order{}, &models.OrderDetail{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewOrderService(
		&config.Config{},
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewMemberRepository(db),
	)
	return svc, db
}

func seedCheckoutMember(t *testing.T, db *gorm.DB) *models.Member {
	t.Helper()
	member := &models.Member{
		Name:         "张三",
		Phone:        "13800000001",
		Username:     "zhangsan",
		PasswordHash: "x",
		Address:      "北京市海淀区 1 号",
		Status:       constants.AccountStatusActive,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("create member failed: %v", err)
	}
	return member
}

func seedCheckoutProduct(t *testing.T, db *gorm.DB, name, isbn string, price float64, sales int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		ISBN:        isbn,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Stock:       10,
		SalesCount:  sales,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCheckoutCreatesOrderFromCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	member := seedCheckoutMember(t, db)
	book1 := seedCheckoutProduct(t, db, "三体", "9787536692930", 59.8, 0)
	book2 := seedCheckoutProduct(t, db, "活着", "9787506365437", 39.5, 3)

	items := []models.CartItem{
		{MemberID: member.ID, ProductID: book1.ID, Quantity: 2},
		{MemberID: member.ID, ProductID: book2.ID, Quantity: 1},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("create cart items failed: %v", err)
	}

	order, err := svc.Checkout(member.ID, "uploads/slips/slip-1.jpg")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	wantPrefix := fmt.Sprintf("%s%s-", constants.OrderNoPrefix, time.Now().Format("20060102"))
	if !strings.HasPrefix(order.OrderNo, wantPrefix) {
		t.Fatalf("order no %s should have prefix %s", order.OrderNo, wantPrefix)
	}
	if order.Status != constants.OrderStatusCreated {
		t.Fatalf("status want created got %s", order.Status)
	}
	if order.CustomerName != member.Name || order.CustomerPhone != member.Phone || order.CustomerAddress != member.Address {
		t.Fatalf("customer snapshot mismatch: %+v", order)
	}
	if len(order.Details) != 2 {
		t.Fatalf("details want 2 got %d", len(order.Details))
	}

	var detailCount int64
	if err := db.Model(&models.OrderDetail{}).Where("order_id = ?", order.ID).Count(&detailCount).Error; err != nil {
		t.Fatalf("count details failed: %v", err)
	}
	if detailCount != 2 {
		t.Fatalf("persisted details want 2 got %d", detailCount)
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("member_id = ?", member.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", cartCount)
	}

	var reloaded1, reloaded2 models.Product
	if err := db.First(&reloaded1, book1.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if err := db.First(&reloaded2, book2.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded1.SalesCount != 2 {
		t.Fatalf("sales count want 2 got %d", reloaded1.SalesCount)
	}
	if reloaded2.SalesCount != 4 {
		t.Fatalf("sales count want 4 got %d", reloaded2.SalesCount)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	member := seedCheckoutMember(t, db)

	if _, err := svc.Checkout(member.ID, ""); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutOrderNoSequence(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	member := seedCheckoutMember(t, db)
	book := seedCheckoutProduct(t, db, "小王子", "9787020042494", 29.9, 0)

	prefix := fmt.Sprintf("%s%s-", constants.OrderNoPrefix, time.Now().Format("20060102"))
	existing := models.Order{
		OrderNo:       prefix + "0007",
		MemberID:      member.ID,
		Status:        constants.OrderStatusPaid,
		CustomerName:  member.Name,
		CustomerPhone: member.Phone,
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("create existing order failed: %v", err)
	}

	item := models.CartItem{MemberID: member.ID, ProductID: book.ID, Quantity: 1}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}

	order, err := svc.Checkout(member.ID, "")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.OrderNo != prefix+"0008" {
		t.Fatalf("order no want %s0008 got %s", prefix, order.OrderNo)
	}
}

func TestShipRequiresPaidStatus(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	member := seedCheckoutMember(t, db)

	order := models.Order{
		OrderNo:       "ORD20240101-0001",
		MemberID:      member.ID,
		Status:        constants.OrderStatusCreated,
		CustomerName:  member.Name,
		CustomerPhone: member.Phone,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := svc.Ship(order.ID, "SF123", "顺丰", ""); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition for created order, got %v", err)
	}

	if err := svc.MarkPaid(order.ID); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if err := svc.Ship(order.ID, " SF123 ", "顺丰", "次日达"); err != nil {
		t.Fatalf("ship failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusShipped {
		t.Fatalf("status want shipped got %s", reloaded.Status)
	}
	if reloaded.TrackCode != "SF123" {
		t.Fatalf("track code want SF123 got %q", reloaded.TrackCode)
	}
}

func TestCancelGuards(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	member := seedCheckoutMember(t, db)

	order := models.Order{
		OrderNo:       "ORD20240101-0002",
		MemberID:      member.ID,
		Status:        constants.OrderStatusCreated,
		CustomerName:  member.Name,
		CustomerPhone: member.Phone,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := svc.Cancel(order.ID, "   "); !errors.Is(err, ErrRemarkRequired) {
		t.Fatalf("expected ErrRemarkRequired, got %v", err)
	}
	if err := svc.Cancel(order.ID, "客户要求取消"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCanceled {
		t.Fatalf("status want canceled got %s", reloaded.Status)
	}
	if reloaded.Remark != "客户要求取消" {
		t.Fatalf("remark want 客户要求取消 got %q", reloaded.Remark)
	}

	// 已取消订单不可再次取消
	if err := svc.Cancel(order.ID, "重复取消"); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition for canceled order, got %v", err)
	}

	shipped := models.Order{
		OrderNo:       "ORD20240101-0003",
		MemberID:      member.ID,
		Status:        constants.OrderStatusShipped,
		CustomerName:  member.Name,
		CustomerPhone: member.Phone,
	}
	if err := db.Create(&shipped).Error; err != nil {
		t.Fatalf("create shipped order failed: %v", err)
	}
	if err := svc.Cancel(shipped.ID, "已发货不可取消"); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition for shipped order, got %v", err)
	}
}

func TestConfirmReceivedOwnership(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	member := seedCheckoutMember(t, db)

	order := models.Order{
		OrderNo:       "ORD20240102-0001",
		MemberID:      member.ID,
		Status:        constants.OrderStatusShipped,
		CustomerName:  member.Name,
		CustomerPhone: member.Phone,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := svc.ConfirmReceived(order.ID, member.ID+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other member, got %v", err)
	}
	if err := svc.ConfirmReceived(order.ID, member.ID); err != nil {
		t.Fatalf("confirm received failed: %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCompleted {
		t.Fatalf("status want completed got %s", reloaded.Status)
	}

	// 已完成订单重复确认收货应被拒绝
	if err := svc.ConfirmReceived(order.ID, member.ID); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestAutoCompleteSweep(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	member := seedCheckoutMember(t, db)

	stale := models.Order{
		OrderNo:       "ORD20240103-0001",
		MemberID:      member.ID,
		Status:        constants.OrderStatusShipped,
		CustomerName:  member.Name,
		CustomerPhone: member.Phone,
	}
	legacy := models.Order{
		OrderNo:       "ORD20240103-0002",
		MemberID:      member.ID,
		Status:        constants.LegacyOrderStatusSend,
		CustomerName:  member.Name,
		CustomerPhone: member.Phone,
	}
	fresh := models.Order{
		OrderNo:       "ORD20240103-0003",
		MemberID:      member.ID,
		Status:        constants.OrderStatusShipped,
		CustomerName:  member.Name,
		CustomerPhone: member.Phone,
	}
	if err := db.Create(&stale).Error; err != nil {
		t.Fatalf("create stale order failed: %v", err)
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("create legacy order failed: %v", err)
	}
	if err := db.Create(&fresh).Error; err != nil {
		t.Fatalf("create fresh order failed: %v", err)
	}

	old := time.Now().AddDate(0, 0, -20)
	if err := db.Model(&models.Order{}).
		Where("id IN ?", []uint{stale.ID, legacy.ID}).
		UpdateColumn("created_at", old).Error; err != nil {
		t.Fatalf("backdate orders failed: %v", err)
	}

	updated, err := svc.AutoComplete(15)
	if err != nil {
		t.Fatalf("auto complete failed: %v", err)
	}
	if updated != 2 {
		t.Fatalf("updated want 2 got %d", updated)
	}

	var completedCount int64
	if err := db.Model(&models.Order{}).
		Where("status = ?", constants.OrderStatusCompleted).
		Count(&completedCount).Error; err != nil {
		t.Fatalf("count completed failed: %v", err)
	}
	if completedCount != 2 {
		t.Fatalf("completed count want 2 got %d", completedCount)
	}

	var reloadedFresh models.Order
	if err := db.First(&reloadedFresh, fresh.ID).Error; err != nil {
		t.Fatalf("reload fresh order failed: %v", err)
	}
	if reloadedFresh.Status != constants.OrderStatusShipped {
		t.Fatalf("fresh shipped order should stay shipped, got %s", reloadedFresh.Status)
	}
}

func TestNormalizeStatusLegacyAliases(t *testing.T) {
	cases := map[string]string{
		"send":       constants.OrderStatusShipped,
		"Delivered":  constants.OrderStatusShipped,
		" complete ": constants.OrderStatusCompleted,
		"paid":       constants.OrderStatusPaid,
		"unknown":    "unknown",
	}
	for input, want := range cases {
		if got := NormalizeStatus(input); got != want {
			t.Fatalf("NormalizeStatus(%q) want %s got %s", input, want, got)
		}
	}
}
