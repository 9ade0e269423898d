package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bookshop-next/internal/config"
	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/logger"
	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/repository"

	"gorm.io/gorm"
)

// 订单号冲突重试上限（同日并发下单时的序号竞争）
const maxOrderNoAttempts = 3

// OrderService 订单服务
type OrderService struct {
	cfg         *config.Config
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	memberRepo  repository.MemberRepository
}

// NewOrderService 创建订单服务实例
func NewOrderService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	memberRepo repository.MemberRepository,
) *OrderService {
	return &OrderService{
		cfg:         cfg,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		memberRepo:  memberRepo,
	}
}

// Checkout 结算购物车生成订单
// 购物车读取、订单号生成、订单与明细写入、销量累加、购物车清空在同一事务内完成；
// 订单号唯一索引冲突时整体重试。
func (s *OrderService) Checkout(memberID uint, slipImage string) (*models.Order, error) {
	member, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}

	var created *models.Order
	for attempt := 1; attempt <= maxOrderNoAttempts; attempt++ {
		err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
			orderRepo := s.orderRepo.WithTx(tx)
			cartRepo := s.cartRepo.WithTx(tx)
			productRepo := s.productRepo.WithTx(tx)

			// 购物车在事务内读取，避免读后并发新增的行被清空却没有对应明细
			items, err := cartRepo.ListByMember(memberID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return ErrEmptyCart
			}

			orderNo, err := nextOrderNo(orderRepo, time.Now())
			if err != nil {
				return err
			}

			order := &models.Order{
				OrderNo:         orderNo,
				MemberID:        memberID,
				SlipImage:       slipImage,
				Status:          constants.OrderStatusCreated,
				TrackCode:       "",
				CustomerName:    member.Name,
				CustomerPhone:   member.Phone,
				CustomerAddress: member.Address,
			}

			details := make([]models.OrderDetail, 0, len(items))
			for _, item := range items {
				if item.Product == nil {
					return ErrNotFound
				}
				details = append(details, models.OrderDetail{
					ProductID: item.ProductID,
					Price:     item.Product.PriceAmount,
					Quantity:  item.Quantity,
				})
			}

			if err := orderRepo.Create(order, details); err != nil {
				return err
			}
			for _, item := range items {
				if _, err := productRepo.IncrementSalesCount(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			if err := cartRepo.ClearByMember(memberID); err != nil {
				return err
			}

			order.Details = details
			created = order
			return nil
		})
		if err == nil {
			return created, nil
		}
		if !isDuplicateOrderNo(err) {
			return nil, err
		}
		logger.Warnw("order_no_conflict_retry", "member_id", memberID, "attempt", attempt)
	}
	return nil, err
}

// nextOrderNo 生成当日递增订单号（ORD{yyyymmdd}-{4 位序号}）
func nextOrderNo(orderRepo repository.OrderRepository, now time.Time) (string, error) {
	prefix := fmt.Sprintf("%s%s-", constants.OrderNoPrefix, now.Format("20060102"))
	latest, err := orderRepo.LatestOrderNoByPrefix(prefix)
	if err != nil {
		return "", err
	}
	seq := 1
	if latest != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(latest, prefix)); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

func isDuplicateOrderNo(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique") || strings.Contains(message, "duplicate")
}

// MarkPaid 标记订单已支付（无条件覆盖，同时清空备注）
func (s *OrderService) MarkPaid(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	return s.orderRepo.UpdateStatus(orderID, constants.OrderStatusPaid, map[string]interface{}{
		"remark": "",
	})
}

// Ship 发货（仅限已支付订单）
func (s *OrderService) Ship(orderID uint, trackCode, express, remark string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	if NormalizeStatus(order.Status) != constants.OrderStatusPaid {
		return ErrInvalidStatusTransition
	}
	return s.orderRepo.UpdateStatus(orderID, constants.OrderStatusShipped, map[string]interface{}{
		"track_code": strings.TrimSpace(trackCode),
		"express":    strings.TrimSpace(express),
		"remark":     strings.TrimSpace(remark),
	})
}

// Cancel 取消订单（必须填写备注，终态与已发货订单不可取消）
func (s *OrderService) Cancel(orderID uint, remark string) error {
	trimmed := strings.TrimSpace(remark)
	if trimmed == "" {
		return ErrRemarkRequired
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	if !canTransition(order.Status, constants.OrderStatusCanceled) {
		return ErrInvalidStatusTransition
	}
	return s.orderRepo.UpdateStatus(orderID, constants.OrderStatusCanceled, map[string]interface{}{
		"remark": trimmed,
	})
}

// ConfirmReceived 会员确认收货（仅限本人已发货订单）
func (s *OrderService) ConfirmReceived(orderID, memberID uint) error {
	order, err := s.orderRepo.GetByIDAndMember(orderID, memberID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	if NormalizeStatus(order.Status) != constants.OrderStatusShipped {
		return ErrInvalidStatusTransition
	}
	return s.orderRepo.UpdateStatus(orderID, constants.OrderStatusCompleted, nil)
}

// AutoComplete 批量完成超期未确认收货的已发货订单，返回更新数量
func (s *OrderService) AutoComplete(olderThanDays int) (int64, error) {
	if olderThanDays <= 0 {
		olderThanDays = constants.OrderAutoCompleteDefaultDays
	}
	before := time.Now().AddDate(0, 0, -olderThanDays)
	updated, err := s.orderRepo.CompleteOlderThan(shippedStatuses(), before, constants.OrderStatusCompleted)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		logger.Infow("orders_auto_completed", "count", updated, "older_than_days", olderThanDays)
	}
	return updated, nil
}

// AutoCompleteDays 返回配置的自动完成天数
func (s *OrderService) AutoCompleteDays() int {
	if s.cfg != nil && s.cfg.Order.AutoCompleteDays > 0 {
		return s.cfg.Order.AutoCompleteDays
	}
	return constants.OrderAutoCompleteDefaultDays
}

// ListAll 后台订单列表
func (s *OrderService) ListAll(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// HistoryByMember 会员历史订单
func (s *OrderService) HistoryByMember(memberID uint) ([]models.Order, error) {
	return s.orderRepo.ListByMember(memberID)
}
