package repository

import (
	"errors"
	"time"

	"github.com/bookshop-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, details []models.OrderDetail) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndMember(id uint, memberID uint) (*models.Order, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	ListByMember(memberID uint) ([]models.Order, error)
	LatestOrderNoByPrefix(prefix string) (string, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	CompleteOlderThan(statuses []string, before time.Time, completed string) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建订单与订单明细
func (r *GormOrderRepository) Create(order *models.Order, details []models.OrderDetail) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range details {
		details[i].OrderID = order.ID
	}
	if len(details) > 0 {
		if err := r.db.Create(&details).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	query := r.db.Preload("Details").Preload("Details.Product")
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndMember 获取会员订单详情（含所有权约束）
func (r *GormOrderRepository) GetByIDAndMember(id uint, memberID uint) (*models.Order, error) {
	var order models.Order
	query := r.db.Preload("Details").Preload("Details.Product")
	if err := query.Where("id = ? AND member_id = ?", id, memberID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListAdmin 后台订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})

	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.
		Preload("Member").
		Preload("Details").
		Preload("Details.Product").
		Order("id DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListByMember 会员历史订单
func (r *GormOrderRepository) ListByMember(memberID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.
		Preload("Details").
		Preload("Details.Product").
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// LatestOrderNoByPrefix 获取指定前缀下最新的订单号（用于当日序号生成）
func (r *GormOrderRepository) LatestOrderNoByPrefix(prefix string) (string, error) {
	var orderNo string
	err := r.db.Model(&models.Order{}).
		Where("order_no LIKE ?", prefix+"%").
		Order("order_no DESC").
		Limit(1).
		Pluck("order_no", &orderNo).Error
	if err != nil {
		return "", err
	}
	return orderNo, nil
}

// UpdateStatus 更新订单状态及附加字段
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// CompleteOlderThan 批量完成超期订单（按下单时间判断超期）
func (r *GormOrderRepository) CompleteOlderThan(statuses []string, before time.Time, completed string) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Order{}).
		Where("status IN ? AND created_at < ?", statuses, before).
		Update("status", completed)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
