package repository

import (
	"errors"

	"github.com/bookshop-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByID(id uint) (*models.CartItem, error)
	GetByMemberAndProduct(memberID, productID uint) (*models.CartItem, error)
	ListByMember(memberID uint) ([]models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(id uint, quantity int) error
	IncrementQuantity(id uint, delta int) (int64, error)
	Delete(id uint) error
	ClearByMember(memberID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByID 根据 ID 获取购物车项
func (r *GormCartRepository) GetByID(id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByMemberAndProduct 获取会员某商品的购物车项
func (r *GormCartRepository) GetByMemberAndProduct(memberID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("member_id = ? AND product_id = ?", memberID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByMember 获取会员购物车项（含商品信息）
func (r *GormCartRepository) ListByMember(memberID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("member_id = ?", memberID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建购物车项
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateQuantity 覆盖写入数量
func (r *GormCartRepository) UpdateQuantity(id uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

// IncrementQuantity 原子累加数量
func (r *GormCartRepository) IncrementQuantity(id uint, delta int) (int64, error) {
	if id == 0 || delta <= 0 {
		return 0, errors.New("invalid cart increment params")
	}
	result := r.db.Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete 删除购物车项
func (r *GormCartRepository) Delete(id uint) error {
	return r.db.Delete(&models.CartItem{}, id).Error
}

// ClearByMember 清空会员购物车
func (r *GormCartRepository) ClearByMember(memberID uint) error {
	return r.db.Where("member_id = ?", memberID).Delete(&models.CartItem{}).Error
}
