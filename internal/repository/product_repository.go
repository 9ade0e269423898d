package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/models"

	"gorm.io/gorm"
)

// CategoryCountRow 分类聚合统计行
type CategoryCountRow struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List() ([]models.Product, error)
	Search(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetByISBN(isbn string) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	ListPopular(criteria string, limit int) ([]models.Product, error)
	CategoryCounts() ([]CategoryCountRow, error)
	IncrementViewCount(id uint) (int64, error)
	IncrementSalesCount(id uint, quantity int) (int64, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 获取全部商品（按创建时间倒序）
func (r *GormProductRepository) List() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Search 按关键字与分类搜索商品
func (r *GormProductRepository) Search(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where(fmt.Sprintf("name %s ?", likeOperator(r.db)), like)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByISBN 根据 ISBN 获取商品
func (r *GormProductRepository) GetByISBN(isbn string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("isbn = ?", isbn).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListPopular 按维度获取热门商品
// 说明：criteria 必须是白名单内的列名，由 service 层校验后传入。
func (r *GormProductRepository) ListPopular(criteria string, limit int) ([]models.Product, error) {
	switch criteria {
	case constants.PopularCriteriaViewCount, constants.PopularCriteriaSalesCount, constants.PopularCriteriaRating:
	default:
		return nil, fmt.Errorf("unsupported popular criteria: %s", criteria)
	}
	if limit <= 0 {
		limit = 5
	}
	var products []models.Product
	if err := r.db.Order(fmt.Sprintf("%s DESC", criteria)).Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CategoryCounts 按分类聚合商品数量
func (r *GormProductRepository) CategoryCounts() ([]CategoryCountRow, error) {
	rows := make([]CategoryCountRow, 0)
	if err := r.db.Model(&models.Product{}).
		Select("category as name, COUNT(*) as count").
		Where("category <> ''").
		Group("category").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// IncrementViewCount 原子累加浏览次数
func (r *GormProductRepository) IncrementViewCount(id uint) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid product id")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementSalesCount 原子累加销量
func (r *GormProductRepository) IncrementSalesCount(id uint, quantity int) (int64, error) {
	if id == 0 || quantity <= 0 {
		return 0, errors.New("invalid sales count params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("sales_count", gorm.Expr("sales_count + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}
