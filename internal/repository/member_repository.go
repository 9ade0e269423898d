package repository

import (
	"errors"

	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/models"

	"gorm.io/gorm"
)

// MemberRepository 会员数据访问接口
type MemberRepository interface {
	GetByID(id uint) (*models.Member, error)
	GetByUsername(username string) (*models.Member, error)
	GetActiveByUsername(username string) (*models.Member, error)
	CountByUsername(username string) (int64, error)
	CountByPhone(phone string) (int64, error)
	CountByEmail(email string) (int64, error)
	Count() (int64, error)
	Create(member *models.Member) error
	Update(member *models.Member) error
	UpdateDeliveryInfo(id uint, name, phone, address string) error
}

// GormMemberRepository GORM 实现
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓库
func NewMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// GetByID 根据 ID 获取会员
func (r *GormMemberRepository) GetByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetByUsername 根据用户名获取会员
func (r *GormMemberRepository) GetByUsername(username string) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("username = ?", username).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetActiveByUsername 根据用户名获取启用状态的会员
func (r *GormMemberRepository) GetActiveByUsername(username string) (*models.Member, error) {
	var member models.Member
	err := r.db.Where("username = ? AND status = ?", username, constants.AccountStatusActive).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// CountByUsername 统计同用户名会员数量
func (r *GormMemberRepository) CountByUsername(username string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Member{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByPhone 统计同手机号会员数量
func (r *GormMemberRepository) CountByPhone(phone string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Member{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByEmail 统计同邮箱会员数量（空邮箱不参与唯一性）
func (r *GormMemberRepository) CountByEmail(email string) (int64, error) {
	if email == "" {
		return 0, nil
	}
	var count int64
	if err := r.db.Model(&models.Member{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count 统计会员总量
func (r *GormMemberRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Member{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建会员
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// Update 更新会员
func (r *GormMemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// UpdateDeliveryInfo 更新会员收货信息
func (r *GormMemberRepository) UpdateDeliveryInfo(id uint, name, phone, address string) error {
	if id == 0 {
		return nil
	}
	return r.db.Model(&models.Member{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":    name,
		"phone":   phone,
		"address": address,
	}).Error
}
