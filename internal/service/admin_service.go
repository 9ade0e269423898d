package service

import (
	"context"
	"strings"

	"github.com/bookshop-next/internal/authz"
	"github.com/bookshop-next/internal/cache"
	"github.com/bookshop-next/internal/config"
	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/logger"
	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AdminService 管理员账号服务
type AdminService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
	authz     *authz.Service
}

// NewAdminService 创建管理员账号服务实例
func NewAdminService(cfg *config.Config, adminRepo repository.AdminRepository, authzService *authz.Service) *AdminService {
	return &AdminService{
		cfg:       cfg,
		adminRepo: adminRepo,
		authz:     authzService,
	}
}

// AdminInput 管理员创建/更新参数
type AdminInput struct {
	Name     string
	Username string
	Password string
	Role     string
}

// List 列出在职管理员
func (s *AdminService) List() ([]models.Admin, error) {
	return s.adminRepo.ListActive()
}

// GetByID 按 ID 获取管理员
func (s *AdminService) GetByID(id uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	return admin, nil
}

// Create 创建管理员并同步授权角色
func (s *AdminService) Create(input AdminInput) (*models.Admin, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)
	if name == "" || username == "" || input.Password == "" {
		return nil, ErrInvalidAdminInput
	}

	existing, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Name:         name,
		Username:     username,
		PasswordHash: string(hash),
		Role:         normalizeAdminRole(input.Role),
		Status:       constants.AccountStatusActive,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	s.syncAdminRole(admin)
	return admin, nil
}

// Update 更新管理员资料（密码留空时保持原值）
func (s *AdminService) Update(id uint, input AdminInput) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}

	if username := strings.TrimSpace(input.Username); username != "" && username != admin.Username {
		existing, err := s.adminRepo.GetByUsername(username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrUsernameExists
		}
		admin.Username = username
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		admin.Name = name
	}
	if input.Password != "" {
		if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = string(hash)
	}

	roleChanged := false
	if role := strings.TrimSpace(input.Role); role != "" {
		normalized := normalizeAdminRole(role)
		if normalized != admin.Role {
			admin.Role = normalized
			roleChanged = true
		}
	}

	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	if roleChanged {
		s.syncAdminRole(admin)
	}
	_ = cache.DelAdminAuthState(context.Background(), admin.ID)
	return admin, nil
}

// Remove 停用管理员（软下线，保留订单等历史关联）
func (s *AdminService) Remove(id uint) error {
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	if err := s.adminRepo.UpdateStatus(id, constants.AccountStatusInactive); err != nil {
		return err
	}
	if s.authz != nil {
		if err := s.authz.SetAdminRoles(id, nil); err != nil {
			logger.Warnw("admin_role_clear_failed", "admin_id", id, "error", err)
		}
	}
	return cache.DelAdminAuthState(context.Background(), id)
}

// syncAdminRole 将管理员角色同步到授权策略
func (s *AdminService) syncAdminRole(admin *models.Admin) {
	if s.authz == nil || admin == nil {
		return
	}
	if err := s.authz.SetAdminRoles(admin.ID, []string{admin.Role}); err != nil {
		logger.Warnw("admin_role_sync_failed", "admin_id", admin.ID, "role", admin.Role, "error", err)
	}
}

func normalizeAdminRole(raw string) string {
	role := strings.ToLower(strings.TrimSpace(raw))
	if role == constants.AdminRoleManager {
		return constants.AdminRoleManager
	}
	return constants.AdminRoleStaff
}
