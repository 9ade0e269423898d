package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bookshop-next/internal/cache"
	"github.com/bookshop-next/internal/config"
	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// MemberAuthService 会员认证服务
type MemberAuthService struct {
	cfg        *config.Config
	memberRepo repository.MemberRepository
}

// NewMemberAuthService 创建会员认证服务实例
func NewMemberAuthService(cfg *config.Config, memberRepo repository.MemberRepository) *MemberAuthService {
	return &MemberAuthService{
		cfg:        cfg,
		memberRepo: memberRepo,
	}
}

// MemberJWTClaims 会员 JWT 声明
type MemberJWTClaims struct {
	MemberID uint   `json:"member_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SignUpInput 会员注册参数
type SignUpInput struct {
	Name     string
	Phone    string
	Email    string
	Username string
	Password string
	Address  string
}

// SignUp 会员注册
func (s *MemberAuthService) SignUp(input SignUpInput) (*models.Member, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)
	if name == "" || phone == "" || username == "" || input.Password == "" {
		return nil, ErrInvalidMemberInput
	}

	// 唯一性预检查，唯一索引兜底
	if count, err := s.memberRepo.CountByUsername(username); err != nil {
		return nil, err
	} else if count > 0 {
		return nil, ErrUsernameExists
	}
	if count, err := s.memberRepo.CountByPhone(phone); err != nil {
		return nil, err
	} else if count > 0 {
		return nil, ErrPhoneExists
	}
	if count, err := s.memberRepo.CountByEmail(email); err != nil {
		return nil, err
	} else if count > 0 {
		return nil, ErrEmailExists
	}

	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		Name:         name,
		Phone:        phone,
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Address:      strings.TrimSpace(input.Address),
		Status:       constants.AccountStatusActive,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

// SignIn 会员登录（仅限启用状态账号）
func (s *MemberAuthService) SignIn(username, password string) (*models.Member, string, time.Time, error) {
	member, err := s.memberRepo.GetActiveByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if member == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(member)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	_ = cache.SetMemberAuthState(context.Background(), cache.BuildMemberAuthState(member))

	return member, token, expiresAt, nil
}

// GenerateJWT 生成会员 JWT Token
func (s *MemberAuthService) GenerateJWT(member *models.Member) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.MemberJWT.ExpireHours) * time.Hour)

	claims := MemberJWTClaims{
		MemberID: member.ID,
		Username: member.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.MemberJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析会员 JWT Token
func (s *MemberAuthService) ParseJWT(tokenString string) (*MemberJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &MemberJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.MemberJWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*MemberJWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的 token")
}

// Info 获取会员信息
func (s *MemberAuthService) Info(memberID uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	return member, nil
}
