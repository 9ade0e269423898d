package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bookshop-next/internal/config"
	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupMemberAuthServiceTest(t *testing.T) (*MemberAuthService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Member{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.MemberJWT.SecretKey = "test-member-secret-key-0123456789abcdef"
	cfg.MemberJWT.ExpireHours = 24
	cfg.Security.PasswordPolicy.MinLength = 6

	svc := NewMemberAuthService(cfg, repository.NewMemberRepository(db))
	return svc, db
}

func validSignUpInput() SignUpInput {
	return SignUpInput{
		Name:     "王五",
		Phone:    "13800000003",
		Email:    "wangwu@example.com",
		Username: "wangwu",
		Password: "secret-123",
		Address:  "广州市天河区 3 号",
	}
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := setupMemberAuthServiceTest(t)

	input := validSignUpInput()
	input.Username = " "
	if _, err := svc.SignUp(input); !errors.Is(err, ErrInvalidMemberInput) {
		t.Fatalf("expected ErrInvalidMemberInput for blank username, got %v", err)
	}

	input = validSignUpInput()
	input.Password = "123"
	if _, err := svc.SignUp(input); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for short password, got %v", err)
	}
}

func TestSignUpDuplicateChecks(t *testing.T) {
	svc, _ := setupMemberAuthServiceTest(t)

	first, err := svc.SignUp(validSignUpInput())
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if first.Status != constants.AccountStatusActive {
		t.Fatalf("new member status want active got %s", first.Status)
	}
	if first.PasswordHash == "secret-123" {
		t.Fatalf("password should be hashed")
	}

	dup := validSignUpInput()
	dup.Phone = "13800000004"
	dup.Email = "other@example.com"
	if _, err := svc.SignUp(dup); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}

	dup = validSignUpInput()
	dup.Username = "wangwu2"
	dup.Email = "other@example.com"
	if _, err := svc.SignUp(dup); !errors.Is(err, ErrPhoneExists) {
		t.Fatalf("expected ErrPhoneExists, got %v", err)
	}

	dup = validSignUpInput()
	dup.Username = "wangwu2"
	dup.Phone = "13800000004"
	if _, err := svc.SignUp(dup); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestSignInFlow(t *testing.T) {
	svc, db := setupMemberAuthServiceTest(t)

	if _, err := svc.SignUp(validSignUpInput()); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	if _, _, _, err := svc.SignIn("wangwu", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, _, err := svc.SignIn("nobody", "secret-123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	member, token, expiresAt, err := svc.SignIn("wangwu", "secret-123")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("token and expiry should be set")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.MemberID != member.ID || claims.Username != "wangwu" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// 停用账号后不允许登录
	if err := db.Model(&models.Member{}).Where("id = ?", member.ID).
		Update("status", constants.AccountStatusInactive).Error; err != nil {
		t.Fatalf("disable member failed: %v", err)
	}
	if _, _, _, err := svc.SignIn("wangwu", "secret-123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for disabled account, got %v", err)
	}
}
