package public

import (
	"errors"
	"time"

	"github.com/bookshop-next/internal/http/response"
	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MemberSignUpRequest 会员注册请求
type MemberSignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address"`
}

// MemberSignUp 会员注册
func (h *Handler) MemberSignUp(c *gin.Context) {
	var req MemberSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	member, err := h.MemberAuthService.SignUp(service.SignUpInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMemberInput):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrUsernameExists),
			errors.Is(err, service.ErrPhoneExists),
			errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "注册失败", err)
		}
		return
	}

	response.Success(c, memberProfileResponse(member))
}

// MemberSignInRequest 会员登录请求
type MemberSignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// MemberSignIn 会员登录
func (h *Handler) MemberSignIn(c *gin.Context) {
	var req MemberSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	member, token, expiresAt, err := h.MemberAuthService.SignIn(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "登录失败", err)
		}
		return
	}

	response.Success(c, gin.H{
		"member":     memberProfileResponse(member),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// MemberInfo 获取当前会员信息
func (h *Handler) MemberInfo(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}

	member, err := h.MemberAuthService.Info(memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "会员不存在", nil)
		default:
			respondError(c, response.CodeInternal, "获取会员信息失败", err)
		}
		return
	}

	response.Success(c, memberProfileResponse(member))
}

// MemberHistory 获取当前会员历史订单
func (h *Handler) MemberHistory(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}

	orders, err := h.OrderService.HistoryByMember(memberID)
	if err != nil {
		respondError(c, response.CodeInternal, "获取历史订单失败", err)
		return
	}

	response.Success(c, gin.H{"orders": orders})
}

func memberProfileResponse(member *models.Member) gin.H {
	return gin.H{
		"id":       member.ID,
		"name":     member.Name,
		"phone":    member.Phone,
		"email":    member.Email,
		"username": member.Username,
		"address":  member.Address,
		"status":   member.Status,
	}
}
