package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/bookshop-next/internal/http/response"
	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SigninRequest 管理员登录请求
type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminSignin 管理员登录
func (h *Handler) AdminSignin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "登录失败", err)
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"admin":      adminProfileResponse(admin),
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// AdminInfo 获取当前管理员信息
func (h *Handler) AdminInfo(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	admin, err := h.AdminService.GetByID(adminID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "管理员不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取管理员信息失败", err)
		return
	}
	response.Success(c, adminProfileResponse(admin))
}

// AdminCreateRequest 创建管理员请求
type AdminCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// AdminCreate 创建管理员
func (h *Handler) AdminCreate(c *gin.Context) {
	var req AdminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	admin, err := h.AdminService.Create(service.AdminInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.respondAdminAccountError(c, err, "创建管理员失败")
		return
	}
	response.Success(c, adminProfileResponse(admin))
}

// AdminList 管理员列表（仅在职）
func (h *Handler) AdminList(c *gin.Context) {
	admins, err := h.AdminService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "获取管理员列表失败", err)
		return
	}

	items := make([]gin.H, 0, len(admins))
	for i := range admins {
		items = append(items, adminProfileResponse(&admins[i]))
	}
	response.Success(c, gin.H{"admins": items})
}

// AdminUpdateRequest 管理员资料更新请求
type AdminUpdateRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AdminUpdateSelf 更新当前管理员资料（密码留空保持不变）
func (h *Handler) AdminUpdateSelf(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	h.updateAdmin(c, adminID)
}

// AdminUpdateData 更新指定管理员资料
func (h *Handler) AdminUpdateData(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "管理员 ID 无效", nil)
		return
	}
	h.updateAdmin(c, uint(id))
}

func (h *Handler) updateAdmin(c *gin.Context, id uint) {
	var req AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	admin, err := h.AdminService.Update(id, service.AdminInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.respondAdminAccountError(c, err, "更新管理员失败")
		return
	}
	response.Success(c, adminProfileResponse(admin))
}

// AdminRemove 停用管理员
func (h *Handler) AdminRemove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "管理员 ID 无效", nil)
		return
	}

	if err := h.AdminService.Remove(uint(id)); err != nil {
		h.respondAdminAccountError(c, err, "停用管理员失败")
		return
	}
	response.Success(c, gin.H{"removed": true})
}

func (h *Handler) respondAdminAccountError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidAdminInput):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrUsernameExists):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrWeakPassword):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "管理员不存在", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

func adminProfileResponse(admin *models.Admin) gin.H {
	return gin.H{
		"id":       admin.ID,
		"name":     admin.Name,
		"username": admin.Username,
		"role":     admin.Role,
		"status":   admin.Status,
	}
}
