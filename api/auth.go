package api

import (
	"errors"
	"time"

	"galon/config"
	"galon/database"
	"galon/middleware"
	"galon/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler 管理员认证处理器
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// Login 管理员登录
// @Summary 管理员登录
// @Description 使用用户名和密码换取 JWT token，后续请求在 Authorization 头中携带 Bearer token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "用户名或密码错误"
// @Failure 429 {object} Response "尝试次数过多"
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid request"))
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			config.LogError("api", "AuthHandler.Login", "find user", req.Username, err)
		}
		Unauthorized(c, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "Invalid username or password")
		return
	}

	expire := h.cfg.JWT.ExpireTime
	token, err := middleware.GenerateToken(user.ID, user.Username, expire)
	if err != nil {
		config.LogError("api", "AuthHandler.Login", "generate token", user.Username, err)
		InternalError(c, "Failed to generate token")
		return
	}

	SuccessWithMessage(c, "Login successful", LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(expire),
		User:      user,
	})
}

// Profile 当前登录的管理员
// @Summary 当前管理员信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /admin/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, middleware.GetCurrentUserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Unauthorized(c, "User no longer exists")
			return
		}
		InternalError(c, SafeErrorMessage(err, "Failed to load profile"))
		return
	}
	Success(c, user)
}
