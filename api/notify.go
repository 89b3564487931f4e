package api

import (
	"galon/config"
	"galon/service"

	"github.com/gin-gonic/gin"
)

// NotifyHandler 邮件通知配置
type NotifyHandler struct {
	cfg   *config.EmailConfig
	email *service.EmailService
}

// NewNotifyHandler 创建邮件通知处理器
func NewNotifyHandler(cfg *config.EmailConfig) *NotifyHandler {
	return &NotifyHandler{cfg: cfg, email: service.NewEmailService(cfg)}
}

// TestEmailRequest 测试邮件请求
type TestEmailRequest struct {
	To string `json:"to" binding:"required,email" example:"ops@example.com"`
}

// Config 当前邮件配置（不含密码）
// @Summary 邮件通知配置
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Router /admin/email/config [get]
func (h *NotifyHandler) Config(c *gin.Context) {
	Success(c, gin.H{
		"enabled":   h.cfg.Enabled,
		"host":      h.cfg.Host,
		"port":      h.cfg.Port,
		"from":      h.cfg.From,
		"notify_to": h.cfg.NotifyTo,
	})
}

// SendTest 发送测试邮件
// @Summary 发送测试邮件
// @Tags 通知
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TestEmailRequest true "收件人"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "请求参数错误或邮件未启用"
// @Router /admin/email/test [post]
func (h *NotifyHandler) SendTest(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid request"))
		return
	}
	if !h.cfg.Enabled {
		BadRequest(c, "Email notifications are disabled")
		return
	}
	if err := h.email.SendTestEmail(req.To); err != nil {
		config.LogError("api", "NotifyHandler.SendTest", "send test email", req.To, err)
		InternalError(c, SafeErrorMessage(err, "Failed to send email"))
		return
	}
	SuccessWithMessage(c, "Test email sent", nil)
}
