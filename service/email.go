package service

import (
	"fmt"
	"html"

	"galon/config"
	"galon/models"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// QuotaExhausted 通知管理员某员工当月额度已用尽
func (s *EmailService) QuotaExhausted(emp models.Employee, p Period) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email service disabled, set email.enabled=true")
	}
	if s.cfg.NotifyTo == "" {
		return fmt.Errorf("email.notify_to is empty")
	}

	subject := fmt.Sprintf("[Galon] Quota used up: %s (%02d/%d)", emp.EmployeeID, p.Month, p.Year)
	return s.sendEmail(s.cfg.NotifyTo, subject, s.generateQuotaExhaustedBody(emp, p))
}

// generateQuotaExhaustedBody 生成额度用尽通知内容
func (s *EmailService) generateQuotaExhaustedBody(emp models.Employee, p Period) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #0ea5e9, #0369a1); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        table { border-collapse: collapse; width: 100%%; }
        td { border: 1px solid #e5e7eb; padding: 8px 12px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💧 Galon Distribution</h1>
        </div>
        <div class="content">
            <p>The following employee has used the full monthly quota of <strong>%d galons</strong> for %02d/%d.</p>
            <table>
                <tr><td>Employee ID</td><td>%s</td></tr>
                <tr><td>Full name</td><td>%s</td></tr>
                <tr><td>Department</td><td>%s</td></tr>
            </table>
        </div>
        <div class="footer">
            <p>This message was sent automatically, please do not reply.</p>
        </div>
    </div>
</body>
</html>
`, MonthlyQuota, p.Month, p.Year,
		html.EscapeString(emp.EmployeeID),
		html.EscapeString(emp.FullName),
		html.EscapeString(emp.Department))
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email service disabled")
	}

	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ Email configured</h2>
    <p>If you received this message the mail settings are correct.</p>
</body>
</html>
`
	return s.sendEmail(toEmail, "[Galon] Email configuration test", body)
}
