package service

import (
	"testing"

	"galon/config"
	"galon/models"

	"github.com/stretchr/testify/assert"
)

func newTestEmailService(cfg config.EmailConfig) *EmailService {
	return NewEmailService(&cfg)
}

func TestGenerateQuotaExhaustedBody(t *testing.T) {
	s := newTestEmailService(config.EmailConfig{})
	emp := models.Employee{EmployeeID: "EMP001", FullName: "John <Doe>", Department: "IT"}

	body := s.generateQuotaExhaustedBody(emp, Period{Month: 3, Year: 2024})
	assert.Contains(t, body, "EMP001")
	assert.Contains(t, body, "John &lt;Doe&gt;")
	assert.Contains(t, body, "03/2024")
	assert.Contains(t, body, "10 galons")
}

func TestQuotaExhausted_Disabled(t *testing.T) {
	s := newTestEmailService(config.EmailConfig{})
	assert.Error(t, s.QuotaExhausted(models.Employee{}, Period{Month: 1, Year: 2024}))

	s = newTestEmailService(config.EmailConfig{Enabled: true})
	assert.Error(t, s.QuotaExhausted(models.Employee{}, Period{Month: 1, Year: 2024}))
}

func TestSendTestEmail_Disabled(t *testing.T) {
	s := newTestEmailService(config.EmailConfig{})
	assert.Error(t, s.SendTestEmail("ops@example.com"))
}
