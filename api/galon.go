package api

import (
	"errors"
	"net/http"
	"strings"

	"galon/config"
	"galon/models"
	"galon/service"

	"github.com/gin-gonic/gin"
)

const (
	msgEmployeeNotFound = "Employee not found"
	msgInternalError    = "Internal server error"
)

// EmployeeQuota 扫码页展示的员工及当月额度
type EmployeeQuota struct {
	ID             uint   `json:"id"`
	EmployeeID     string `json:"employee_id"`
	FullName       string `json:"full_name"`
	Department     string `json:"department"`
	CurrentUsage   int    `json:"current_usage"`
	RemainingQuota int    `json:"remaining_quota"`
	MonthlyQuota   int    `json:"monthly_quota"`
}

func newEmployeeQuota(emp models.Employee, q service.QuotaSummary) EmployeeQuota {
	return EmployeeQuota{
		ID:             emp.ID,
		EmployeeID:     emp.EmployeeID,
		FullName:       emp.FullName,
		Department:     emp.Department,
		CurrentUsage:   q.CurrentUsage,
		RemainingQuota: q.RemainingQuota,
		MonthlyQuota:   q.MonthlyQuota,
	}
}

// TransactionRequest 领取请求
type TransactionRequest struct {
	EmployeeID string `json:"employee_id" binding:"required" example:"EMP001"`
	Quantity   int    `json:"quantity" binding:"required,min=1,max=10" example:"2"`
}

// GalonHandler 扫码领取处理器
type GalonHandler struct {
	admitter *service.Admitter
}

// NewGalonHandler 创建扫码领取处理器
func NewGalonHandler(admitter *service.Admitter) *GalonHandler {
	return &GalonHandler{admitter: admitter}
}

// GetEmployee 查询员工当月额度
// @Summary 查询员工额度
// @Description 按工牌编号查询员工信息及当月已领取、剩余桶数，编号中可以包含斜杠
// @Tags 扫码领取
// @Produce json
// @Param employee_code path string true "工牌编号"
// @Success 200 {object} map[string]interface{} "员工及额度"
// @Failure 404 {object} Response "员工不存在"
// @Failure 429 {object} Response "请求过于频繁"
// @Failure 500 {object} Response "内部错误"
// @Router /api/employee/{employee_code} [get]
func (h *GalonHandler) GetEmployee(c *gin.Context) {
	code := strings.TrimPrefix(c.Param("employee_code"), "/")
	if code == "" {
		NotFound(c, msgEmployeeNotFound)
		return
	}

	usage, err := h.admitter.Ledger().Lookup(c.Request.Context(), code, h.admitter.Now())
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			NotFound(c, msgEmployeeNotFound)
			return
		}
		config.LogError("api", "GalonHandler.GetEmployee", "lookup employee", code, err)
		InternalError(c, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"employee": newEmployeeQuota(usage.Employee, usage.QuotaSummary),
	})
}

// CreateTransaction 领取桶装水
// @Summary 领取桶装水
// @Description 校验数量、员工和当月剩余额度后写入一条领取记录
// @Tags 扫码领取
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "领取信息"
// @Success 200 {object} map[string]interface{} "领取成功"
// @Failure 400 {object} Response "参数错误或额度不足"
// @Failure 404 {object} Response "员工不存在"
// @Failure 429 {object} Response "请求过于频繁"
// @Failure 500 {object} Response "内部错误"
// @Router /api/galon/transaction [post]
func (h *GalonHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, bindingMessage(err))
		return
	}

	res, err := h.admitter.Admit(c.Request.Context(), req.EmployeeID, req.Quantity)
	if err != nil {
		h.renderAdmissionError(c, req, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Transaction successful",
		"transaction": res.Transaction,
		"employee":    newEmployeeQuota(res.Employee, res.Quota),
	})
}

func (h *GalonHandler) renderAdmissionError(c *gin.Context, req TransactionRequest, err error) {
	var insufficient *service.InsufficientQuotaError
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		NotFound(c, msgEmployeeNotFound)
	case errors.As(err, &insufficient):
		BadRequest(c, insufficient.Error())
	case errors.Is(err, service.ErrInvalidQuantity):
		BadRequest(c, "The quantity must be between 1 and 10.")
	default:
		config.LogError("api", "GalonHandler.CreateTransaction", "admit transaction", req, err)
		InternalError(c, msgInternalError)
	}
}

// bindingMessage 请求校验失败时返回给扫码页的提示
func bindingMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "EmployeeID"):
		return "The employee id field is required."
	case strings.Contains(msg, "Quantity"), strings.Contains(msg, "quantity"):
		return "The quantity must be between 1 and 10."
	default:
		return "Invalid request"
	}
}
