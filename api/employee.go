package api

import (
	"errors"
	"strings"
	"time"

	"galon/config"
	"galon/database"
	"galon/models"
	"galon/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EmployeeHandler 员工管理处理器
type EmployeeHandler struct {
	ledger *service.Ledger
	now    func() time.Time
}

// NewEmployeeHandler 创建员工管理处理器，额度按准入器的时钟计算
func NewEmployeeHandler(admitter *service.Admitter) *EmployeeHandler {
	return &EmployeeHandler{ledger: admitter.Ledger(), now: admitter.Now}
}

// EmployeeRequest 新增/修改员工请求
type EmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,max=50,employee_code" example:"EMP001"`
	FullName   string `json:"full_name" binding:"required,max=255" example:"John Doe"`
	Department string `json:"department" binding:"required,max=255" example:"IT"`
}

func (r *EmployeeRequest) trim() {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Department = strings.TrimSpace(r.Department)
}

// EmployeeDetail 员工详情，含领取记录
type EmployeeDetail struct {
	EmployeeQuota
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
	Transactions []models.GalonTransaction `json:"transactions"`
}

const msgEmployeeIDTaken = "The employee id has already been taken."

// List 员工列表
// @Summary 员工列表
// @Description 分页查询员工，按创建时间倒序，附带当月已领取与剩余桶数
// @Tags 员工管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param search query string false "按工牌编号、姓名或部门模糊搜索"
// @Success 200 {object} Response{data=PageResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /admin/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	query := database.DB.Model(&models.Employee{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + escapeLikeValue(search) + "%"
		query = query.Where("employee_id LIKE ? OR full_name LIKE ? OR department LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load employees"))
		return
	}

	var employees []models.Employee
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&employees).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to load employees"))
		return
	}

	ids := make([]uint, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	usage, err := h.ledger.UsageFor(c.Request.Context(), ids, h.now())
	if err != nil {
		config.LogError("api", "EmployeeHandler.List", "load usage", ids, err)
		InternalError(c, SafeErrorMessage(err, "Failed to load usage"))
		return
	}

	list := make([]EmployeeQuota, 0, len(employees))
	for _, e := range employees {
		list = append(list, newEmployeeQuota(e, usage[e.ID]))
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		List:     list,
	})
}

// Get 员工详情
// @Summary 员工详情
// @Description 返回员工信息、全部领取记录以及当月额度
// @Tags 员工管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "员工 ID"
// @Success 200 {object} Response{data=EmployeeDetail} "获取成功"
// @Failure 404 {object} Response "员工不存在"
// @Router /admin/employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c, msgEmployeeNotFound)
		return
	}

	var emp models.Employee
	err := database.DB.Preload("Transactions", func(db *gorm.DB) *gorm.DB {
		return db.Order("transaction_date DESC").Order("id DESC")
	}).First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, msgEmployeeNotFound)
			return
		}
		InternalError(c, SafeErrorMessage(err, "Failed to load employee"))
		return
	}

	// 已加载全部记录，直接在内存中汇总当月用量
	quota := service.NewQuotaSummary(service.SumMonthUsage(emp.Transactions, h.now()))
	txs := emp.Transactions
	if txs == nil {
		txs = []models.GalonTransaction{}
	}
	Success(c, EmployeeDetail{
		EmployeeQuota: newEmployeeQuota(emp, quota),
		CreatedAt:     emp.CreatedAt,
		UpdatedAt:     emp.UpdatedAt,
		Transactions:  txs,
	})
}

// Create 新增员工
// @Summary 新增员工
// @Tags 员工管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EmployeeRequest true "员工信息"
// @Success 200 {object} Response{data=models.Employee} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 422 {object} Response "工牌编号已存在"
// @Router /admin/employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid request"))
		return
	}
	req.trim()

	taken, err := employeeIDTaken(req.EmployeeID, 0)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to create employee"))
		return
	}
	if taken {
		Unprocessable(c, msgEmployeeIDTaken)
		return
	}

	emp := models.Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Department: req.Department,
	}
	if err := database.DB.Create(&emp).Error; err != nil {
		config.LogError("api", "EmployeeHandler.Create", "insert employee", req, err)
		InternalError(c, SafeErrorMessage(err, "Failed to create employee"))
		return
	}

	config.Logger().WithField("employee_id", emp.EmployeeID).Info("employee created")
	SuccessWithMessage(c, "Employee created successfully", emp)
}

// Update 修改员工
// @Summary 修改员工
// @Tags 员工管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "员工 ID"
// @Param request body EmployeeRequest true "员工信息"
// @Success 200 {object} Response{data=models.Employee} "修改成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "员工不存在"
// @Failure 422 {object} Response "工牌编号已存在"
// @Router /admin/employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c, msgEmployeeNotFound)
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid request"))
		return
	}
	req.trim()

	var emp models.Employee
	if err := database.DB.First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, msgEmployeeNotFound)
			return
		}
		InternalError(c, SafeErrorMessage(err, "Failed to update employee"))
		return
	}

	taken, err := employeeIDTaken(req.EmployeeID, emp.ID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to update employee"))
		return
	}
	if taken {
		Unprocessable(c, msgEmployeeIDTaken)
		return
	}

	emp.EmployeeID = req.EmployeeID
	emp.FullName = req.FullName
	emp.Department = req.Department
	if err := database.DB.Save(&emp).Error; err != nil {
		config.LogError("api", "EmployeeHandler.Update", "save employee", req, err)
		InternalError(c, SafeErrorMessage(err, "Failed to update employee"))
		return
	}

	SuccessWithMessage(c, "Employee updated successfully", emp)
}

// Delete 删除员工及其全部领取记录
// @Summary 删除员工
// @Tags 员工管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "员工 ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "员工不存在"
// @Router /admin/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		NotFound(c, msgEmployeeNotFound)
		return
	}

	var emp models.Employee
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&emp, id).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", emp.ID).Delete(&models.GalonTransaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&emp).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, msgEmployeeNotFound)
			return
		}
		config.LogError("api", "EmployeeHandler.Delete", "delete employee", id, err)
		InternalError(c, SafeErrorMessage(err, "Failed to delete employee"))
		return
	}

	config.Logger().WithField("employee_id", emp.EmployeeID).Info("employee deleted")
	SuccessWithMessage(c, "Employee deleted successfully", nil)
}

// employeeIDTaken 工牌编号是否已被其他员工占用，exceptID 为 0 时不排除任何人
func employeeIDTaken(code string, exceptID uint) (bool, error) {
	query := database.DB.Model(&models.Employee{}).Where("employee_id = ?", code)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
