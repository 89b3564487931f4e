package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"galon/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 额度台账与领取准入依赖的存储操作
type Repository interface {
	// FindEmployeeByCode 按工牌编号查找员工，不存在时返回 ErrEmployeeNotFound
	FindEmployeeByCode(ctx context.Context, code string) (*models.Employee, error)
	MonthUsage(ctx context.Context, employeeID uint, p Period) (int, error)
	UsageByEmployee(ctx context.Context, employeeIDs []uint, p Period) (map[uint]int, error)
	MonthlyUsage(ctx context.Context, p Period) ([]EmployeeUsage, error)
	CreateTransaction(ctx context.Context, tx *models.GalonTransaction) error
	// Atomic 在单个事务内执行 fn，事务期间持有该员工的行锁
	Atomic(ctx context.Context, employeeID uint, fn func(Repository) error) error
}

// GormRepository 基于 gorm 的 Repository 实现
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository 创建 gorm 存储
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindEmployeeByCode(ctx context.Context, code string) (*models.Employee, error) {
	var emp models.Employee
	if err := r.db.WithContext(ctx).Where("employee_id = ?", code).First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee %q: %w", code, err)
	}
	return &emp, nil
}

func (r *GormRepository) MonthUsage(ctx context.Context, employeeID uint, p Period) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.GalonTransaction{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, p.Month, p.Year).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum usage of employee %d: %w", employeeID, err)
	}
	return int(total), nil
}

func (r *GormRepository) UsageByEmployee(ctx context.Context, employeeIDs []uint, p Period) (map[uint]int, error) {
	type row struct {
		EmployeeID uint
		Used       int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.GalonTransaction{}).
		Select("employee_id, COALESCE(SUM(quantity), 0) AS used").
		Where("employee_id IN ? AND month = ? AND year = ?", employeeIDs, p.Month, p.Year).
		Group("employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sum usage by employee: %w", err)
	}
	out := make(map[uint]int, len(rows))
	for _, it := range rows {
		out[it.EmployeeID] = it.Used
	}
	return out, nil
}

func (r *GormRepository) MonthlyUsage(ctx context.Context, p Period) ([]EmployeeUsage, error) {
	type row struct {
		ID         uint
		EmployeeID string
		FullName   string
		Department string
		CreatedAt  time.Time
		UpdatedAt  time.Time
		Used       int
	}
	var rows []row
	err := r.db.WithContext(ctx).Table("employees").
		Select("employees.id, employees.employee_id, employees.full_name, employees.department, employees.created_at, employees.updated_at, COALESCE(SUM(galon_transactions.quantity), 0) AS used").
		Joins("LEFT JOIN galon_transactions ON galon_transactions.employee_id = employees.id AND galon_transactions.month = ? AND galon_transactions.year = ?", p.Month, p.Year).
		Group("employees.id").
		Order("employees.employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("monthly usage %d-%d: %w", p.Year, p.Month, err)
	}
	out := make([]EmployeeUsage, 0, len(rows))
	for _, it := range rows {
		out = append(out, EmployeeUsage{
			Employee: models.Employee{
				ID:         it.ID,
				EmployeeID: it.EmployeeID,
				FullName:   it.FullName,
				Department: it.Department,
				CreatedAt:  it.CreatedAt,
				UpdatedAt:  it.UpdatedAt,
			},
			QuotaSummary: NewQuotaSummary(it.Used),
		})
	}
	return out, nil
}

func (r *GormRepository) CreateTransaction(ctx context.Context, tx *models.GalonTransaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("insert galon transaction: %w", err)
	}
	return nil
}

func (r *GormRepository) Atomic(ctx context.Context, employeeID uint, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var emp models.Employee
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&emp, employeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return fmt.Errorf("lock employee %d: %w", employeeID, err)
		}
		return fn(&GormRepository{db: tx})
	})
}
