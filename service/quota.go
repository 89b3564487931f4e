package service

import (
	"context"
	"time"

	"galon/models"
)

// MonthlyQuota 每位员工每个自然月可领取的桶数
const MonthlyQuota = 10

// Period 额度周期（自然月）
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// PeriodOf 返回 t 所在时区下的自然月
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Valid 月份在 1-12 且年份为正
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year > 0
}

// DateOf 截取 t 的日期部分（保留时区）
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Remaining 已用量对应的剩余额度，不会小于 0
func Remaining(used int) int {
	if used >= MonthlyQuota {
		return 0
	}
	return MonthlyQuota - used
}

// SumMonthUsage 对已加载的领取记录按 ref 所在月份求和
func SumMonthUsage(txs []models.GalonTransaction, ref time.Time) int {
	p := PeriodOf(ref)
	total := 0
	for _, tx := range txs {
		if tx.Month == p.Month && tx.Year == p.Year {
			total += tx.Quantity
		}
	}
	return total
}

// QuotaSummary 某员工在某月的额度使用情况
type QuotaSummary struct {
	CurrentUsage   int `json:"current_usage"`
	RemainingQuota int `json:"remaining_quota"`
	MonthlyQuota   int `json:"monthly_quota"`
}

// NewQuotaSummary 由已用量构造
func NewQuotaSummary(used int) QuotaSummary {
	return QuotaSummary{
		CurrentUsage:   used,
		RemainingQuota: Remaining(used),
		MonthlyQuota:   MonthlyQuota,
	}
}

// EmployeeUsage 月度报表行
type EmployeeUsage struct {
	models.Employee
	QuotaSummary
}

// Ledger 额度台账，只读
type Ledger struct {
	repo Repository
}

// NewLedger 创建额度台账
func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// CurrentMonthUsage 员工在 ref 所在月份的已领取总量，无记录时为 0
func (l *Ledger) CurrentMonthUsage(ctx context.Context, employeeID uint, ref time.Time) (int, error) {
	return l.repo.MonthUsage(ctx, employeeID, PeriodOf(ref))
}

// RemainingQuota 员工在 ref 所在月份的剩余额度
func (l *Ledger) RemainingQuota(ctx context.Context, employeeID uint, ref time.Time) (int, error) {
	used, err := l.CurrentMonthUsage(ctx, employeeID, ref)
	if err != nil {
		return 0, err
	}
	return Remaining(used), nil
}

// Summary 已用量与剩余额度
func (l *Ledger) Summary(ctx context.Context, employeeID uint, ref time.Time) (QuotaSummary, error) {
	used, err := l.CurrentMonthUsage(ctx, employeeID, ref)
	if err != nil {
		return QuotaSummary{}, err
	}
	return NewQuotaSummary(used), nil
}

// UsageFor 批量查询一组员工的当月额度，缺失的员工视为 0
func (l *Ledger) UsageFor(ctx context.Context, employeeIDs []uint, ref time.Time) (map[uint]QuotaSummary, error) {
	out := make(map[uint]QuotaSummary, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}
	used, err := l.repo.UsageByEmployee(ctx, employeeIDs, PeriodOf(ref))
	if err != nil {
		return nil, err
	}
	for _, id := range employeeIDs {
		out[id] = NewQuotaSummary(used[id])
	}
	return out, nil
}

// MonthlyReport 所有员工在指定月份的额度使用情况
func (l *Ledger) MonthlyReport(ctx context.Context, p Period) ([]EmployeeUsage, error) {
	return l.repo.MonthlyUsage(ctx, p)
}

// Lookup 按工牌编号查询员工及其在 ref 所在月份的额度
func (l *Ledger) Lookup(ctx context.Context, employeeCode string, ref time.Time) (*EmployeeUsage, error) {
	emp, err := l.repo.FindEmployeeByCode(ctx, employeeCode)
	if err != nil {
		return nil, err
	}
	s, err := l.Summary(ctx, emp.ID, ref)
	if err != nil {
		return nil, err
	}
	return &EmployeeUsage{Employee: *emp, QuotaSummary: s}, nil
}
