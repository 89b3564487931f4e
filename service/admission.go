package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"galon/config"
	"galon/models"
)

// MaxQuantityPerTransaction 单笔领取上限
const MaxQuantityPerTransaction = 10

var (
	// ErrInvalidQuantity 单笔数量不在 1-10 之间
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrEmployeeNotFound 工牌编号不存在
	ErrEmployeeNotFound = errors.New("employee not found")
)

// InsufficientQuotaError 剩余额度不足，Remaining 为领取前的剩余额度
type InsufficientQuotaError struct {
	Remaining int
}

func (e *InsufficientQuotaError) Error() string {
	return fmt.Sprintf("Insufficient quota. Remaining: %d galons", e.Remaining)
}

// IsBusinessError 是否为可预期的业务错误（其余均为存储等内部故障）
func IsBusinessError(err error) bool {
	var insufficient *InsufficientQuotaError
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrEmployeeNotFound) ||
		errors.As(err, &insufficient)
}

// ValidQuantity 单笔数量是否合法
func ValidQuantity(q int) bool {
	return q >= 1 && q <= MaxQuantityPerTransaction
}

// NewTransaction 按 now 生成领取记录，月份与年份取自同一时刻
func NewTransaction(employeeID uint, quantity int, now time.Time) *models.GalonTransaction {
	p := PeriodOf(now)
	return &models.GalonTransaction{
		EmployeeID:      employeeID,
		Quantity:        quantity,
		TransactionDate: DateOf(now),
		Month:           p.Month,
		Year:            p.Year,
	}
}

// AdmissionMode 并发控制方式
type AdmissionMode string

const (
	// ModeSerialized 同一员工的准入串行执行，保证月度用量不超过额度
	ModeSerialized AdmissionMode = config.AdmissionModeSerialized
	// ModeCheckThenAct 先读剩余额度再写入，无互斥；并发时可能超额
	ModeCheckThenAct AdmissionMode = config.AdmissionModeCheckThenAct
)

// QuotaNotifier 员工当月额度用尽时的通知
type QuotaNotifier interface {
	QuotaExhausted(emp models.Employee, p Period) error
}

// AdmissionOptions 准入器配置，零值字段使用默认值
type AdmissionOptions struct {
	Mode     AdmissionMode
	Locker   Locker
	Notifier QuotaNotifier
	// Now 时钟，默认 time.Now，返回值的时区决定"当月"
	Now func() time.Time
}

// AdmissionResult 准入成功的结果
type AdmissionResult struct {
	Transaction models.GalonTransaction
	Employee    models.Employee
	Quota       QuotaSummary
}

// Admitter 领取准入：校验并写入一次领取
type Admitter struct {
	repo     Repository
	ledger   *Ledger
	mode     AdmissionMode
	locker   Locker
	notifier QuotaNotifier
	now      func() time.Time
}

// NewAdmitter 创建准入器
func NewAdmitter(repo Repository, opts AdmissionOptions) *Admitter {
	a := &Admitter{
		repo:     repo,
		ledger:   NewLedger(repo),
		mode:     opts.Mode,
		locker:   opts.Locker,
		notifier: opts.Notifier,
		now:      opts.Now,
	}
	if a.mode == "" {
		a.mode = ModeSerialized
	}
	if a.locker == nil {
		a.locker = NewKeyedMutex()
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// Ledger 准入器使用的额度台账
func (a *Admitter) Ledger() *Ledger {
	return a.ledger
}

// Now 准入器时钟的当前时刻
func (a *Admitter) Now() time.Time {
	return a.now()
}

// Admit 以当前时刻为员工 employeeCode 领取 quantity 桶
func (a *Admitter) Admit(ctx context.Context, employeeCode string, quantity int) (*AdmissionResult, error) {
	return a.AdmitAt(ctx, employeeCode, quantity, a.now())
}

// AdmitAt 校验顺序：数量、员工、剩余额度，首个失败即返回
func (a *Admitter) AdmitAt(ctx context.Context, employeeCode string, quantity int, now time.Time) (*AdmissionResult, error) {
	if !ValidQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}

	emp, err := a.repo.FindEmployeeByCode(ctx, employeeCode)
	if err != nil {
		return nil, err
	}

	var (
		created *models.GalonTransaction
		quota   QuotaSummary
	)
	switch a.mode {
	case ModeCheckThenAct:
		created, quota, err = a.checkAndInsert(ctx, a.repo, emp.ID, quantity, now)
	default:
		created, quota, err = a.admitSerialized(ctx, emp.ID, quantity, now)
	}
	if err != nil {
		return nil, err
	}

	// 写入已提交后不再读库
	log := config.Logger().WithFields(map[string]interface{}{
		"employee_id": emp.EmployeeID,
		"quantity":    quantity,
		"usage":       quota.CurrentUsage,
		"remaining":   quota.RemainingQuota,
	})
	log.Info("galon transaction admitted")

	if quota.RemainingQuota == 0 && a.notifier != nil {
		go func(emp models.Employee, p Period) {
			if err := a.notifier.QuotaExhausted(emp, p); err != nil {
				config.LogError("service", "Admitter.AdmitAt", "notify quota exhausted", emp.EmployeeID, err)
			}
		}(*emp, PeriodOf(now))
	}

	return &AdmissionResult{
		Transaction: *created,
		Employee:    *emp,
		Quota:       quota,
	}, nil
}

// admitSerialized 先取得员工级互斥锁，再在持有行锁的事务内读取并写入
func (a *Admitter) admitSerialized(ctx context.Context, employeeID uint, quantity int, now time.Time) (*models.GalonTransaction, QuotaSummary, error) {
	unlock, err := a.locker.Lock(ctx, employeeLockKey(employeeID))
	if err != nil {
		return nil, QuotaSummary{}, fmt.Errorf("acquire admission lock: %w", err)
	}
	defer unlock()

	var (
		created *models.GalonTransaction
		quota   QuotaSummary
	)
	err = a.repo.Atomic(ctx, employeeID, func(r Repository) error {
		tx, q, err := a.checkAndInsert(ctx, r, employeeID, quantity, now)
		if err != nil {
			return err
		}
		created, quota = tx, q
		return nil
	})
	if err != nil {
		return nil, QuotaSummary{}, err
	}
	return created, quota, nil
}

// checkAndInsert 返回的额度为本次读取的用量加上本次领取量
func (a *Admitter) checkAndInsert(ctx context.Context, r Repository, employeeID uint, quantity int, now time.Time) (*models.GalonTransaction, QuotaSummary, error) {
	used, err := r.MonthUsage(ctx, employeeID, PeriodOf(now))
	if err != nil {
		return nil, QuotaSummary{}, err
	}
	remaining := Remaining(used)
	if quantity > remaining {
		return nil, QuotaSummary{}, &InsufficientQuotaError{Remaining: remaining}
	}

	tx := NewTransaction(employeeID, quantity, now)
	if err := r.CreateTransaction(ctx, tx); err != nil {
		return nil, QuotaSummary{}, err
	}
	return tx, NewQuotaSummary(used + quantity), nil
}
