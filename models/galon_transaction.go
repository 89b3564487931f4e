package models

import (
	"time"
)

// GalonTransaction 领取记录，创建后不可修改
// Month/Year 在写入时由 TransactionDate 派生，聚合时不再解析日期
type GalonTransaction struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	EmployeeID      uint      `json:"employee_id" gorm:"not null;index:idx_galon_tx_employee_period,priority:1"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	TransactionDate time.Time `json:"transaction_date" gorm:"type:date;not null;index"`
	Month           int       `json:"month" gorm:"not null;index:idx_galon_tx_employee_period,priority:2"`
	Year            int       `json:"year" gorm:"not null;index:idx_galon_tx_employee_period,priority:3"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName 设置表名
func (GalonTransaction) TableName() string {
	return "galon_transactions"
}
