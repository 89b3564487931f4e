package models

import (
	"time"
)

// Employee 员工，employee_id 为工牌条码内容，全局唯一
type Employee struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	EmployeeID   string             `json:"employee_id" gorm:"size:50;not null;uniqueIndex"`
	FullName     string             `json:"full_name" gorm:"size:255;not null"`
	Department   string             `json:"department" gorm:"size:255;not null"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Transactions []GalonTransaction `json:"transactions,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Employee) TableName() string {
	return "employees"
}
