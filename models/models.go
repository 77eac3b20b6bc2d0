package models

import (
	"time"
)

// EmployeeRef is the employee record as served by the employee service.
// Payroll only reads PositionID; the rest is carried for logging.
type EmployeeRef struct {
	ID           int64      `json:"employeeId"`
	Name         string     `json:"employeeName"`
	Email        string     `json:"employeeEmail"`
	JoinDate     *time.Time `json:"employeeJoinDate,omitempty"`
	PositionID   int64      `json:"positionId"`
	DepartmentID int64      `json:"departmentId"`
}

// PositionRef is the position record as served by the department service.
type PositionRef struct {
	ID              int64   `json:"positionId"`
	Title           string  `json:"positionTitle"`
	BaseSalary      float64 `json:"positionBaseSalary"`
	ExperienceBonus float64 `json:"positionExperienceBonus"`
}

// GrossPay is base salary plus experience bonus.
func (p PositionRef) GrossPay() float64 {
	return p.BaseSalary + p.ExperienceBonus
}

// PayrollRecord is written once per generated payroll and never updated.
type PayrollRecord struct {
	ID              int64     `gorm:"column:payroll_id;primaryKey;autoIncrement" json:"payrollId"`
	EmployeeID      int64     `gorm:"column:employee_id;not null;index" json:"employeeId"`
	PayDate         time.Time `gorm:"column:payroll_pay_date;not null" json:"payrollPayDate"`
	BaseSalary      float64   `gorm:"column:payroll_base_salary;not null" json:"payrollBaseSalary"`
	ExperienceBonus float64   `gorm:"column:payroll_experience_bonus;not null" json:"payrollExperienceBonus"`
	Deductions      float64   `gorm:"column:payroll_deductions;not null" json:"payrollDeductions"` // tax + ad-hoc
	TotalPay        float64   `gorm:"column:payroll_total_pay;not null" json:"payrollTotalPay"`
}

func (PayrollRecord) TableName() string {
	return "payrolls"
}
