package employee

import "time"

type Employee struct {
	EmployeeID  int64     `json:"employee_id" gorm:"column:employee_id;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Cnic        string    `json:"cnic" gorm:"column:cnic;uniqueIndex;not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Department  string    `json:"department" gorm:"not null"`
	Designation string    `json:"designation" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	AccountID   string    `json:"account_id" gorm:"column:account_id;uniqueIndex"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
