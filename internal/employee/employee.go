package employee

import (
	"time"

	employeeDatamodel "github.com/technova/leave-management/internal/core/datamodel/employee"
)

type Employee struct {
	EmployeeID  int64     `json:"employee_id"`
	Name        string    `json:"name"`
	Cnic        string    `json:"cnic"`
	Email       string    `json:"email"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	IsActive    bool      `json:"is_active"`
	AccountID   string    `json:"account_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Credentials is the login generated for a new employee, returned to the
// administrator for manual relay. Plaintext on purpose; see the directory
// component's documented weak point.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreatedEmployee struct {
	Employee    *Employee   `json:"employee"`
	Credentials Credentials `json:"credentials"`
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		EmployeeID:  e.EmployeeID,
		Name:        e.Name,
		Cnic:        e.Cnic,
		Email:       e.Email,
		Department:  e.Department,
		Designation: e.Designation,
		IsActive:    e.IsActive,
		AccountID:   e.AccountID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		EmployeeID:  e.EmployeeID,
		Name:        e.Name,
		Cnic:        e.Cnic,
		Email:       e.Email,
		Department:  e.Department,
		Designation: e.Designation,
		IsActive:    e.IsActive,
		AccountID:   e.AccountID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModelSlice(employees []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(employees))
	for i, e := range employees {
		result[i] = FromDataModel(e)
	}
	return result
}
