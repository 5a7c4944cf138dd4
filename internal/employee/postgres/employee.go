package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/technova/leave-management/internal"
	employeeDatamodel "github.com/technova/leave-management/internal/core/datamodel/employee"
	"github.com/technova/leave-management/internal/employee"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	record := employee.ToDataModel(emp)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	emp.EmployeeID = record.EmployeeID
	return nil
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var record employeeDatamodel.Employee
	err := r.db.Where("employee_id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&record), nil
}

func (r *EmployeeRepository) GetByAccountID(accountID string) (*employee.Employee, error) {
	var record employeeDatamodel.Employee
	err := r.db.Where("account_id = ?", accountID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&record), nil
}

func (r *EmployeeRepository) GetAll() ([]*employee.Employee, error) {
	var records []*employeeDatamodel.Employee
	if err := r.db.Find(&records).Error; err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(records), nil
}

func (r *EmployeeRepository) ExistsByEmail(email string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.Model(&employeeDatamodel.Employee{}).Where("email = ?", email)
	if excludeID > 0 {
		q = q.Where("employee_id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EmployeeRepository) ExistsByCnic(cnic string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.Model(&employeeDatamodel.Employee{}).Where("cnic = ?", cnic)
	if excludeID > 0 {
		q = q.Where("employee_id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update overwrites the row guarded by the updated_at token read earlier.
// Zero affected rows means the row was deleted or modified concurrently.
func (r *EmployeeRepository) Update(emp *employee.Employee, prevUpdatedAt time.Time) error {
	res := r.db.Model(&employeeDatamodel.Employee{}).
		Where("employee_id = ? AND updated_at = ?", emp.EmployeeID, prevUpdatedAt).
		Updates(map[string]interface{}{
			"name":        emp.Name,
			"cnic":        emp.Cnic,
			"email":       emp.Email,
			"department":  emp.Department,
			"designation": emp.Designation,
			"is_active":   emp.IsActive,
			"updated_at":  emp.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrConcurrencyConflict
	}
	return nil
}

func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Where("employee_id = ?", id).Delete(&employeeDatamodel.Employee{}).Error
}
