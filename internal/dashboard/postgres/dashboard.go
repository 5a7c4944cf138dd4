package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/technova/leave-management/internal/dashboard"
	employeeDatamodel "github.com/technova/leave-management/internal/core/datamodel/employee"
	leaveDatamodel "github.com/technova/leave-management/internal/core/datamodel/leave"
	"github.com/technova/leave-management/internal/leave"
)

// DashboardRepository implements the dashboard.Repository interface using GORM
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountEmployees() (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountActiveEmployees() (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountLeavesByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&leaveDatamodel.LeaveRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountApprovedLeavesSpanning counts approved requests whose date range
// covers the given day.
func (r *DashboardRepository) CountApprovedLeavesSpanning(day time.Time) (int64, error) {
	d := truncateToDay(day)
	var count int64
	err := r.db.Model(&leaveDatamodel.LeaveRequest{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?", leave.StatusApproved, d, d).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) RecentPendingWithNames(limit int) ([]dashboard.PendingLeaveSummary, error) {
	var rows []dashboard.PendingLeaveSummary
	err := r.db.Model(&leaveDatamodel.LeaveRequest{}).
		Select("leave_requests.leave_id, employees.name AS employee_name, leave_requests.leave_type, leave_requests.start_date, leave_requests.end_date, leave_requests.status").
		Joins("JOIN employees ON employees.employee_id = leave_requests.employee_id").
		Where("leave_requests.status = ?", leave.StatusPending).
		Order("leave_requests.created_date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dashboard.PendingLeaveSummary{}
	}
	return rows, nil
}

func (r *DashboardRepository) EmployeePreview(limit int) ([]dashboard.EmployeePreview, error) {
	var rows []dashboard.EmployeePreview
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Select("employee_id, name, email, department, designation, is_active").
		Order("name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dashboard.EmployeePreview{}
	}
	return rows, nil
}

func (r *DashboardRepository) CountEmployeeLeaves(employeeID int64) (int64, error) {
	var count int64
	err := r.db.Model(&leaveDatamodel.LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountEmployeeLeavesByStatus(employeeID int64, status string) (int64, error) {
	var count int64
	err := r.db.Model(&leaveDatamodel.LeaveRequest{}).
		Where("employee_id = ? AND status = ?", employeeID, status).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) RecentEmployeeLeaves(employeeID int64, limit int) ([]*leave.LeaveRequest, error) {
	var records []*leaveDatamodel.LeaveRequest
	err := r.db.Where("employee_id = ?", employeeID).
		Order("created_date DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return leave.FromDataModelSlice(records), nil
}

// UpcomingApprovedLeaves lists approved requests starting strictly after the
// given day, soonest first.
func (r *DashboardRepository) UpcomingApprovedLeaves(employeeID int64, after time.Time, limit int) ([]*leave.LeaveRequest, error) {
	d := truncateToDay(after)
	var records []*leaveDatamodel.LeaveRequest
	err := r.db.Where("employee_id = ? AND status = ? AND start_date > ?", employeeID, leave.StatusApproved, d).
		Order("start_date ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return leave.FromDataModelSlice(records), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
