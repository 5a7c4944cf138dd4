package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/technova/leave-management/internal"
	leaveDatamodel "github.com/technova/leave-management/internal/core/datamodel/leave"
	"github.com/technova/leave-management/internal/leave"
)

// LeaveRepository implements the leave.Repository interface using GORM
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.Repository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(l *leave.LeaveRequest) error {
	record := leave.ToDataModel(l)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	l.LeaveID = record.LeaveID
	return nil
}

func (r *LeaveRepository) GetByID(id int64) (*leave.LeaveRequest, error) {
	var record leaveDatamodel.LeaveRequest
	err := r.db.Where("leave_id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrLeaveNotFound
		}
		return nil, err
	}
	return leave.FromDataModel(&record), nil
}

func (r *LeaveRepository) GetAll() ([]*leave.LeaveRequest, error) {
	var records []*leaveDatamodel.LeaveRequest
	err := r.db.Order("created_date DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return leave.FromDataModelSlice(records), nil
}

func (r *LeaveRepository) GetByEmployeeID(employeeID int64) ([]*leave.LeaveRequest, error) {
	var records []*leaveDatamodel.LeaveRequest
	err := r.db.Where("employee_id = ?", employeeID).
		Order("created_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return leave.FromDataModelSlice(records), nil
}

// Update overwrites the row guarded by the updated_at token read earlier.
// Zero affected rows means a concurrent writer got there first.
func (r *LeaveRepository) Update(l *leave.LeaveRequest, prevUpdatedAt time.Time) error {
	res := r.db.Model(&leaveDatamodel.LeaveRequest{}).
		Where("leave_id = ? AND updated_at = ?", l.LeaveID, prevUpdatedAt).
		Updates(map[string]interface{}{
			"leave_type": l.LeaveType,
			"start_date": l.StartDate,
			"end_date":   l.EndDate,
			"reason":     l.Reason,
			"status":     l.Status,
			"updated_at": l.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrConcurrencyConflict
	}
	return nil
}

// UpdateStatus sets the status unconditionally; the approve/reject flow does
// not guard on the prior state.
func (r *LeaveRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&leaveDatamodel.LeaveRequest{}).
		Where("leave_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *LeaveRepository) Delete(id int64) error {
	return r.db.Where("leave_id = ?", id).Delete(&leaveDatamodel.LeaveRequest{}).Error
}
