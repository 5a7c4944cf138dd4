package leave

import "time"

// LeaveRequest rows carry updated_at as the optimistic-concurrency token:
// updates must match the previously read value or they affect zero rows.
type LeaveRequest struct {
	LeaveID     int64     `json:"leave_id" gorm:"column:leave_id;primaryKey"`
	EmployeeID  int64     `json:"employee_id" gorm:"column:employee_id;not null"`
	LeaveType   string    `json:"leave_type" gorm:"column:leave_type;default:Casual"`
	StartDate   time.Time `json:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate     time.Time `json:"end_date" gorm:"column:end_date;type:date;not null"`
	Reason      string    `json:"reason" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null;default:Pending"`
	CreatedDate time.Time `json:"created_date" gorm:"column:created_date"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
