package leave

import (
	"time"

	leaveDatamodel "github.com/technova/leave-management/internal/core/datamodel/leave"
)

// Leave request statuses. Pending is the initial state; Approved and Rejected
// are terminal for owners, but administrators may overwrite the status
// unconditionally (last write wins).
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const DefaultLeaveType = "Casual"

type LeaveRequest struct {
	LeaveID      int64     `json:"leave_id"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	LeaveType    string    `json:"leave_type"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	CreatedDate  time.Time `json:"created_date"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (l *LeaveRequest) IsPending() bool {
	return l.Status == StatusPending
}

func ToDataModel(l *LeaveRequest) *leaveDatamodel.LeaveRequest {
	return &leaveDatamodel.LeaveRequest{
		LeaveID:     l.LeaveID,
		EmployeeID:  l.EmployeeID,
		LeaveType:   l.LeaveType,
		StartDate:   l.StartDate,
		EndDate:     l.EndDate,
		Reason:      l.Reason,
		Status:      l.Status,
		CreatedDate: l.CreatedDate,
		UpdatedAt:   l.UpdatedAt,
	}
}

func FromDataModel(l *leaveDatamodel.LeaveRequest) *LeaveRequest {
	return &LeaveRequest{
		LeaveID:     l.LeaveID,
		EmployeeID:  l.EmployeeID,
		LeaveType:   l.LeaveType,
		StartDate:   l.StartDate,
		EndDate:     l.EndDate,
		Reason:      l.Reason,
		Status:      l.Status,
		CreatedDate: l.CreatedDate,
		UpdatedAt:   l.UpdatedAt,
	}
}

func FromDataModelSlice(leaves []*leaveDatamodel.LeaveRequest) []*LeaveRequest {
	result := make([]*LeaveRequest, len(leaves))
	for i, l := range leaves {
		result[i] = FromDataModel(l)
	}
	return result
}
