package dashboard

import (
	"time"

	"github.com/technova/leave-management/internal/leave"
)

// Preview sizes for the role-branched dashboard views. Fixed-size previews,
// not full listings.
const (
	RecentPendingLimit   = 10
	EmployeePreviewLimit = 15
	RecentLeavesLimit    = 10
	UpcomingLeavesLimit  = 5
)

// PendingLeaveSummary is a pending request with the employee name joined in.
type PendingLeaveSummary struct {
	LeaveID      int64     `json:"leave_id"`
	EmployeeName string    `json:"employee_name"`
	LeaveType    string    `json:"leave_type"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
}

type EmployeePreview struct {
	EmployeeID  int64  `json:"employee_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	IsActive    bool   `json:"is_active"`
}

type AdminDashboard struct {
	TotalEmployees  int64                 `json:"total_employees"`
	ActiveEmployees int64                 `json:"active_employees"`
	PendingLeaves   int64                 `json:"pending_leaves"`
	TodaysLeaves    int64                 `json:"todays_leaves"`
	RecentPending   []PendingLeaveSummary `json:"recent_pending"`
	Employees       []EmployeePreview     `json:"employees"`
}

type ProfileSummary struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Cnic        string `json:"cnic"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	IsActive    bool   `json:"is_active"`
}

type EmployeeDashboard struct {
	TotalLeaves    int64                 `json:"total_leaves"`
	ApprovedLeaves int64                 `json:"approved_leaves"`
	PendingLeaves  int64                 `json:"pending_leaves"`
	RejectedLeaves int64                 `json:"rejected_leaves"`
	RecentLeaves   []*leave.LeaveRequest `json:"recent_leaves"`
	UpcomingLeaves []*leave.LeaveRequest `json:"upcoming_leaves"`
	Profile        *ProfileSummary       `json:"profile,omitempty"`
}

// View is the role-branched dashboard payload; exactly one branch is set.
type View struct {
	Role     string             `json:"role"`
	Admin    *AdminDashboard    `json:"admin,omitempty"`
	Employee *EmployeeDashboard `json:"employee,omitempty"`
}
