package dashboard

import (
	"errors"
	"log/slog"
	"time"

	"github.com/technova/leave-management/internal"
	"github.com/technova/leave-management/internal/employee"
	"github.com/technova/leave-management/internal/leave"
)

// Repository defines the aggregation queries backing the dashboard. Every
// call issues fresh queries; nothing is cached or derived at write time.
type Repository interface {
	CountEmployees() (int64, error)
	CountActiveEmployees() (int64, error)
	CountLeavesByStatus(status string) (int64, error)
	CountApprovedLeavesSpanning(day time.Time) (int64, error)
	RecentPendingWithNames(limit int) ([]PendingLeaveSummary, error)
	EmployeePreview(limit int) ([]EmployeePreview, error)

	CountEmployeeLeaves(employeeID int64) (int64, error)
	CountEmployeeLeavesByStatus(employeeID int64, status string) (int64, error)
	RecentEmployeeLeaves(employeeID int64, limit int) ([]*leave.LeaveRequest, error)
	UpcomingApprovedLeaves(employeeID int64, after time.Time, limit int) ([]*leave.LeaveRequest, error)
}

// ProfileResolver maps an identity account to its employee profile.
type ProfileResolver interface {
	GetByAccountID(accountID string) (*employee.Employee, error)
}

type Service struct {
	repo     Repository
	profiles ProfileResolver
	logger   *slog.Logger
}

func NewService(repo Repository, profiles ProfileResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		logger:   logger,
	}
}

// ViewForCaller branches entirely on the caller's role.
func (s *Service) ViewForCaller(caller *internal.Caller) (*View, error) {
	if caller.IsAdmin() {
		admin, err := s.adminView()
		if err != nil {
			return nil, err
		}
		return &View{Role: internal.RoleAdmin, Admin: admin}, nil
	}

	emp, err := s.employeeView(caller)
	if err != nil {
		return nil, err
	}
	return &View{Role: internal.RoleEmployee, Employee: emp}, nil
}

func (s *Service) adminView() (*AdminDashboard, error) {
	view := &AdminDashboard{}
	var err error

	if view.TotalEmployees, err = s.repo.CountEmployees(); err != nil {
		s.logger.Error("dashboard: employee count failed", "error", err)
		return nil, err
	}
	if view.ActiveEmployees, err = s.repo.CountActiveEmployees(); err != nil {
		s.logger.Error("dashboard: active employee count failed", "error", err)
		return nil, err
	}
	if view.PendingLeaves, err = s.repo.CountLeavesByStatus(leave.StatusPending); err != nil {
		s.logger.Error("dashboard: pending leave count failed", "error", err)
		return nil, err
	}
	if view.TodaysLeaves, err = s.repo.CountApprovedLeavesSpanning(time.Now()); err != nil {
		s.logger.Error("dashboard: today's leave count failed", "error", err)
		return nil, err
	}
	if view.RecentPending, err = s.repo.RecentPendingWithNames(RecentPendingLimit); err != nil {
		s.logger.Error("dashboard: recent pending query failed", "error", err)
		return nil, err
	}
	if view.Employees, err = s.repo.EmployeePreview(EmployeePreviewLimit); err != nil {
		s.logger.Error("dashboard: employee preview query failed", "error", err)
		return nil, err
	}

	return view, nil
}

// employeeView renders the personal dashboard. A caller without a linked
// profile still gets a view, just with no personal data in it.
func (s *Service) employeeView(caller *internal.Caller) (*EmployeeDashboard, error) {
	profile, err := s.profiles.GetByAccountID(caller.AccountID)
	if err != nil {
		if errors.Is(err, internal.ErrEmployeeNotFound) {
			s.logger.Warn("dashboard: no employee profile for caller", "account_id", caller.AccountID)
			return &EmployeeDashboard{
				RecentLeaves:   []*leave.LeaveRequest{},
				UpcomingLeaves: []*leave.LeaveRequest{},
			}, nil
		}
		s.logger.Error("dashboard: profile lookup failed", "error", err, "account_id", caller.AccountID)
		return nil, err
	}

	view := &EmployeeDashboard{
		Profile: &ProfileSummary{
			Name:        profile.Name,
			Email:       profile.Email,
			Cnic:        profile.Cnic,
			Department:  profile.Department,
			Designation: profile.Designation,
			IsActive:    profile.IsActive,
		},
	}

	id := profile.EmployeeID
	if view.TotalLeaves, err = s.repo.CountEmployeeLeaves(id); err != nil {
		s.logger.Error("dashboard: leave count failed", "error", err, "employee_id", id)
		return nil, err
	}
	if view.ApprovedLeaves, err = s.repo.CountEmployeeLeavesByStatus(id, leave.StatusApproved); err != nil {
		return nil, err
	}
	if view.PendingLeaves, err = s.repo.CountEmployeeLeavesByStatus(id, leave.StatusPending); err != nil {
		return nil, err
	}
	if view.RejectedLeaves, err = s.repo.CountEmployeeLeavesByStatus(id, leave.StatusRejected); err != nil {
		return nil, err
	}
	if view.RecentLeaves, err = s.repo.RecentEmployeeLeaves(id, RecentLeavesLimit); err != nil {
		s.logger.Error("dashboard: recent leaves query failed", "error", err, "employee_id", id)
		return nil, err
	}
	if view.UpcomingLeaves, err = s.repo.UpcomingApprovedLeaves(id, time.Now(), UpcomingLeavesLimit); err != nil {
		s.logger.Error("dashboard: upcoming leaves query failed", "error", err, "employee_id", id)
		return nil, err
	}

	return view, nil
}
