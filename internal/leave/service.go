package leave

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/technova/leave-management/internal"
	"github.com/technova/leave-management/internal/employee"
	"github.com/technova/leave-management/internal/metrics"
)

// ProfileNotFoundNotice is surfaced alongside an empty list when the caller
// has no linked employee profile. It is a notice, not an error.
const ProfileNotFoundNotice = "Employee profile not found. Please contact admin."

// ProfileResolver maps an identity account to its employee profile.
type ProfileResolver interface {
	GetByAccountID(accountID string) (*employee.Employee, error)
}

// Repository defines the data access methods for leave requests
type Repository interface {
	Create(l *LeaveRequest) error
	GetByID(id int64) (*LeaveRequest, error)
	GetAll() ([]*LeaveRequest, error)
	GetByEmployeeID(employeeID int64) ([]*LeaveRequest, error)
	// Update overwrites the row only if updated_at still matches prevUpdatedAt;
	// a zero-row result reports internal.ErrConcurrencyConflict.
	Update(l *LeaveRequest, prevUpdatedAt time.Time) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
}

// ListResult carries a role-branched listing plus an optional notice for
// callers without a linked profile.
type ListResult struct {
	Leaves []*LeaveRequest `json:"leaves"`
	Notice string          `json:"notice,omitempty"`
}

// Service handles leave request business logic
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

// ListForCaller returns every request for administrators and only the
// caller's own requests otherwise, both ordered by creation time descending.
func (s *Service) ListForCaller(caller *internal.Caller) (*ListResult, error) {
	if caller.IsAdmin() {
		leaves, err := s.repo.GetAll()
		if err != nil {
			s.logger.Error("failed to list leave requests", "error", err)
			return nil, err
		}
		return &ListResult{Leaves: leaves}, nil
	}

	profile, err := s.profiles.GetByAccountID(caller.AccountID)
	if err != nil {
		if errors.Is(err, internal.ErrEmployeeNotFound) {
			s.logger.Warn("list leaves: no employee profile for caller", "account_id", caller.AccountID)
			return &ListResult{Leaves: []*LeaveRequest{}, Notice: ProfileNotFoundNotice}, nil
		}
		s.logger.Error("failed to resolve employee profile", "error", err, "account_id", caller.AccountID)
		return nil, internal.NewInternalError("failed to resolve employee profile", err)
	}

	leaves, err := s.repo.GetByEmployeeID(profile.EmployeeID)
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err, "employee_id", profile.EmployeeID)
		return nil, err
	}
	return &ListResult{Leaves: leaves}, nil
}

// CreateLeave submits a new request for the caller's own profile. The owning
// employee is always resolved from the caller identity, never from the payload.
func (s *Service) CreateLeave(caller *internal.Caller, dto CreateLeaveDTO) (*LeaveRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("leave validation failed", "error", err, "account_id", caller.AccountID)
		return nil, err
	}

	profile, err := s.profiles.GetByAccountID(caller.AccountID)
	if err != nil {
		if errors.Is(err, internal.ErrEmployeeNotFound) {
			s.logger.Warn("create leave: no employee profile for caller", "account_id", caller.AccountID)
			return nil, internal.NewNotFoundError("Cannot submit leave. Employee profile not found.", internal.ErrCodeProfileNotFound)
		}
		s.logger.Error("failed to resolve employee profile", "error", err, "account_id", caller.AccountID)
		return nil, internal.NewInternalError("failed to resolve employee profile", err)
	}

	leaveType := dto.LeaveType
	if leaveType == "" {
		leaveType = DefaultLeaveType
	}

	now := time.Now()
	l := &LeaveRequest{
		EmployeeID:  profile.EmployeeID,
		LeaveType:   leaveType,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		Reason:      dto.Reason,
		Status:      StatusPending,
		CreatedDate: now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "employee_id", profile.EmployeeID)
		return nil, internal.NewInternalError("failed to create leave request", err)
	}

	s.logger.Info("leave request created",
		"leave_id", l.LeaveID,
		"employee_id", profile.EmployeeID,
		"type", leaveType)

	return l, nil
}

// ownerProfile resolves the caller's profile for ownership checks. A caller
// without a profile cannot own any request, so not-found maps to the
// ownership denial; anything else is an infrastructure failure and must not
// be mistaken for one.
func (s *Service) ownerProfile(accountID string) (*employee.Employee, error) {
	profile, err := s.profiles.GetByAccountID(accountID)
	if err != nil {
		if errors.Is(err, internal.ErrEmployeeNotFound) {
			return nil, internal.ErrOwnLeaveOnly
		}
		s.logger.Error("failed to resolve employee profile", "error", err, "account_id", accountID)
		return nil, internal.NewInternalError("failed to resolve employee profile", err)
	}
	return profile, nil
}

// GetLeave fetches one request with the same access rules as Edit: admins may
// read any request, employees only their own.
func (s *Service) GetLeave(id int64, caller *internal.Caller) (*LeaveRequest, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrLeaveNotFound
	}

	if !caller.IsAdmin() {
		profile, err := s.ownerProfile(caller.AccountID)
		if err != nil {
			return nil, err
		}
		if profile.EmployeeID != l.EmployeeID {
			s.logger.Warn("leave access denied", "leave_id", id, "account_id", caller.AccountID)
			return nil, internal.ErrOwnLeaveOnly
		}
	}

	return l, nil
}

// UpdateLeave edits a request. Administrators may edit any request; employees
// only their own, and only while it is still pending. Denials carry a notice
// and leave the row untouched.
func (s *Service) UpdateLeave(id int64, caller *internal.Caller, dto UpdateLeaveDTO) (*LeaveRequest, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrLeaveNotFound
	}

	if !caller.IsAdmin() {
		profile, err := s.ownerProfile(caller.AccountID)
		if err != nil {
			return nil, err
		}
		if profile.EmployeeID != current.EmployeeID {
			s.logger.Warn("edit denied: not the owner", "leave_id", id, "account_id", caller.AccountID)
			return nil, internal.ErrOwnLeaveOnly
		}
		if !current.IsPending() {
			s.logger.Warn("edit denied: request no longer pending", "leave_id", id, "status", current.Status)
			return nil, internal.ErrPendingLeaveOnly
		}
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("leave validation failed", "error", err, "leave_id", id)
		return nil, err
	}

	leaveType := dto.LeaveType
	if leaveType == "" {
		leaveType = current.LeaveType
	}

	updated := &LeaveRequest{
		LeaveID:     current.LeaveID,
		EmployeeID:  current.EmployeeID,
		LeaveType:   leaveType,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		Reason:      dto.Reason,
		Status:      current.Status,
		CreatedDate: current.CreatedDate,
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Update(updated, current.UpdatedAt); err != nil {
		s.logger.Error("failed to update leave request", "error", err, "leave_id", id)
		return nil, err
	}

	s.logger.Info("leave request updated", "leave_id", id)
	return updated, nil
}

// CancelLeave removes a request. Owners and administrators may cancel at any
// status; the missing-status guard is a known inconsistency with Edit,
// preserved until product clarifies the intended rule.
func (s *Service) CancelLeave(id int64, caller *internal.Caller) error {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrLeaveNotFound
	}

	if !caller.IsAdmin() {
		profile, err := s.ownerProfile(caller.AccountID)
		if err != nil {
			return err
		}
		if profile.EmployeeID != current.EmployeeID {
			s.logger.Warn("cancel denied: not the owner", "leave_id", id, "account_id", caller.AccountID)
			return internal.ErrOwnLeaveOnly
		}
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to cancel leave request", "error", err, "leave_id", id)
		return internal.NewInternalError("failed to cancel leave request", err)
	}

	s.logger.Info("leave request cancelled", "leave_id", id, "account_id", caller.AccountID)
	return nil
}

// ApproveLeave sets the status to Approved. The write is unconditional on the
// current status: re-approving an approved request succeeds and the last
// write wins. Tightening this to pending-only needs product sign-off.
func (s *Service) ApproveLeave(id int64, caller *internal.Caller) error {
	return s.setStatus(id, caller, StatusApproved)
}

// RejectLeave sets the status to Rejected, with the same unconditional
// semantics as ApproveLeave.
func (s *Service) RejectLeave(id int64, caller *internal.Caller) error {
	return s.setStatus(id, caller, StatusRejected)
}

func (s *Service) setStatus(id int64, caller *internal.Caller, status string) error {
	if !caller.IsAdmin() {
		s.logger.Warn("status change denied: admin role required",
			"leave_id", id, "account_id", caller.AccountID, "status", status)
		return internal.ErrAdminOnly
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrLeaveNotFound
	}

	if err := s.repo.UpdateStatus(id, status); err != nil {
		s.logger.Error("failed to update leave status", "error", err, "leave_id", id, "status", status)
		return internal.NewInternalError("failed to update leave status", err)
	}

	metrics.ObserveLeaveDecision(strings.ToLower(status))
	s.logger.Info("leave status updated", "leave_id", id, "status", status, "account_id", caller.AccountID)
	return nil
}
