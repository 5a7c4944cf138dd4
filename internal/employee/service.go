package employee

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/technova/leave-management/internal"
	"github.com/technova/leave-management/internal/identity"
	"github.com/technova/leave-management/internal/metrics"
	"github.com/technova/leave-management/internal/reconcile"
)

// AccountProvisioner is the slice of the identity service the directory needs:
// provisioning a login for a new employee and removing it on delete.
type AccountProvisioner interface {
	ProvisionAccount(email, role, password string) (*identity.Account, error)
	DeleteAccount(accountID string) error
}

// Repository defines the data access methods for employees
type Repository interface {
	Create(emp *Employee) error
	GetByID(id int64) (*Employee, error)
	GetByAccountID(accountID string) (*Employee, error)
	GetAll() ([]*Employee, error)
	ExistsByEmail(email string, excludeID int64) (bool, error)
	ExistsByCnic(cnic string, excludeID int64) (bool, error)
	// Update overwrites the row only if updated_at still matches prevUpdatedAt;
	// a zero-row result reports internal.ErrConcurrencyConflict.
	Update(emp *Employee, prevUpdatedAt time.Time) error
	Delete(id int64) error
}

// Service handles employee directory business logic
type Service struct {
	repo     Repository
	accounts AccountProvisioner
	markers  reconcile.Recorder
	logger   *slog.Logger
}

func NewService(repo Repository, accounts AccountProvisioner, markers reconcile.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		markers:  markers,
		logger:   logger,
	}
}

// ListEmployees returns every employee in natural storage order.
func (s *Service) ListEmployees() ([]*Employee, error) {
	employees, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

func (s *Service) GetEmployee(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

// GetByAccountID resolves the employee profile linked to an identity account.
func (s *Service) GetByAccountID(accountID string) (*Employee, error) {
	return s.repo.GetByAccountID(accountID)
}

// CreateEmployee validates the profile, provisions a linked identity account
// with the fixed default password and the Employee role, persists the row, and
// returns the generated credentials for manual relay. The account insert and
// the employee insert hit two stores without a shared transaction; on partial
// failure the account is compensated away, and if even that fails a
// reconciliation marker is left behind.
func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*CreatedEmployee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err)
		return nil, err
	}

	if exists, err := s.repo.ExistsByEmail(dto.Email, 0); err != nil {
		return nil, internal.NewInternalError("failed to check email uniqueness", err)
	} else if exists {
		return nil, internal.ErrDuplicateEmail
	}

	if exists, err := s.repo.ExistsByCnic(dto.Cnic, 0); err != nil {
		return nil, internal.NewInternalError("failed to check CNIC uniqueness", err)
	} else if exists {
		return nil, internal.ErrDuplicateCnic
	}

	account, err := s.accounts.ProvisionAccount(dto.Email, internal.RoleEmployee, identity.DefaultEmployeePassword)
	if err != nil {
		s.logger.Error("failed to provision identity account", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to provision identity account", err).
			WithDetails(string(internal.ErrCodeAccountProvisionFail))
	}

	now := time.Now()
	emp := &Employee{
		Name:        dto.Name,
		Cnic:        dto.Cnic,
		Email:       dto.Email,
		Department:  dto.Department,
		Designation: dto.Designation,
		IsActive:    true,
		AccountID:   account.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee, compensating account", "error", err, "account_id", account.ID)

		if delErr := s.accounts.DeleteAccount(account.ID); delErr != nil {
			s.logger.Error("compensating account delete failed, recording marker",
				"error", delErr, "account_id", account.ID)
			if markErr := s.markers.Record(reconcile.EntityAccount, account.ID, reconcile.ActionOrphaned,
				fmt.Sprintf("employee insert failed for %s: %v", dto.Email, err)); markErr != nil {
				s.logger.Error("failed to record reconciliation marker", "error", markErr, "account_id", account.ID)
			}
		}

		metrics.ObserveEmployeeProvisioned("failure")
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	metrics.ObserveEmployeeProvisioned("success")
	s.logger.Info("employee created",
		"employee_id", emp.EmployeeID,
		"email", emp.Email,
		"account_id", account.ID)

	return &CreatedEmployee{
		Employee: emp,
		Credentials: Credentials{
			Email:    emp.Email,
			Password: identity.DefaultEmployeePassword,
		},
	}, nil
}

// UpdateEmployee is a full-record overwrite guarded by the uniqueness checks
// and the optimistic-concurrency token of the previously read row.
func (s *Service) UpdateEmployee(id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	current, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	if exists, err := s.repo.ExistsByEmail(dto.Email, id); err != nil {
		return nil, internal.NewInternalError("failed to check email uniqueness", err)
	} else if exists {
		return nil, internal.ErrDuplicateEmail
	}

	if exists, err := s.repo.ExistsByCnic(dto.Cnic, id); err != nil {
		return nil, internal.NewInternalError("failed to check CNIC uniqueness", err)
	} else if exists {
		return nil, internal.ErrDuplicateCnic
	}

	updated := &Employee{
		EmployeeID:  current.EmployeeID,
		Name:        dto.Name,
		Cnic:        dto.Cnic,
		Email:       dto.Email,
		Department:  dto.Department,
		Designation: dto.Designation,
		IsActive:    dto.IsActive,
		AccountID:   current.AccountID,
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Update(updated, current.UpdatedAt); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}

	// The identity account keeps its original email, so a directory email
	// change leaves the login address diverged. Record it for reconciliation.
	if updated.Email != current.Email {
		s.logger.Warn("directory email changed, login email unchanged",
			"employee_id", id, "account_id", current.AccountID)
		if markErr := s.markers.Record(reconcile.EntityEmployee, strconv.FormatInt(id, 10), reconcile.ActionEmailDrift,
			fmt.Sprintf("directory email changed from %s to %s; account %s still signs in with the old address",
				current.Email, updated.Email, current.AccountID)); markErr != nil {
			s.logger.Error("failed to record reconciliation marker", "error", markErr, "employee_id", id)
		}
	}

	s.logger.Info("employee updated", "employee_id", id)
	return updated, nil
}

// DeleteEmployee removes the employee row and its linked identity account.
// Both halves are idempotent: a missing row or missing account is a no-op.
// A failed account delete after the row is gone leaves a reconciliation
// marker rather than an error the caller cannot act on.
func (s *Service) DeleteEmployee(id int64) error {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Info("delete employee: already absent", "employee_id", id)
		return nil
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return internal.NewInternalError("failed to delete employee", err)
	}

	if err := s.accounts.DeleteAccount(emp.AccountID); err != nil {
		s.logger.Error("account delete failed after employee delete, recording marker",
			"error", err, "account_id", emp.AccountID, "employee_id", id)
		if markErr := s.markers.Record(reconcile.EntityAccount, emp.AccountID, reconcile.ActionDeleteFailed,
			fmt.Sprintf("employee %d deleted but account removal failed: %v", id, err)); markErr != nil {
			s.logger.Error("failed to record reconciliation marker", "error", markErr, "account_id", emp.AccountID)
		}
	}

	s.logger.Info("employee deleted", "employee_id", id, "account_id", emp.AccountID)
	return nil
}
