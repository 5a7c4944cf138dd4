package employee_test

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/technova/leave-management/internal"
	"github.com/technova/leave-management/internal/employee"
	"github.com/technova/leave-management/internal/identity"
	"github.com/technova/leave-management/internal/reconcile"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "EmployeeService Suite")
}

// Mock repository for testing
type mockEmployeeRepository struct {
	employees   map[int64]*employee.Employee
	createError error
	updateError error
	deleteError error
	existsError error
	nextID      int64
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{
		employees: make(map[int64]*employee.Employee),
		nextID:    1,
	}
}

func (m *mockEmployeeRepository) Create(emp *employee.Employee) error {
	if m.createError != nil {
		return m.createError
	}
	emp.EmployeeID = m.nextID
	m.nextID++
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	emp, exists := m.employees[id]
	if !exists {
		return nil, errors.New("employee not found")
	}
	return emp, nil
}

func (m *mockEmployeeRepository) GetByAccountID(accountID string) (*employee.Employee, error) {
	for _, emp := range m.employees {
		if emp.AccountID == accountID {
			return emp, nil
		}
	}
	return nil, errors.New("employee not found")
}

func (m *mockEmployeeRepository) GetAll() ([]*employee.Employee, error) {
	all := make([]*employee.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		all = append(all, emp)
	}
	return all, nil
}

func (m *mockEmployeeRepository) ExistsByEmail(email string, excludeID int64) (bool, error) {
	if m.existsError != nil {
		return false, m.existsError
	}
	for _, emp := range m.employees {
		if emp.Email == email && emp.EmployeeID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEmployeeRepository) ExistsByCnic(cnic string, excludeID int64) (bool, error) {
	if m.existsError != nil {
		return false, m.existsError
	}
	for _, emp := range m.employees {
		if emp.Cnic == cnic && emp.EmployeeID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEmployeeRepository) Update(emp *employee.Employee, prevUpdatedAt time.Time) error {
	if m.updateError != nil {
		return m.updateError
	}
	current, exists := m.employees[emp.EmployeeID]
	if !exists || !current.UpdatedAt.Equal(prevUpdatedAt) {
		return internal.ErrConcurrencyConflict
	}
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepository) Delete(id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.employees, id)
	return nil
}

// Mock account provisioner for testing
type mockAccountProvisioner struct {
	provisioned    []string
	deleted        []string
	provisionError error
	deleteError    error
	nextID         int
}

func (m *mockAccountProvisioner) ProvisionAccount(email, role, password string) (*identity.Account, error) {
	if m.provisionError != nil {
		return nil, m.provisionError
	}
	m.nextID++
	id := fmt.Sprintf("account-%d", m.nextID)
	m.provisioned = append(m.provisioned, id)
	return &identity.Account{ID: id, Email: email, Role: role, IsActive: true}, nil
}

func (m *mockAccountProvisioner) DeleteAccount(accountID string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	m.deleted = append(m.deleted, accountID)
	return nil
}

// Mock marker recorder for testing
type recordedMarker struct {
	Entity    string
	EntityRef string
	Action    string
	Detail    string
}

type mockMarkerRecorder struct {
	markers     []recordedMarker
	recordError error
}

func (m *mockMarkerRecorder) Record(entity, entityRef, action, detail string) error {
	if m.recordError != nil {
		return m.recordError
	}
	m.markers = append(m.markers, recordedMarker{entity, entityRef, action, detail})
	return nil
}

var _ = Describe("EmployeeService", func() {
	var (
		employeeService *employee.Service
		mockRepo        *mockEmployeeRepository
		mockAccounts    *mockAccountProvisioner
		mockMarkers     *mockMarkerRecorder
		logger          *slog.Logger
	)

	validDTO := func() employee.CreateEmployeeDTO {
		return employee.CreateEmployeeDTO{
			Name:        "Sara Malik",
			Cnic:        "35202-1234567-1",
			Email:       "sara.malik@technova.com",
			Department:  "Engineering",
			Designation: "Software Engineer",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockEmployeeRepository()
		mockAccounts = &mockAccountProvisioner{}
		mockMarkers = &mockMarkerRecorder{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		employeeService = employee.NewService(mockRepo, mockAccounts, mockMarkers, logger)
	})

	Describe("CreateEmployee", func() {
		It("should create the employee with a linked account and return the credentials", func() {
			result, err := employeeService.CreateEmployee(validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result).ToNot(BeNil())
			Expect(result.Employee.EmployeeID).To(BeNumerically(">", 0))
			Expect(result.Employee.IsActive).To(BeTrue())
			Expect(result.Employee.AccountID).To(Equal("account-1"))
			Expect(result.Credentials.Email).To(Equal("sara.malik@technova.com"))
			Expect(result.Credentials.Password).To(Equal(identity.DefaultEmployeePassword))
		})

		Context("when validation fails", func() {
			It("should reject a malformed CNIC and provision nothing", func() {
				dto := validDTO()
				dto.Cnic = "35202-123-1"

				result, err := employeeService.CreateEmployee(dto)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
				Expect(mockAccounts.provisioned).To(BeEmpty())
			})

			It("should reject an invalid email", func() {
				dto := validDTO()
				dto.Email = "not-an-email"

				result, err := employeeService.CreateEmployee(dto)

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})

		Context("when a duplicate exists", func() {
			BeforeEach(func() {
				_, err := employeeService.CreateEmployee(validDTO())
				Expect(err).ToNot(HaveOccurred())
			})

			It("should refuse a duplicate email without provisioning an account", func() {
				dto := validDTO()
				dto.Cnic = "35202-7654321-3"

				result, err := employeeService.CreateEmployee(dto)

				Expect(err).To(Equal(internal.ErrDuplicateEmail))
				Expect(result).To(BeNil())
				Expect(mockAccounts.provisioned).To(HaveLen(1))
			})

			It("should refuse a duplicate CNIC without provisioning an account", func() {
				dto := validDTO()
				dto.Email = "second@technova.com"

				result, err := employeeService.CreateEmployee(dto)

				Expect(err).To(Equal(internal.ErrDuplicateCnic))
				Expect(result).To(BeNil())
				Expect(mockAccounts.provisioned).To(HaveLen(1))
			})
		})

		Context("when account provisioning fails", func() {
			It("should return an error and store no employee", func() {
				mockAccounts.provisionError = errors.New("identity store down")

				result, err := employeeService.CreateEmployee(validDTO())

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
				Expect(mockRepo.employees).To(BeEmpty())
			})
		})

		Context("when the employee insert fails after the account was created", func() {
			BeforeEach(func() {
				mockRepo.createError = errors.New("insert failed")
			})

			It("should compensate by deleting the account", func() {
				result, err := employeeService.CreateEmployee(validDTO())

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
				Expect(mockAccounts.deleted).To(Equal([]string{"account-1"}))
				Expect(mockMarkers.markers).To(BeEmpty())
			})

			It("should record a reconciliation marker when the compensation also fails", func() {
				mockAccounts.deleteError = errors.New("identity store down")

				result, err := employeeService.CreateEmployee(validDTO())

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
				Expect(mockMarkers.markers).To(HaveLen(1))
				Expect(mockMarkers.markers[0].EntityRef).To(Equal("account-1"))
			})
		})
	})

	Describe("UpdateEmployee", func() {
		var createdID int64

		BeforeEach(func() {
			result, err := employeeService.CreateEmployee(validDTO())
			Expect(err).ToNot(HaveOccurred())
			createdID = result.Employee.EmployeeID
		})

		It("should overwrite the record and keep the account link", func() {
			dto := employee.UpdateEmployeeDTO{
				Name:        "Sara Malik",
				Cnic:        "35202-1234567-1",
				Email:       "sara.malik@technova.com",
				Department:  "Platform",
				Designation: "Senior Software Engineer",
				IsActive:    false,
			}

			result, err := employeeService.UpdateEmployee(createdID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Department).To(Equal("Platform"))
			Expect(result.IsActive).To(BeFalse())
			Expect(result.AccountID).To(Equal("account-1"))
		})

		It("should not count the employee's own row as a duplicate", func() {
			dto := employee.UpdateEmployeeDTO{
				Name:        "Sara Malik",
				Cnic:        "35202-1234567-1",
				Email:       "sara.malik@technova.com",
				Department:  "Engineering",
				Designation: "Software Engineer",
				IsActive:    true,
			}

			_, err := employeeService.UpdateEmployee(createdID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockMarkers.markers).To(BeEmpty())
		})

		It("should record an email drift marker when the directory email changes", func() {
			dto := employee.UpdateEmployeeDTO{
				Name:        "Sara Malik",
				Cnic:        "35202-1234567-1",
				Email:       "s.malik@technova.com",
				Department:  "Engineering",
				Designation: "Software Engineer",
				IsActive:    true,
			}

			_, err := employeeService.UpdateEmployee(createdID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockMarkers.markers).To(HaveLen(1))
			Expect(mockMarkers.markers[0].Entity).To(Equal(reconcile.EntityEmployee))
			Expect(mockMarkers.markers[0].Action).To(Equal(reconcile.ActionEmailDrift))
			Expect(mockMarkers.markers[0].EntityRef).To(Equal(strconv.FormatInt(createdID, 10)))
		})

		It("should refuse another employee's email", func() {
			second, err := employeeService.CreateEmployee(employee.CreateEmployeeDTO{
				Name:        "Hassan Raza",
				Cnic:        "35202-7654321-3",
				Email:       "hassan.raza@technova.com",
				Department:  "Finance",
				Designation: "Accountant",
			})
			Expect(err).ToNot(HaveOccurred())

			dto := employee.UpdateEmployeeDTO{
				Name:        "Hassan Raza",
				Cnic:        "35202-7654321-3",
				Email:       "sara.malik@technova.com",
				Department:  "Finance",
				Designation: "Accountant",
				IsActive:    true,
			}

			result, err := employeeService.UpdateEmployee(second.Employee.EmployeeID, dto)

			Expect(err).To(Equal(internal.ErrDuplicateEmail))
			Expect(result).To(BeNil())
		})

		It("should report not found for a missing employee", func() {
			dto := employee.UpdateEmployeeDTO{
				Name:        "Nobody",
				Cnic:        "11111-1111111-1",
				Email:       "nobody@technova.com",
				Department:  "None",
				Designation: "None",
			}

			result, err := employeeService.UpdateEmployee(99999, dto)

			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
			Expect(result).To(BeNil())
		})
	})

	Describe("DeleteEmployee", func() {
		var createdID int64

		BeforeEach(func() {
			result, err := employeeService.CreateEmployee(validDTO())
			Expect(err).ToNot(HaveOccurred())
			createdID = result.Employee.EmployeeID
		})

		It("should remove the employee and its account", func() {
			Expect(employeeService.DeleteEmployee(createdID)).To(Succeed())
			Expect(mockRepo.employees).To(BeEmpty())
			Expect(mockAccounts.deleted).To(Equal([]string{"account-1"}))
		})

		It("should succeed for an absent employee", func() {
			Expect(employeeService.DeleteEmployee(99999)).To(Succeed())
			Expect(mockAccounts.deleted).To(BeEmpty())
		})

		It("should record a marker when the account delete fails, and still succeed", func() {
			mockAccounts.deleteError = errors.New("identity store down")

			Expect(employeeService.DeleteEmployee(createdID)).To(Succeed())
			Expect(mockRepo.employees).To(BeEmpty())
			Expect(mockMarkers.markers).To(HaveLen(1))
			Expect(mockMarkers.markers[0].EntityRef).To(Equal("account-1"))
		})
	})
})
