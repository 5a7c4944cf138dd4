package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/technova/leave-management/internal"
	"github.com/technova/leave-management/internal/employee"
)

func TestEmployeeRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "EmployeeRepository Suite")
}

type SQLiteEmployee struct {
	EmployeeID  int64     `gorm:"primaryKey;column:employee_id"`
	Name        string    `gorm:"column:name;not null"`
	Cnic        string    `gorm:"column:cnic;uniqueIndex"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	Department  string    `gorm:"column:department"`
	Designation string    `gorm:"column:designation"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	AccountID   string    `gorm:"column:account_id;uniqueIndex"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteEmployee) TableName() string {
	return "employees"
}

var _ = Describe("EmployeeRepository", func() {
	var (
		db   *gorm.DB
		repo employee.Repository
	)

	baseTime := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	newEmployee := func(name, cnic, email, accountID string) *employee.Employee {
		return &employee.Employee{
			Name:        name,
			Cnic:        cnic,
			Email:       email,
			Department:  "Engineering",
			Designation: "Software Engineer",
			IsActive:    true,
			AccountID:   accountID,
			CreatedAt:   baseTime,
			UpdatedAt:   baseTime,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteEmployee{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewEmployeeRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create and GetByID", func() {
		It("should create an employee and assign an id", func() {
			emp := newEmployee("Sara Malik", "35202-1234567-1", "sara.malik@technova.com", "account-1")

			err := repo.Create(emp)
			Expect(err).NotTo(HaveOccurred())
			Expect(emp.EmployeeID).To(BeNumerically(">", 0))

			retrieved, err := repo.GetByID(emp.EmployeeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Name).To(Equal("Sara Malik"))
			Expect(retrieved.Cnic).To(Equal("35202-1234567-1"))
			Expect(retrieved.AccountID).To(Equal("account-1"))
		})

		It("should return ErrEmployeeNotFound for a non-existent id", func() {
			retrieved, err := repo.GetByID(99999)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
			Expect(retrieved).To(BeNil())
		})
	})

	Describe("GetByAccountID", func() {
		It("should resolve the profile linked to an account", func() {
			emp := newEmployee("Sara Malik", "35202-1234567-1", "sara.malik@technova.com", "account-1")
			Expect(repo.Create(emp)).To(Succeed())

			retrieved, err := repo.GetByAccountID("account-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.EmployeeID).To(Equal(emp.EmployeeID))
		})

		It("should return ErrEmployeeNotFound for an unlinked account", func() {
			retrieved, err := repo.GetByAccountID("no-such-account")
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
			Expect(retrieved).To(BeNil())
		})
	})

	Describe("ExistsByEmail and ExistsByCnic", func() {
		var created *employee.Employee

		BeforeEach(func() {
			created = newEmployee("Sara Malik", "35202-1234567-1", "sara.malik@technova.com", "account-1")
			Expect(repo.Create(created)).To(Succeed())
		})

		It("should find an existing email", func() {
			exists, err := repo.ExistsByEmail("sara.malik@technova.com", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("should ignore the excluded employee's own row", func() {
			exists, err := repo.ExistsByEmail("sara.malik@technova.com", created.EmployeeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("should find an existing CNIC", func() {
			exists, err := repo.ExistsByCnic("35202-1234567-1", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.ExistsByCnic("35202-1234567-1", created.EmployeeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("Update", func() {
		var created *employee.Employee

		BeforeEach(func() {
			created = newEmployee("Sara Malik", "35202-1234567-1", "sara.malik@technova.com", "account-1")
			Expect(repo.Create(created)).To(Succeed())
		})

		It("should update the row when the token matches", func() {
			updated := *created
			updated.Department = "Platform"
			updated.UpdatedAt = baseTime.Add(time.Minute)

			err := repo.Update(&updated, created.UpdatedAt)
			Expect(err).NotTo(HaveOccurred())

			retrieved, err := repo.GetByID(created.EmployeeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Department).To(Equal("Platform"))
		})

		It("should report a conflict when the token is stale", func() {
			updated := *created
			updated.Department = "Platform"
			updated.UpdatedAt = baseTime.Add(time.Minute)

			err := repo.Update(&updated, baseTime.Add(-time.Hour))
			Expect(err).To(Equal(internal.ErrConcurrencyConflict))

			retrieved, err := repo.GetByID(created.EmployeeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Department).To(Equal("Engineering"))
		})
	})

	Describe("Delete", func() {
		It("should remove the employee", func() {
			created := newEmployee("Sara Malik", "35202-1234567-1", "sara.malik@technova.com", "account-1")
			Expect(repo.Create(created)).To(Succeed())

			Expect(repo.Delete(created.EmployeeID)).To(Succeed())

			_, err := repo.GetByID(created.EmployeeID)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})
})
