package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/technova/leave-management/internal"
	"github.com/technova/leave-management/internal/identity"
)

var clearData bool

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"leave_requests", "employees", "accounts", "reconciliation_markers"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		adminID := seedAccount(db, cfg.Security.AdminEmail, cfg.Security.AdminPassword, internal.RoleAdmin)
		fmt.Println("Seeded admin account:", cfg.Security.AdminEmail, adminID)

		employees := []struct {
			Name        string
			Cnic        string
			Email       string
			Department  string
			Designation string
		}{
			{"Sara Malik", "35202-1234567-1", "sara.malik@technova.com", "Engineering", "Software Engineer"},
			{"Hassan Raza", "35202-7654321-3", "hassan.raza@technova.com", "Finance", "Accountant"},
			{"Ayesha Khan", "42101-1122334-5", "ayesha.khan@technova.com", "HR", "HR Officer"},
		}

		for _, e := range employees {
			accountID := seedAccount(db, e.Email, identity.DefaultEmployeePassword, internal.RoleEmployee)

			var exists int
			if err := db.Raw("SELECT 1 FROM employees WHERE email = ?", e.Email).Row().Scan(&exists); err == nil {
				fmt.Println("employee already exists:", e.Email)
				continue
			}

			if err := db.Exec(
				"INSERT INTO employees (name, cnic, email, department, designation, is_active, account_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, true, ?, now(), now())",
				e.Name, e.Cnic, e.Email, e.Department, e.Designation, accountID,
			).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Email, err)
			}
			fmt.Println("Seeded employee:", e.Email)
		}

		// A couple of requests so the dashboard has something to show
		leaves := []struct {
			Email     string
			LeaveType string
			StartDate string
			EndDate   string
			Reason    string
			Status    string
		}{
			{"sara.malik@technova.com", "Casual", "2026-09-10", "2026-09-12", "Family wedding out of the city", "Pending"},
			{"hassan.raza@technova.com", "Sick", "2026-09-01", "2026-09-03", "Recovering from a minor surgery", "Approved"},
		}

		for _, l := range leaves {
			var employeeID int64
			if err := db.Raw("SELECT employee_id FROM employees WHERE email = ?", l.Email).Row().Scan(&employeeID); err != nil {
				log.Fatalf("failed to lookup employee %s: %v", l.Email, err)
			}

			var exists int
			if err := db.Raw(
				"SELECT 1 FROM leave_requests WHERE employee_id = ? AND start_date = ?",
				employeeID, l.StartDate,
			).Row().Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, reason, status, created_date, updated_at) VALUES (?, ?, ?, ?, ?, ?, now(), now())",
				employeeID, l.LeaveType, l.StartDate, l.EndDate, l.Reason, l.Status,
			).Error; err != nil {
				log.Fatalf("failed to insert leave request for %s: %v", l.Email, err)
			}
			fmt.Println("Seeded leave request:", l.Email, l.StartDate)
		}

		fmt.Println("Sample data seeded successfully")
	},
}

// seedAccount inserts the account when missing and returns its id either way.
func seedAccount(db *gorm.DB, email, password, role string) string {
	var id string
	if err := db.Raw("SELECT id FROM accounts WHERE email = ?", email).Row().Scan(&id); err == nil {
		return id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password for %s: %v", email, err)
	}

	id = uuid.NewString()
	if err := db.Exec(
		"INSERT INTO accounts (id, email, password_hash, role, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
		id, email, string(hash), role,
	).Error; err != nil {
		log.Fatalf("failed to insert account %s: %v", email, err)
	}
	return id
}
