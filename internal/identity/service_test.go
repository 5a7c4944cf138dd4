package identity_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/technova/leave-management/internal"
	accountDatamodel "github.com/technova/leave-management/internal/core/datamodel/account"
	"github.com/technova/leave-management/internal/identity"
)

func TestIdentityService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "IdentityService Suite")
}

// Mock repository for testing
type mockAccountRepository struct {
	accounts    map[string]*accountDatamodel.Account
	createError error
	deleteError error
	createCalls int
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{accounts: make(map[string]*accountDatamodel.Account)}
}

func (m *mockAccountRepository) Create(account *accountDatamodel.Account) error {
	m.createCalls++
	if m.createError != nil {
		return m.createError
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *mockAccountRepository) GetByID(id string) (*accountDatamodel.Account, error) {
	account, exists := m.accounts[id]
	if !exists {
		return nil, identity.ErrAccountNotFound
	}
	return account, nil
}

func (m *mockAccountRepository) GetByEmail(email string) (*accountDatamodel.Account, error) {
	for _, account := range m.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, identity.ErrAccountNotFound
}

func (m *mockAccountRepository) Delete(id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.accounts, id)
	return nil
}

var _ = Describe("IdentityService", func() {
	var (
		identityService *identity.Service
		mockRepo        *mockAccountRepository
		logger          *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockAccountRepository()
		tokenGen := identity.NewJWTTokenGenerator(
			"test-access-secret-0123456789-0123456789",
			"test-refresh-secret-0123456789-0123456789",
			15*time.Minute,
			168*time.Hour,
		)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		identityService = identity.NewService(mockRepo, tokenGen, 4, logger)
	})

	Describe("ProvisionAccount", func() {
		It("should create an active account with a hashed password", func() {
			account, err := identityService.ProvisionAccount("sara@technova.com", internal.RoleEmployee, identity.DefaultEmployeePassword)

			Expect(err).ToNot(HaveOccurred())
			Expect(account.ID).ToNot(BeEmpty())
			Expect(account.Role).To(Equal(internal.RoleEmployee))
			Expect(account.IsActive).To(BeTrue())

			stored := mockRepo.accounts[account.ID]
			Expect(stored.PasswordHash).ToNot(Equal(identity.DefaultEmployeePassword))
			Expect(identity.VerifyPassword(stored.PasswordHash, identity.DefaultEmployeePassword)).To(Succeed())
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			_, err := identityService.ProvisionAccount("sara@technova.com", internal.RoleEmployee, "Employee@123")
			Expect(err).ToNot(HaveOccurred())
		})

		It("should return a token pair for valid credentials", func() {
			tokens, err := identityService.Authenticate(identity.LoginDTO{
				Email:    "sara@technova.com",
				Password: "Employee@123",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())
		})

		It("should embed the account identity in the access token claims", func() {
			tokens, err := identityService.Authenticate(identity.LoginDTO{
				Email:    "sara@technova.com",
				Password: "Employee@123",
			})
			Expect(err).ToNot(HaveOccurred())

			claims, err := identityService.ValidateAccessToken(tokens.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Email).To(Equal("sara@technova.com"))
			Expect(claims.Role).To(Equal(internal.RoleEmployee))
			Expect(claims.AccountID).ToNot(BeEmpty())
		})

		It("should reject a wrong password", func() {
			_, err := identityService.Authenticate(identity.LoginDTO{
				Email:    "sara@technova.com",
				Password: "WrongPassword1",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an unknown email with the same error as a wrong password", func() {
			_, err := identityService.Authenticate(identity.LoginDTO{
				Email:    "nobody@technova.com",
				Password: "Employee@123",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an inactive account", func() {
			for _, account := range mockRepo.accounts {
				account.IsActive = false
			}

			_, err := identityService.Authenticate(identity.LoginDTO{
				Email:    "sara@technova.com",
				Password: "Employee@123",
			})

			Expect(err).To(Equal(internal.ErrAccountInactive))
		})
	})

	Describe("RefreshTokens", func() {
		var tokens identity.AuthTokens

		BeforeEach(func() {
			_, err := identityService.ProvisionAccount("sara@technova.com", internal.RoleEmployee, "Employee@123")
			Expect(err).ToNot(HaveOccurred())

			tokens, err = identityService.Authenticate(identity.LoginDTO{
				Email:    "sara@technova.com",
				Password: "Employee@123",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should issue a fresh token pair for a valid refresh token", func() {
			refreshed, err := identityService.RefreshTokens(tokens.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(refreshed.AccessToken).ToNot(BeEmpty())
			Expect(refreshed.RefreshToken).ToNot(BeEmpty())
		})

		It("should reject garbage input", func() {
			_, err := identityService.RefreshTokens("not-a-token")

			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("DeleteAccount", func() {
		It("should remove an existing account", func() {
			account, err := identityService.ProvisionAccount("sara@technova.com", internal.RoleEmployee, "Employee@123")
			Expect(err).ToNot(HaveOccurred())

			Expect(identityService.DeleteAccount(account.ID)).To(Succeed())
			Expect(mockRepo.accounts).To(BeEmpty())
		})

		It("should be a no-op for an absent account", func() {
			Expect(identityService.DeleteAccount("missing-id")).To(Succeed())
		})
	})

	Describe("Bootstrap", func() {
		It("should create the administrator account on first run", func() {
			Expect(identityService.Bootstrap("admin@technova.com", "Admin@123")).To(Succeed())

			account, err := mockRepo.GetByEmail("admin@technova.com")
			Expect(err).ToNot(HaveOccurred())
			Expect(account.Role).To(Equal(internal.RoleAdmin))
			Expect(account.IsActive).To(BeTrue())
		})

		It("should be idempotent across restarts", func() {
			Expect(identityService.Bootstrap("admin@technova.com", "Admin@123")).To(Succeed())
			Expect(identityService.Bootstrap("admin@technova.com", "Admin@123")).To(Succeed())

			Expect(mockRepo.createCalls).To(Equal(1))
		})

		It("should surface a store failure", func() {
			mockRepo.createError = errors.New("identity store down")

			Expect(identityService.Bootstrap("admin@technova.com", "Admin@123")).ToNot(Succeed())
		})
	})
})
