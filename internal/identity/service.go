package identity

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/technova/leave-management/internal"
	accountDatamodel "github.com/technova/leave-management/internal/core/datamodel/account"
)

var ErrAccountNotFound = errors.New("account not found")

// Repository defines the data access methods for identity accounts.
type Repository interface {
	Create(account *accountDatamodel.Account) error
	GetByID(id string) (*accountDatamodel.Account, error)
	GetByEmail(email string) (*accountDatamodel.Account, error)
	Delete(id string) error
}

type Service struct {
	repo       Repository
	tokenGen   TokenGeneratorAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokenGen:   tokenGen,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns tokens.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	account, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if !account.IsActive {
		return AuthTokens{}, internal.ErrAccountInactive
	}

	if err := VerifyPassword(account.PasswordHash, dto.Password); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	return s.issueTokens(account)
}

// RefreshTokens validates a refresh token and issues a new token pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGen.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	account, err := s.repo.GetByID(claims.AccountID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	if !account.IsActive {
		return AuthTokens{}, internal.ErrAccountInactive
	}

	return s.issueTokens(account)
}

func (s *Service) issueTokens(account *accountDatamodel.Account) (AuthTokens, error) {
	accessToken, err := s.tokenGen.GenerateAccessToken(account.ID, account.Email, account.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGen.GenerateRefreshToken(account.ID, account.Email, account.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateToken(tokenString)
}

func (s *Service) GetAccount(accountID string) (*Account, error) {
	account, err := s.repo.GetByID(accountID)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	return FromDataModel(account), nil
}

// ProvisionAccount creates a new login for the given email with the supplied
// role and password. Used by the employee directory and the bootstrap routine.
func (s *Service) ProvisionAccount(email, role, password string) (*Account, error) {
	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	record := &accountDatamodel.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to provision account", "error", err, "email", email, "role", role)
		return nil, err
	}

	s.logger.Info("account provisioned", "account_id", record.ID, "email", email, "role", role)
	return FromDataModel(record), nil
}

// DeleteAccount removes a login. Deleting an already-absent account is a no-op.
func (s *Service) DeleteAccount(accountID string) error {
	if accountID == "" {
		return nil
	}

	if _, err := s.repo.GetByID(accountID); err != nil {
		s.logger.Info("delete account: already absent", "account_id", accountID)
		return nil
	}

	if err := s.repo.Delete(accountID); err != nil {
		s.logger.Error("failed to delete account", "error", err, "account_id", accountID)
		return err
	}

	s.logger.Info("account deleted", "account_id", accountID)
	return nil
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(accountID, email, role string) (string, error) {
	return j.generate(accountID, email, role, j.AccessTokenTTL, j.AccessTokenSecret)
}

// GenerateRefreshToken creates a new refresh token
func (j *JWTTokenGenerator) GenerateRefreshToken(accountID, email, role string) (string, error) {
	return j.generate(accountID, email, role, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) generate(accountID, email, role string, ttl time.Duration, secret []byte) (string, error) {
	expiresAt := time.Now().Add(ttl)

	claims := &Claims{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   accountID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		// Refresh tokens outlive the access TTL, so pick the secret by the
		// remaining lifetime of the presented token.
		if claims, ok := token.Claims.(*Claims); ok {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
