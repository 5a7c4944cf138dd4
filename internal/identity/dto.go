package identity

import (
	"net/mail"
	"strings"

	"github.com/technova/leave-management/internal"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	var errs []internal.ValidationError
	if strings.TrimSpace(dto.Email) == "" {
		errs = append(errs, internal.ValidationError{Field: "email", Message: "email is required", Code: string(internal.ErrCodeValidationFailed)})
	} else if _, err := mail.ParseAddress(dto.Email); err != nil {
		errs = append(errs, internal.ValidationError{Field: "email", Message: "invalid email address", Code: string(internal.ErrCodeInvalidEmail)})
	}
	if dto.Password == "" {
		errs = append(errs, internal.ValidationError{Field: "password", Message: "password is required", Code: string(internal.ErrCodeValidationFailed)})
	}
	if len(errs) > 0 {
		return internal.ValidationErrors{Errors: errs}.ToAppError()
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() error {
	if dto.RefreshToken == "" {
		return internal.NewValidationFieldError("refresh_token", "refresh token is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
