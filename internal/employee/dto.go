package employee

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/technova/leave-management/internal"
)

// cnicPattern matches the national identity number format NNNNN-NNNNNNN-N.
var cnicPattern = regexp.MustCompile(`^\d{5}-\d{7}-\d$`)

type CreateEmployeeDTO struct {
	Name        string `json:"name"`
	Cnic        string `json:"cnic"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

func (dto CreateEmployeeDTO) Validate() error {
	errs := validateEmployeeFields(dto.Name, dto.Cnic, dto.Email, dto.Department, dto.Designation)
	if len(errs) > 0 {
		return internal.ValidationErrors{Errors: errs}.ToAppError()
	}
	return nil
}

type UpdateEmployeeDTO struct {
	Name        string `json:"name"`
	Cnic        string `json:"cnic"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	IsActive    bool   `json:"is_active"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	errs := validateEmployeeFields(dto.Name, dto.Cnic, dto.Email, dto.Department, dto.Designation)
	if len(errs) > 0 {
		return internal.ValidationErrors{Errors: errs}.ToAppError()
	}
	return nil
}

func validateEmployeeFields(name, cnic, email, department, designation string) []internal.ValidationError {
	var errs []internal.ValidationError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, internal.ValidationError{Field: "name", Message: "name is required", Code: string(internal.ErrCodeValidationFailed)})
	}

	if strings.TrimSpace(cnic) == "" {
		errs = append(errs, internal.ValidationError{Field: "cnic", Message: "CNIC is required", Code: string(internal.ErrCodeValidationFailed)})
	} else if !cnicPattern.MatchString(cnic) {
		errs = append(errs, internal.ValidationError{Field: "cnic", Message: "CNIC format: XXXXX-XXXXXXX-X", Code: string(internal.ErrCodeInvalidCnic)})
	}

	if strings.TrimSpace(email) == "" {
		errs = append(errs, internal.ValidationError{Field: "email", Message: "email is required", Code: string(internal.ErrCodeValidationFailed)})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, internal.ValidationError{Field: "email", Message: "invalid email address", Code: string(internal.ErrCodeInvalidEmail)})
	}

	if strings.TrimSpace(department) == "" {
		errs = append(errs, internal.ValidationError{Field: "department", Message: "department is required", Code: string(internal.ErrCodeValidationFailed)})
	}

	if strings.TrimSpace(designation) == "" {
		errs = append(errs, internal.ValidationError{Field: "designation", Message: "designation is required", Code: string(internal.ErrCodeValidationFailed)})
	}

	return errs
}
