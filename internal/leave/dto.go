package leave

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/technova/leave-management/internal"
)

const (
	reasonMinLength = 10
	reasonMaxLength = 500
)

type CreateLeaveDTO struct {
	LeaveType string    `json:"leave_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
}

// Validate enforces the submission rules: the start date must not be in the
// past, the range must be ordered, and the reason must be 10-500 characters.
func (dto CreateLeaveDTO) Validate() error {
	var errs []internal.ValidationError

	today := truncateToDay(time.Now())
	if dto.StartDate.IsZero() {
		errs = append(errs, internal.ValidationError{Field: "start_date", Message: "start date is required", Code: string(internal.ErrCodeValidationFailed)})
	} else if truncateToDay(dto.StartDate).Before(today) {
		errs = append(errs, internal.ValidationError{Field: "start_date", Message: "start date cannot be in the past", Code: string(internal.ErrCodeInvalidDateRange)})
	}

	errs = append(errs, validateRangeAndReason(dto.StartDate, dto.EndDate, dto.Reason)...)

	if len(errs) > 0 {
		return internal.ValidationErrors{Errors: errs}.ToAppError()
	}
	return nil
}

type UpdateLeaveDTO struct {
	LeaveType string    `json:"leave_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
}

// Validate on edit keeps the range and reason rules but does not re-check
// the start date against today: an existing request may legitimately start
// in the past by the time it is edited.
func (dto UpdateLeaveDTO) Validate() error {
	errs := validateRangeAndReason(dto.StartDate, dto.EndDate, dto.Reason)
	if dto.StartDate.IsZero() {
		errs = append(errs, internal.ValidationError{Field: "start_date", Message: "start date is required", Code: string(internal.ErrCodeValidationFailed)})
	}
	if len(errs) > 0 {
		return internal.ValidationErrors{Errors: errs}.ToAppError()
	}
	return nil
}

func validateRangeAndReason(start, end time.Time, reason string) []internal.ValidationError {
	var errs []internal.ValidationError

	if end.IsZero() {
		errs = append(errs, internal.ValidationError{Field: "end_date", Message: "end date is required", Code: string(internal.ErrCodeValidationFailed)})
	} else if !start.IsZero() && truncateToDay(end).Before(truncateToDay(start)) {
		errs = append(errs, internal.ValidationError{Field: "end_date", Message: "end date must be on or after start date", Code: string(internal.ErrCodeInvalidDateRange)})
	}

	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		errs = append(errs, internal.ValidationError{Field: "reason", Message: "reason is required", Code: string(internal.ErrCodeValidationFailed)})
	} else if n := utf8.RuneCountInString(trimmed); n < reasonMinLength || n > reasonMaxLength {
		errs = append(errs, internal.ValidationError{Field: "reason", Message: "reason must be 10-500 characters", Code: string(internal.ErrCodeInvalidReason)})
	}

	return errs
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
