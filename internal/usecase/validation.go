package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationDomainError(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: strings.TrimSuffix(msg, ", "),
	}
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.ClientName) == "" && strings.TrimSpace(input.ArchitectName) == "" {
		errors = append(errors, ValidationError{"client_name", "client_name or architect_name is required"})
	}
	if len(input.ClientName) > 100 {
		errors = append(errors, ValidationError{"client_name", "must not exceed 100 characters"})
	}

	if input.BDEmail != "" {
		if _, err := mail.ParseAddress(input.BDEmail); err != nil {
			errors = append(errors, ValidationError{"bd_email", "is invalid"})
		}
	}

	if input.ClientMobile != "" && !isValidMobile(input.ClientMobile) {
		errors = append(errors, ValidationError{"client_mobile", "must be a valid mobile number"})
	}

	if input.MeetingDate != "" && !isValidDate(input.MeetingDate) {
		errors = append(errors, ValidationError{"meeting_date", "must be a valid date (YYYY-MM-DD)"})
	}
	if input.MeetingTime != "" && !isValidClockTime(input.MeetingTime) {
		errors = append(errors, ValidationError{"meeting_time", "must be a valid time (HH:MM)"})
	}

	if len(input.Remark) > 200 {
		errors = append(errors, ValidationError{"remark", "must not exceed 200 characters"})
	}

	return errors
}

func isValidMobile(mobile string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(mobile, "")
	return len(cleaned) >= 10 && len(cleaned) <= 11
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}

func isValidClockTime(timeStr string) bool {
	_, err := time.Parse("15:04", timeStr)
	return err == nil
}

func parseDate(dateStr string) *time.Time {
	if dateStr == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil
	}
	return &t
}
