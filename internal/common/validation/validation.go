package validation

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"engagement-admin-backend/internal/common/errors"
)

const (
	// Максимальные длины для различных полей
	MaxTitleLength       = 200
	MaxSubtitleLength    = 300
	MaxDescriptionLength = 2000
	MaxNameLength        = 64
	MaxEmailLength       = 254
	MaxLinkLength        = 2048

	MinPasswordLength = 6
	MaxPasswordLength = 72 // bcrypt ignores everything past 72 bytes
)

var validate = validator.New()

// ValidateName проверяет имя или фамилию
func ValidateName(field, name string) *errors.AppError {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError(field, "cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewValidationError(field, fmt.Sprintf("cannot exceed %d characters", MaxNameLength))
	}
	return nil
}

// ValidateEmail проверяет адрес почты
func ValidateEmail(email string) *errors.AppError {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.NewValidationError("email", "cannot be empty")
	}
	if len(email) > MaxEmailLength {
		return errors.NewValidationError("email", fmt.Sprintf("cannot exceed %d characters", MaxEmailLength))
	}
	if err := validate.Var(email, "email"); err != nil {
		return errors.NewValidationError("email", "must be a valid email address")
	}
	return nil
}

// ValidatePassword проверяет пароль и его подтверждение
func ValidatePassword(password, confirm string) *errors.AppError {
	if len(password) < MinPasswordLength {
		return errors.NewValidationError("password", fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		return errors.NewValidationError("password", fmt.Sprintf("cannot exceed %d bytes", MaxPasswordLength))
	}
	if password != confirm {
		return errors.NewValidationError("confirmPassword", "passwords do not match")
	}
	return nil
}

// ValidateText проверяет обязательное текстовое поле
func ValidateText(field, value string, max int) *errors.AppError {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.NewValidationError(field, "cannot be empty")
	}
	if utf8.RuneCountInString(value) > max {
		return errors.NewValidationError(field, fmt.Sprintf("cannot exceed %d characters", max))
	}
	return nil
}

// ValidateLink проверяет ссылку задания
func ValidateLink(link string) *errors.AppError {
	if err := ValidateText("link", link, MaxLinkLength); err != nil {
		return err
	}
	if err := validate.Var(strings.TrimSpace(link), "url"); err != nil {
		return errors.NewValidationError("link", "must be a valid URL")
	}
	return nil
}

// ValidatePositiveInt проверяет, что число положительное
func ValidatePositiveInt(value int64, field string) *errors.AppError {
	if value <= 0 {
		return errors.NewValidationError(field, "must be positive")
	}
	return nil
}

// ValidateNonNegativeInt проверяет, что число неотрицательное
func ValidateNonNegativeInt(value int64, field string) *errors.AppError {
	if value < 0 {
		return errors.NewValidationError(field, "cannot be negative")
	}
	return nil
}

// FromBinding converts a gin binding failure into a validation AppError.
// Every failing field is listed under details.fields.
func FromBinding(err error) *errors.AppError {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.NewBadRequestError("malformed request body")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}

	first := verrs[0]
	return errors.NewValidationError(first.Field(), describe(first)).
		WithDetail("fields", fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
