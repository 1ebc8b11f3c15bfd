// internal/utils/validator.go
package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
)

var validate *validator.Validate

var pincodePattern = regexp.MustCompile(`^[0-9A-Za-z -]{3,10}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("payment_method", validatePaymentMethod)
	validate.RegisterValidation("cart_payment_method", validateCartPaymentMethod)
	validate.RegisterValidation("pincode", validatePincode)
	validate.RegisterValidation("order_status", validateOrderStatus)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "cod", "razorpay":
		return true
	}
	return false
}

// Empty means the default (COD).
func validateCartPaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "COD", "ONLINE":
		return true
	}
	return false
}

func validatePincode(fl validator.FieldLevel) bool {
	return pincodePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "processing", "shipped", "delivered", "cancelled", "confirmed":
		return true
	}
	return false
}

// ParseID parses a path or body identifier, mapping malformed input to a validation error.
func ParseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, NewValidationError(i18n.KeyValidationInvalid, field)
	}
	return id, nil
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   lowerFirst(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "uuid":
		return e.Field() + " must be a valid identifier"
	case "payment_method":
		return "Payment method must be cod or razorpay"
	case "cart_payment_method":
		return "Payment method must be COD or ONLINE"
	case "pincode":
		return "Invalid pincode"
	case "order_status":
		return "Invalid order status"
	default:
		return e.Field() + " is invalid"
	}
}
