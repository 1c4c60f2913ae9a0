package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"phonebook/internal/model"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, model.ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// registrationErrorMessage renders every violated field of the registration
// body as "field - reason;" joined together, matching the field-tagged error
// contract of /register.
func registrationErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "Invalid params"
	}

	var b strings.Builder
	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field())
		b.WriteString(field)
		b.WriteString(" - ")
		b.WriteString(registrationFieldMessage(field, fieldErr.Tag()))
		b.WriteString(";")
	}
	return b.String()
}

func registrationFieldMessage(field, tag string) string {
	switch {
	case field == "login" && tag == "required":
		return "Login can not be empty"
	case field == "login":
		return "Login should be between 2 and 100 characters"
	case field == "password":
		return "Password can not be empty"
	default:
		return "Invalid value"
	}
}
