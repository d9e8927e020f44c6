package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError lists the fields that failed request validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// ValidateRequest runs struct-tag validation on a request DTO.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var invalid validator.ValidationErrors
		fields := make([]string, 0)
		if errors.As(err, &invalid) {
			for _, fe := range invalid {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
		} else {
			fields = append(fields, err.Error())
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}
