package common

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := getValidator().Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", nil, fiber.StatusBadRequest, validationErrors(err))
	}
	return &input, nil
}

func validationErrors(err error) any {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		out[strings.ToLower(fe.Field())] = msg
	}
	return out
}

// ParseUUIDParam reads a path parameter as a UUID, writing a 400 on failure.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false, ProblemDetailsJSON(
			c, "Invalid "+name, err, fmt.Sprintf("%s must be a valid UUID", name), fiber.StatusBadRequest,
		)
	}
	return id, true, nil
}
