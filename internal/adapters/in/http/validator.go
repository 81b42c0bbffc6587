package http

import (
	"yard/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// bodyValidator plugs validator/v10 into echo.Context.Validate.
type bodyValidator struct {
	validate *validator.Validate
}

func newBodyValidator() *bodyValidator {
	return &bodyValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *bodyValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}
