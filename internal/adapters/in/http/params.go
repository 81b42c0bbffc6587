package http

import (
	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func queryDate(c echo.Context, name string) (openapi_types.Date, error) {
	var date openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, true, name, c.QueryParams(), &date); err != nil {
		return openapi_types.Date{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return date, nil
}

func queryUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	if err := runtime.BindQueryParameter("form", true, true, name, c.QueryParams(), &id); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func parseUUID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseOptionalUUID(name string, raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil //nolint:nilnil // absent is not an error
	}
	id, err := parseUUID(name, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
