package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	v *validator.Validate
}

func newValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonName(f.Tag.Get("json"), f.Tag.Get("query"), f.Name)
	})
	return &requestValidator{v: v}
}

func jsonName(jsonTag, queryTag, fallback string) string {
	for _, tag := range []string{jsonTag, queryTag} {
		name := strings.Split(tag, ",")[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fallback
}

func (r *requestValidator) Validate(i interface{}) error {
	err := r.v.Struct(i)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("invalid field %s: failed %s", first.Field(), first.Tag())
	}
	return err
}

// bind decodes the request into req and validates it. The returned error is
// safe to show to the client.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid payload")
	}
	return c.Validate(req)
}
