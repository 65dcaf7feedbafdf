package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports field names by their json tag so validation errors
// line up with the request payload.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// decodeJSON decodes the request body into dst and validates it. The error
// message is safe to surface to the caller.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			var fields []string
			for _, fe := range errs {
				fields = append(fields, fe.Field())
			}
			return fmt.Errorf("missing or invalid fields: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("validation failed")
	}
	return nil
}
