package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
)

// SetupValidator registers custom validation tags on gin's binding engine.
// Call once at startup before serving requests.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report field names as they appear on the wire, not as Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// period validates a YYYY-MM fiscal period string.
	_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		_, err := valueobject.ParsePeriod(fl.Field().String())
		return err == nil
	})
}
