package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/myhealthapp/fitlog/pkg/models"
)

var durationRegex = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("label")
	})
	_ = v.RegisterValidation("hhmmss", hhmmss)
	_ = v.RegisterValidation("localdatetime", localDateTime)
	_ = v.RegisterValidation("activitytype", activityType)
	_ = v.RegisterValidation("activitystatus", activityStatus)
	return v
}

func hhmmss(fl validator.FieldLevel) bool {
	return durationRegex.MatchString(fl.Field().String())
}

func localDateTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(LocalLayout, fl.Field().String())
	return err == nil
}

func activityType(fl validator.FieldLevel) bool {
	return models.ActivityType(fl.Field().String()).Valid()
}

func activityStatus(fl validator.FieldLevel) bool {
	return models.Status(fl.Field().String()).Valid()
}

// FieldError is one rejected form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors lists every rejected field in declaration order.
type Errors []FieldError

func (e Errors) Error() string {
	return strings.Join(lo.Map(e, func(f FieldError, _ int) string {
		return f.Field + ": " + f.Message
	}), "; ")
}

// Validate checks a draft against its struct tags.
func Validate(draft interface{}) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return Errors(lo.Map(verrs, func(fe validator.FieldError, _ int) FieldError {
		return FieldError{Field: fe.Field(), Message: message(fe)}
	}))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "hhmmss":
		return "use the format HH:MM:SS (e.g., 00:30:00)"
	case "localdatetime":
		return "use the format YYYY-MM-DDThh:mm"
	case "activitytype":
		return fmt.Sprintf("must be one of %v", models.ActivityTypes)
	case "activitystatus":
		return fmt.Sprintf("must be one of %v", models.Statuses)
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
