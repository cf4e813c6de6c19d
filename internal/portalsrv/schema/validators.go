package schema

import (
	"reflect"
	"strings"
	"sync"

	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

var (
	v     *validator.Validate
	vOnce sync.Once
)

// V returns the shared validator instance with the portal's custom
// validations registered.
func V() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New()
		v.RegisterValidation("dueDayValidator", dueDayValidator)
		v.RegisterValidation("priorityValidator", priorityValidator)
		v.RegisterValidation("requestStatusValidator", requestStatusValidator)
		v.RegisterValidation("phaseValidator", phaseValidator)
		v.RegisterValidation("roleValidator", roleValidator)
		v.RegisterValidation("insuranceDecisionValidator", insuranceDecisionValidator)
	})
	return v
}

// Rent is due on a fixed day of month; 29-31 are disallowed so every month
// has the anchor day.
func dueDayValidator(fl validator.FieldLevel) bool {
	day := fl.Field().Int()
	return day >= 1 && day <= 28
}

var validPriorities = []string{
	models.RequestPriorityLow,
	models.RequestPriorityNormal,
	models.RequestPriorityUrgent,
}

func priorityValidator(fl validator.FieldLevel) bool {
	return slices.Contains(validPriorities, fl.Field().String())
}

var validRequestStatuses = []string{
	models.RequestStatusOpen,
	models.RequestStatusInProgress,
	models.RequestStatusResolved,
	models.RequestStatusCancelled,
}

func requestStatusValidator(fl validator.FieldLevel) bool {
	return slices.Contains(validRequestStatuses, fl.Field().String())
}

var validPhases = []string{
	models.ChecklistPhaseMoveIn,
	models.ChecklistPhaseMoveOut,
}

func phaseValidator(fl validator.FieldLevel) bool {
	return slices.Contains(validPhases, fl.Field().String())
}

func roleValidator(fl validator.FieldLevel) bool {
	return pmcommon.Role(fl.Field().String()).Valid()
}

var validInsuranceDecisions = []string{
	models.InsuranceStatusApproved,
	models.InsuranceStatusRejected,
}

func insuranceDecisionValidator(fl validator.FieldLevel) bool {
	return slices.Contains(validInsuranceDecisions, fl.Field().String())
}

// ValidateStruct runs the registered validations on a request schema and
// maps field failures back to json attribute names.
func ValidateStruct(s any) ValidationErrors {
	err := V().Struct(s)
	if err == nil {
		return nil
	}
	validatorErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{ErrValidationFailed("")}
	}

	value := reflect.ValueOf(s)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	typeOf := value.Type()

	var ves ValidationErrors
	for _, e := range validatorErrors {
		jsonFieldName := GetJSONFieldPath(value, typeOf, e.StructField())

		switch e.Tag() {
		case "required":
			ves = append(ves, ErrMissingRequiredAttribute(jsonFieldName))
		case "dueDayValidator":
			ves = append(ves, ErrInvalidDueDay(jsonFieldName))
		case "priorityValidator", "requestStatusValidator", "phaseValidator",
			"roleValidator", "insuranceDecisionValidator", "email", "oneof":
			ves = append(ves, ErrInvalidFieldValue(jsonFieldName))
		default:
			ves = append(ves, ErrValidationFailed(jsonFieldName))
		}
	}
	return ves
}

// GetJSONFieldPath maps a struct field name from a validator error back to
// the json tag clients actually sent.
func GetJSONFieldPath(value reflect.Value, typeOf reflect.Type, structField string) string {
	field, ok := typeOf.FieldByName(structField)
	if !ok {
		return structField
	}
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return structField
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}
