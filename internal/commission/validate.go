package commission

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("commission: validation failed")

// ValidationError reports which constraint a write violated.
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Is lets callers test with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validator exposes the shared validator so other packages register the same
// json-aware field naming.
func Validator() *validator.Validate { return validate }

var entryMessages = map[string]string{
	"markup_percentage.gte": "Markup percentage cannot be negative",
	"markup_percentage.lte": "Markup percentage cannot exceed 1000%",
	"commission_factor.gte": "Commission factor cannot be negative",
	"commission_factor.lte": "Commission factor cannot exceed 1.0",
}

// ValidateEntry checks the range constraints of a factor entry.
func ValidateEntry(e Entry) error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg, ok := entryMessages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg = fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
	return &ValidationError{Field: fe.Field(), Rule: fe.Tag(), Message: msg}
}

// CheckUnique rejects candidate when another active entry already uses its
// markup percentage. Inactive candidates never conflict.
func CheckUnique(candidate Entry, existing []Entry) error {
	if !candidate.Active {
		return nil
	}
	for _, e := range existing {
		if !e.Active || e.ID == candidate.ID {
			continue
		}
		if e.MarkupPercentage == candidate.MarkupPercentage {
			return &ValidationError{
				Field:   "markup_percentage",
				Rule:    "unique",
				Message: fmt.Sprintf("Markup percentage %d%% already exists", candidate.MarkupPercentage),
			}
		}
	}
	return nil
}
