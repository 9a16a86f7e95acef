// Package validation wraps go-playground/validator with the rules used for
// user input and converts its failures into common.ValidationError.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/go-playground/validator/v10"
)

// Validator checks tagged input structs.
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// Default returns the shared validator instance.
func Default() *Validator {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New creates a validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("amount", validateAmount)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns the first failure as a
// *common.ValidationError.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return common.NewValidationError("", err.Error())
	}

	fe := verrs[0]
	return common.NewValidationError(fe.Field(), reason(fe))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "notblank":
		return "cannot be empty"
	case "amount":
		return "must be a number"
	case "hexcolor":
		return "must be a hex color such as #6b7280"
	case "transaction_type":
		return "must be income or expense"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// validateNotBlank rejects strings that are empty after trimming whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return model.TransactionType(fl.Field().String()).Valid()
}

// validateAmount accepts anything model.ParseAmount accepts.
func validateAmount(fl validator.FieldLevel) bool {
	_, err := model.ParseAmount(fl.Field().String())
	return err == nil
}
