// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrNotFinite is returned by ParseNumber for NaN and infinities.
var ErrNotFinite = errors.New("not a finite number")

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError represents a single field validation error with structured information.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the wire name of the field that failed validation.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "500" for "max=500").
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the actual value that failed validation.
func (e *ValidationError) Value() interface{} {
	return e.value
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError represents a collection of validation errors.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the slice of validation errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Messages returns the user-facing message of every error, in field order.
func (ve *RequestValidationError) Messages() []string {
	out := make([]string, len(ve.errors))
	for i := range ve.errors {
		out[i] = ve.errors[i].message
	}
	return out
}

// Error implements the error interface, returning a combined error message.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validación fallida"
	}
	return strings.Join(ve.Messages(), "; ")
}

// GetValidator returns the singleton validator instance.
// The validator is initialized once with custom validators and options.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = newValidator("validate")
	})
	return validate
}

// newValidator builds a validator reading rules from tagName, reporting
// fields by their JSON name, with the custom rules registered.
func newValidator(tagName string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tagName)
	v.RegisterTagNameFunc(jsonFieldName)
	mustRegister(v, "between", validateBetween)
	mustRegister(v, "nonnegative", validateNonNegative)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ParseNumber parses user-entered numeric text. A decimal comma is
// accepted as well as a decimal point. NaN and infinities are rejected.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrNotFinite, s)
	}
	return v, nil
}

// validateBetween implements between=MIN MAX (inclusive). Empty strings
// pass; presence is checked separately.
func validateBetween(fl validator.FieldLevel) bool {
	bounds := strings.Fields(fl.Param())
	if len(bounds) != 2 {
		return false
	}
	lo, err1 := strconv.ParseFloat(bounds[0], 64)
	hi, err2 := strconv.ParseFloat(bounds[1], 64)
	if err1 != nil || err2 != nil {
		return false
	}

	value, ok, present := fieldNumber(fl.Field())
	if !present {
		return true
	}
	return ok && value >= lo && value <= hi
}

// validateNonNegative accepts numbers >= 0. Empty strings pass.
func validateNonNegative(fl validator.FieldLevel) bool {
	value, ok, present := fieldNumber(fl.Field())
	if !present {
		return true
	}
	return ok && value >= 0
}

// fieldNumber reads a numeric value from a string or numeric field.
func fieldNumber(field reflect.Value) (value float64, ok, present bool) {
	switch field.Kind() {
	case reflect.String:
		s := strings.TrimSpace(field.String())
		if s == "" {
			return 0, false, false
		}
		v, err := ParseNumber(s)
		return v, err == nil, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(field.Int()), true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(field.Uint()), true, true
	case reflect.Float32, reflect.Float64:
		v := field.Float()
		return v, !math.IsNaN(v) && !math.IsInf(v, 0), true
	default:
		return 0, false, true
	}
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RequestValidationError if validation fails.
//
// Example:
//
//	if verr := validation.ValidateStruct(&models.NewPostRequest{Contenido: text}); verr != nil {
//	    return verr
//	}
func ValidateStruct(s interface{}) *RequestValidationError {
	return validateWith(GetValidator(), s, translateError)
}

func validateWith(v *validator.Validate, s interface{}, translate func(validator.FieldError) string) *RequestValidationError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{
				{
					field:   "unknown",
					tag:     "unknown",
					message: err.Error(),
				},
			},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translate(fieldErr),
		}
	}

	return &RequestValidationError{errors: fieldErrors}
}

// fieldLabels names request fields in messages.
var fieldLabels = map[string]string{
	"contenido": "contenido",
	"texto":     "texto",
	"categoria": "categoría",
	"tipo":      "tipo de reacción",
	"username":  "nombre de usuario",
	"password":  "contraseña",
}

// errorMessageTemplates maps validation tags to message templates.
// Templates use %s for the field label.
var errorMessageTemplates = map[string]string{
	"required":    "El campo %s es obligatorio",
	"nonnegative": "El campo %s no puede ser negativo",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof":   "El campo %s debe ser uno de: %s",
	"between": "El campo %s debe estar entre %s",
	"gte":     "El campo %s debe ser mayor o igual a %s",
	"lte":     "El campo %s debe ser menor o igual a %s",
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fieldLabel(fe.Field())
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		if tag == "between" {
			param = strings.Join(strings.Fields(param), " y ")
		}
		return fmt.Sprintf(template, field, param)
	}
	return translateMinMax(fe, field, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	isString := fe.Kind() == reflect.String

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("El campo %s debe tener al menos %s caracteres", field, param)
		}
		return fmt.Sprintf("El campo %s debe ser al menos %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("El campo %s excede el límite de %s caracteres", field, param)
		}
		return fmt.Sprintf("El campo %s debe ser como máximo %s", field, param)
	default:
		return fmt.Sprintf("El campo %s no es válido (%s)", field, tag)
	}
}
