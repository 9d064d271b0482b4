package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationMessage turns the first binding failure into a message for the
// user. Anything that is not a validation error yields fallback.
func ValidationMessage(err error, fallback string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fallback
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " es obligatorio"
	case "email":
		return field + " debe ser un email válido"
	case "min":
		return field + " debe tener al menos " + fe.Param() + " caracteres"
	case "max":
		return field + " debe tener como máximo " + fe.Param() + " caracteres"
	case "gt", "gte":
		return field + " debe ser mayor a " + fe.Param()
	case "hostname_rfc1123":
		return field + " no es un subdominio válido"
	default:
		return field + " es inválido"
	}
}
