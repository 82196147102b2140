package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registra las reglas propias del dominio en el
// validador compartido.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("unidad_item", isUnidadValida); err != nil {
		return err
	}
	if err := v.RegisterValidation("usuario_login", isLoginValido); err != nil {
		return err
	}
	return nil
}

// Las unidades de los items del pedido son un enumerado cerrado.
func isUnidadValida(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "Unidad" || s == "Paquete"
}

var loginRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-@]{3,60}$`)

func isLoginValido(fl validator.FieldLevel) bool {
	return loginRegex.MatchString(fl.Field().String())
}
