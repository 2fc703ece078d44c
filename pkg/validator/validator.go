package validator

import (
	"github.com/go-playground/validator/v10"
)

// ErrorDetail describe un campo que no pasó validación.
type ErrorDetail struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

var validate = validator.New()

// ValidateStruct aplica las etiquetas `validate` de un DTO.
// Retorna nil si todo pasa; si no, el detalle por campo.
func ValidateStruct(data interface{}) []ErrorDetail {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var details []ErrorDetail
	for _, fe := range err.(validator.ValidationErrors) {
		details = append(details, ErrorDetail{
			Field: fe.StructNamespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return details
}
