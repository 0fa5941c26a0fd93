package helpers

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct runs the validate tags on a request body. The caller
// turns a failure into a 400 before touching any service.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
