package handler

import (
	"fmt"

	"baudboard/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request structs to
// gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return model.Priority(fl.Field().String()).Valid()
	})
}
