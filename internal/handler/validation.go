package handler

import (
	"slices"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/founderhub/founder-api/internal/model"
)

// RegisterValidators installs custom binding validators. Call once at startup.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("decktype", func(fl validator.FieldLevel) bool {
		return slices.Contains(model.AllowedPitchDeckTypes, fl.Field().String())
	})
}
