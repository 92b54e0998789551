package story

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mapwise/storymap/pkg/constants"
)

// CreateDTO carries raw story creation input. An empty status means the
// caller wants the default.
type CreateDTO struct {
	Title  string `validate:"required,max=500"`
	Status string `validate:"omitempty,oneof=todo in_progress done"`
}

func (d *CreateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
}

// Ok validates the DTO and reports per-field failures keyed by field name.
func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}

	out := make(map[string]string)
	for _, fe := range errs.(validator.ValidationErrors) {
		out[fe.Field()] = fe.Tag()
	}
	return out, false
}
