package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Ramsey-B/thistle/pkg/models"
)

// RunOptions is the flag-derived configuration for one batch run. Immutable
// once validated.
type RunOptions struct {
	InputPath             string `validate:"required,file"`
	Commit                bool
	Verbose               bool
	LogFile               string
	Delimiter             string `validate:"required,len=1"`
	FrameworkCode         string
	ForceDefaultFramework bool
	UserID                string
	Trace                 bool
}

// Validate checks the flag combination before anything is opened or
// connected. The framework override and force-default are mutually
// exclusive.
func (o RunOptions) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("invalid run options: %w", err)
	}
	return o.FrameworkPolicy().Validate()
}

// FrameworkPolicy returns the framework resolution policy for the run.
func (o RunOptions) FrameworkPolicy() models.FrameworkPolicy {
	return models.FrameworkPolicy{
		ForceDefault: o.ForceDefaultFramework,
		ExplicitCode: o.FrameworkCode,
	}
}

// DelimiterRune returns the configured field delimiter. Validate guarantees
// a single character.
func (o RunOptions) DelimiterRune() rune {
	return []rune(o.Delimiter)[0]
}
