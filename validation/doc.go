// Package validation checks logmerge configuration and command input.
//
// Struct tag validation (go-playground/validator) is used for the loaded
// configuration; the programmatic Validator collects errors for values that
// are assembled by hand, such as CLI arguments.
//
//	err := validation.Validate(cfg.Merge)
//
//	v := validation.New()
//	v.Custom(len(paths) == 1, "inputs", "exactly one input").OneOf("format", format, formats)
//	err := v.Error()
//
// Both forms report failures as an errors.ErrCodeInvalidInput AppError whose
// "fields" detail lists every offending field.
package validation
