// Package productconfig checks and normalises Spark configuration values
// against product-specific rules before the operator renders them.
package productconfig

import "fmt"

// TargetKind is the configuration system an option belongs to.
type TargetKind string

const (
	// TargetProperties is a properties file addressed by name, for example
	// spark-defaults.conf.
	TargetProperties TargetKind = "properties"
	// TargetEnvironment is the process environment (spark-env.sh).
	TargetEnvironment TargetKind = "env"
)

// OptionKind selects the configuration target a candidate map is checked for.
type OptionKind struct {
	Kind TargetKind
	// File is set for TargetProperties.
	File string
}

// Properties returns the OptionKind of the named properties file.
func Properties(file string) OptionKind {
	return OptionKind{Kind: TargetProperties, File: file}
}

// Environment returns the OptionKind of the process environment.
func Environment() OptionKind {
	return OptionKind{Kind: TargetEnvironment}
}

func (k OptionKind) String() string {
	if k.Kind == TargetProperties {
		return fmt.Sprintf("%s(%s)", k.Kind, k.File)
	}
	return string(k.Kind)
}

// ClassificationType is the verdict of a validator for one key.
type ClassificationType string

const (
	// TypeDefault carries the product's built-in default. Callers must not
	// propagate it.
	TypeDefault ClassificationType = "Default"
	// TypeRecommended carries a value the product recommends setting.
	TypeRecommended ClassificationType = "Recommended"
	// TypeValid carries an accepted, possibly normalised, value.
	TypeValid ClassificationType = "Valid"
	// TypeWarn carries a value that was accepted with a warning.
	TypeWarn ClassificationType = "Warn"
	// TypeError marks an invalid value.
	TypeError ClassificationType = "Error"
)

// Classification is the validator result for a single key.
type Classification struct {
	Type  ClassificationType
	Value string
	Err   error
}

func Default(value string) Classification {
	return Classification{Type: TypeDefault, Value: value}
}

func Recommended(value string) Classification {
	return Classification{Type: TypeRecommended, Value: value}
}

func Valid(value string) Classification {
	return Classification{Type: TypeValid, Value: value}
}

func Warn(value string, err error) Classification {
	return Classification{Type: TypeWarn, Value: value, Err: err}
}

func Error(err error) Classification {
	return Classification{Type: TypeError, Err: err}
}

// Validator classifies every key of a candidate configuration for one product
// version, target and role. role may be empty when the target is role-agnostic.
// The returned map may contain keys that are not in candidate (defaults and
// recommendations) and may omit keys that are.
type Validator interface {
	Validate(version string, kind OptionKind, role string, candidate map[string]string) map[string]Classification
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(version string, kind OptionKind, role string, candidate map[string]string) map[string]Classification

// Validate calls f.
func (f ValidatorFunc) Validate(version string, kind OptionKind, role string, candidate map[string]string) map[string]Classification {
	return f(version, kind, role, candidate)
}

// ValidationError describes why a value was rejected or warned about. The
// message names the key only; Value may hold a secret and ends up in logs
// otherwise.
type ValidationError struct {
	Name   string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}
