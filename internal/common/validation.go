package common

import (
	"fmt"
	"strings"
)

// SettingError is one rejected configuration value.
type SettingError struct {
	Key     string
	Value   string
	Message string
}

func (e SettingError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s %s", e.Key, e.Message)
	}
	return fmt.Sprintf("%s=%q %s", e.Key, e.Value, e.Message)
}

// Rule checks one setting and returns a problem description, or "".
type Rule func(value string) string

// Validator collects every bad setting so they can be reported together.
type Validator struct {
	errs []SettingError
}

func NewValidator() *Validator {
	return &Validator{}
}

// Field applies rules to a setting; the first failing rule is recorded.
func (v *Validator) Field(key, value string, rules ...Rule) *Validator {
	for _, rule := range rules {
		if msg := rule(value); msg != "" {
			v.errs = append(v.errs, SettingError{Key: key, Value: value, Message: msg})
			break
		}
	}
	return v
}

func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) Errors() []SettingError {
	return v.errs
}

// ErrorMessage joins all problems with "; ".
func (v *Validator) ErrorMessage() string {
	msgs := make([]string, len(v.errs))
	for i, e := range v.errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Required rejects blank values.
func Required(value string) string {
	if strings.TrimSpace(value) == "" {
		return "is required"
	}
	return ""
}

// OneOf accepts only the listed values.
func OneOf(allowed ...string) Rule {
	return func(value string) string {
		for _, a := range allowed {
			if value == a {
				return ""
			}
		}
		return "must be one of " + strings.Join(allowed, ", ")
	}
}
