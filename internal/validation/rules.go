// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/utilkit/internal/errors"
	settingsDomain "github.com/allisson/utilkit/internal/settings/domain"
)

// MaxSettingKeyLength is the longest accepted setting key.
const MaxSettingKeyLength = 255

var (
	// settingKeyRegex allows the characters application config keys use in practice
	settingKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_.:\-]+$`)

	// versionRegex matches dotted numeric versions such as "1", "1.2" or "10.0.3.1"
	versionRegex = regexp.MustCompile(`^\s*[0-9]+(\.\s*[0-9]*\s*)*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// SettingKey validates a setting key: letters, digits and "_.:-" only.
var SettingKey = validation.NewStringRuleWithError(
	func(s string) bool {
		return settingKeyRegex.MatchString(s)
	},
	validation.NewError("validation_setting_key", "must contain only letters, digits, '_', '.', ':' or '-'"),
)

// SettingKeyRules is the complete rule set for a setting key.
var SettingKeyRules = []validation.Rule{
	validation.Required,
	validation.Length(1, MaxSettingKeyLength),
	SettingKey,
}

// Section validates that a string names a known settings section.
var Section = validation.NewStringRuleWithError(
	func(s string) bool {
		return settingsDomain.Section(s).IsValid()
	},
	validation.NewError("validation_section", "must be one of: appSettings, connectionStrings"),
)

// Version validates a dotted numeric version string.
var Version = validation.NewStringRuleWithError(
	func(s string) bool {
		return versionRegex.MatchString(s)
	},
	validation.NewError("validation_version", "must be a dotted numeric version"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
