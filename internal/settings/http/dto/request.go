// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/utilkit/internal/validation"
)

// SettingPathParams holds the section and key taken from the URL.
type SettingPathParams struct {
	Section string
	Key     string
}

// Validate checks both path parameters.
func (p *SettingPathParams) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Section, validation.Required, customValidation.Section),
		validation.Field(&p.Key, customValidation.SettingKeyRules...),
	)
}

// WriteSettingRequest contains the plaintext value to store. An empty value clears the
// setting; the field itself must be present.
type WriteSettingRequest struct {
	Value *string `json:"value"`
}

// Validate checks if the write setting request is valid.
func (r *WriteSettingRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.NotNil),
	)
}
