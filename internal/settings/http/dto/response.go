package dto

import "github.com/allisson/utilkit/internal/httputil"

// SettingResponse represents a decrypted setting in API responses.
// SECURITY: Value is plaintext and must only travel over HTTPS.
type SettingResponse struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// DeclareSettingResponse reports the outcome of a declaration.
type DeclareSettingResponse struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Created bool   `json:"created"`
}

// ListSettingKeysResponse represents a page of declared keys.
type ListSettingKeysResponse struct {
	Section string   `json:"section"`
	Data    []string `json:"data"`
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
	Total   int      `json:"total"`
}

// MapKeysToListResponse slices keys to the requested page.
func MapKeysToListResponse(section string, keys []string, page httputil.Page) ListSettingKeysResponse {
	start, end := page.Bounds(len(keys))

	return ListSettingKeysResponse{
		Section: section,
		Data:    append([]string{}, keys[start:end]...),
		Offset:  page.Offset,
		Limit:   page.Limit,
		Total:   len(keys),
	}
}
