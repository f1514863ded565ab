package common

import (
	"encoding/json"
	"time"
)

// isoMillis matches the millisecond-precision UTC layout browsers produce for Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// APIResponse represents the structure of a successful API response.
// Data is relayed untouched from the upstream; its shape is not ours to own.
type APIResponse struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Timestamp  string          `json:"timestamp"`
	APIVersion string          `json:"api_version"`
}

// NewAPIResponse stamps the envelope. Missing data is kept as an explicit null key,
// so callers can always read response.data.
func NewAPIResponse(data json.RawMessage, apiVersion string, now time.Time) APIResponse {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	return APIResponse{
		Success:    true,
		Data:       data,
		Timestamp:  FormatTimestamp(now),
		APIVersion: apiVersion,
	}
}

// FormatTimestamp renders t as an ISO-8601 UTC instant with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
