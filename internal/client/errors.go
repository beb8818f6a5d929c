package client

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
)

const maxErrorBody = 64 << 10

func mapError(resp *http.Response, path string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NewNotFoundError("resource", path)
	}
	return apperrors.NewRequestFailedError(resp.StatusCode, errorMessage(body))
}

// errorMessage pulls a readable message out of the platform's error bodies:
// {"error": ...}, {"detail": ...}, {"message": ...}, or field errors
// {"field": ["msg"]}. Anything else yields "" and the status text is used.
func errorMessage(body []byte) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}

	for _, key := range []string{"error", "detail", "message"} {
		if msg := text(obj[key]); msg != "" {
			return msg
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		msg := text(obj[k])
		if msg == "" {
			continue
		}
		if k == "non_field_errors" {
			parts = append(parts, msg)
		} else {
			parts = append(parts, k+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

func text(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.TrimSpace(strings.Join(list, " "))
	}
	return ""
}
