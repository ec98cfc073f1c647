package logger

import (
	"net/http"
	"strings"
)

// Proposal documents carry homeowner contact details and signatures.
// Nothing of that may land in logs verbatim.
var sensitiveKeys = []string{
	"email",
	"phone",
	"signature",
	"address",
	"authorization",
	"cookie",
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	at := strings.Index(value, "@")
	if at <= 0 {
		return maskTail(value)
	}
	return value[:1] + strings.Repeat("*", at-1) + value[at:]
}

// MaskPhone keeps only the last 4 digits.
func MaskPhone(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return maskTail(value)
}

// MaskSignature hides signer text entirely, reporting only presence.
func MaskSignature(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return "[signed]"
}

// MaskHeaders returns a copy of headers with sensitive fields masked.
func MaskHeaders(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	masked := make(map[string]string, len(headers))
	for key, values := range headers {
		joined := strings.Join(values, ",")
		if isSensitiveKey(key) {
			masked[key] = maskTail(joined)
			continue
		}
		masked[key] = joined
	}
	return masked
}

// MaskJSON returns a deep-copied map with sensitive fields masked.
func MaskJSON(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		if isSensitiveKey(key) {
			out[key] = maskValue(key, value)
			continue
		}
		out[key] = maskJSONValue(value)
	}
	return out
}

// SafeFieldsFromRequest returns masked headers and safe request metadata.
func SafeFieldsFromRequest(req *http.Request) map[string]any {
	if req == nil {
		return map[string]any{}
	}
	return map[string]any{
		"method":         req.Method,
		"path":           req.URL.Path,
		"content_length": maxInt64(req.ContentLength, 0),
		"headers":        MaskHeaders(req.Header),
	}
}

func maskJSONValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return MaskJSON(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = maskJSONValue(item)
		}
		return out
	default:
		return value
	}
}

func maskValue(key string, value any) any {
	s, ok := value.(string)
	if !ok {
		return "***"
	}
	lower := strings.ToLower(key)
	switch {
	case strings.Contains(lower, "email"):
		return MaskEmail(s)
	case strings.Contains(lower, "signature"):
		return MaskSignature(s)
	default:
		return maskTail(s)
	}
}

func maskTail(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, needle := range sensitiveKeys {
		if strings.Contains(key, needle) {
			return true
		}
	}
	return false
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
