package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/fileshare/internal/common"
)

// Fallback messages used when a JSON error body has no detail text.
const (
	FallbackAPI    = "API Request Failed"
	FallbackUpload = "Upload Failed"
)

// rawBodyLimit is how many characters of a non-JSON body end up in the message.
const rawBodyLimit = 100

// expiryMarkers are matched case-insensitively against the detail text.
// Loose on purpose: "Invalid API token format" is reported as expiry too.
var expiryMarkers = []string{"token", "expired", "unauthorized"}

// Classifier decides how a failed response is reported. The default is
// DetailHeuristic; a structured error-code contract can replace it without
// touching call sites.
type Classifier interface {
	Classify(status int, body []byte, isJSON bool, fallback string) *Error
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(status int, body []byte, isJSON bool, fallback string) *Error

func (f ClassifierFunc) Classify(status int, body []byte, isJSON bool, fallback string) *Error {
	return f(status, body, isJSON, fallback)
}

// DetailHeuristic is the backend-compatible rule set:
//
//  1. non-JSON body       → not expired, message carries a truncated raw body;
//  2. HTTP 401            → expired;
//  3. detail mentions "token", "expired" or "unauthorized" → expired;
//  4. anything else       → not expired.
type DetailHeuristic struct{}

func (DetailHeuristic) Classify(status int, body []byte, isJSON bool, fallback string) *Error {
	if fallback == "" {
		fallback = FallbackAPI
	}

	if !isJSON {
		prefix, _ := common.Truncate(string(body), rawBodyLimit)
		return &Error{
			Message:    fmt.Sprintf("%s (%d): %s...", nonJSONLead(fallback), status, prefix),
			StatusCode: status,
		}
	}

	detail := Detail(body)
	msg := detail
	if msg == "" {
		msg = fallback
	}

	return &Error{
		Message:        msg,
		StatusCode:     status,
		SessionExpired: status == http.StatusUnauthorized || mentionsExpiry(detail),
	}
}

var defaultClassifier Classifier = DetailHeuristic{}

// Classify runs the default classifier.
func Classify(status int, body []byte, isJSON bool, fallback string) *Error {
	return defaultClassifier.Classify(status, body, isJSON, fallback)
}

// Detail extracts the "detail" string of a FastAPI-style error body. A
// missing, non-string or unparsable detail yields "".
func Detail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err != nil {
		return ""
	}
	return s
}

func mentionsExpiry(detail string) bool {
	d := strings.ToLower(detail)
	for _, m := range expiryMarkers {
		if strings.Contains(d, m) {
			return true
		}
	}
	return false
}

func nonJSONLead(fallback string) string {
	if fallback == FallbackUpload {
		return "Upload failed with non-JSON response"
	}
	return "Server returned non-JSON response"
}
