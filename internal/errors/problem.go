package errors

import (
	"encoding/json"
	"net/http"
)

// ContentTypeProblem is the media type of RFC 7807 responses.
const ContentTypeProblem = "application/problem+json"

// Problem types
const (
	TypeValidation        = "/errors/validation"
	TypeNotFound          = "/errors/not-found"
	TypeMethodNotAllowed  = "/errors/method-not-allowed"
	TypeRateLimit         = "/errors/rate-limit"
	TypeInternal          = "/errors/internal"
	TypeTimeout           = "/errors/timeout"
	TypePayloadTooLarge   = "/errors/payload-too-large"
	TypeMissingFile       = "/errors/upload/missing-file"
	TypeUnsupportedFile   = "/errors/upload/unsupported-file"
	TypeMalformedWorkbook = "/errors/upload/malformed-workbook"
)

// ProblemDetails is an RFC 7807 problem document.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extensions are flattened into the top-level JSON object.
	Extensions map[string]interface{} `json:"-"`
}

// MarshalJSON custom marshaler to include extensions
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{}, 5+len(pd.Extensions))

	for k, v := range pd.Extensions {
		data[k] = v
	}

	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status
	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}

	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	if pd.Extensions == nil {
		pd.Extensions = make(map[string]interface{})
	}
	pd.Extensions[key] = value
	return pd
}

// WriteProblem writes pd as application/problem+json with its status code.
func WriteProblem(w http.ResponseWriter, pd *ProblemDetails) {
	body, err := json.Marshal(pd)
	if err != nil {
		body = []byte(`{"type":"` + TypeInternal + `","title":"Internal Server Error","status":500}`)
		pd.Status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", ContentTypeProblem)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(pd.Status)
	_, _ = w.Write(body)
}
