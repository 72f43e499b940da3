package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/phrazzld/users-api/internal/api/shared"
	"github.com/phrazzld/users-api/internal/domain"
)

// maxRequestBodyBytes caps the size of a POST body.
const maxRequestBodyBytes = 1 << 20

// bindCreateUserRequest fills req from the request.
//
// Form-encoded and multipart bodies are read as fields, JSON bodies are
// decoded, and a request with neither a body nor a content type takes name
// and email from the query string. Absent fields are left nil for
// validation to report.
func bindCreateUserRequest(w http.ResponseWriter, r *http.Request, req *CreateUserRequest) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return domain.NewValidationError("", "unsupported content type", domain.ErrInvalidFormat)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
		}
		bindValues(r.Form, req)
		return nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxRequestBodyBytes); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
		}
		bindValues(r.Form, req)
		return nil

	case "":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
		}
		if len(bytes.TrimSpace(body)) == 0 {
			bindValues(r.URL.Query(), req)
			return nil
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		return decodeCreateUserJSON(r, req)

	default:
		return decodeCreateUserJSON(r, req)
	}
}

// bindValues copies name and email from values when present.
func bindValues(values url.Values, req *CreateUserRequest) {
	if vs, ok := values["name"]; ok && len(vs) > 0 {
		name := vs[0]
		req.Name = &name
	}
	if vs, ok := values["email"]; ok && len(vs) > 0 {
		email := vs[0]
		req.Email = &email
	}
}

// decodeCreateUserJSON decodes a JSON object into req. Syntax errors are
// format errors; values of the wrong type are validation errors on the
// named field.
func decodeCreateUserJSON(r *http.Request, req *CreateUserRequest) error {
	err := shared.DecodeJSON(r, req)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			return domain.NewValidationError("", "request body must be a JSON object", domain.ErrValidation)
		}
		return domain.NewValidationError(field, "must be a string", domain.ErrValidation)
	}

	return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
}
