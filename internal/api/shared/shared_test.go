package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/users-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")

	assert.NotEqual(t, id, NewTraceID())
	assert.Equal(t, "fixed", GetTraceID(WithTraceID(context.Background(), "fixed")))
}

type sample struct {
	Name *string `json:"name" validate:"required"`
}

type selfValidating struct{}

func (selfValidating) Validate() error { return errors.New("custom") }

func TestValidateRequest(t *testing.T) {
	t.Run("uses json field names", func(t *testing.T) {
		err := ValidateRequest(&sample{})

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "name", verrs[0].Field())
	})

	t.Run("empty string satisfies required pointer", func(t *testing.T) {
		empty := ""
		assert.NoError(t, ValidateRequest(&sample{Name: &empty}))
	})

	t.Run("prefers Validate method", func(t *testing.T) {
		assert.EqualError(t, ValidateRequest(selfValidating{}), "custom")
	})
}

func TestDecodeJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	var s sample
	require.NoError(t, DecodeJSON(r, &s))
	assert.Equal(t, "x", *s.Name)

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(bad, &s))

	padded := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{\"name\":\"y\"}\n  "))
	require.NoError(t, DecodeJSON(padded, &s))
	assert.Equal(t, "y", *s.Name)

	for _, body := range []string{
		`{"name":"z"} trailing-garbage`,
		`{"name":"z"}{"name":"w"}`,
		`{"name":"z"} [1]`,
	} {
		trailing := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		assert.ErrorIs(t, DecodeJSON(trailing, &s), ErrTrailingData, body)
	}
}

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]string{"ok": "yes"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":"yes"}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	log, logBuf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(WithTraceID(context.Background(), "trace-1"), log)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/users", nil).WithContext(ctx)

	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create user",
		errors.New("dial postgres://admin:hunter2@db:5432/users failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to create user", body["error"])
	assert.Equal(t, "trace-1", body["trace_id"])
	assert.NotContains(t, w.Body.String(), "hunter2")

	logger.AssertLogField(t, logBuf, "level", "ERROR")
	logger.AssertLogField(t, logBuf, "status_code", float64(500))
	assert.NotContains(t, logBuf.String(), "hunter2", "credentials must be redacted in logs")
}

func TestRespondWithError(t *testing.T) {
	log, logBuf := logger.GetTestLogger(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(logger.WithLogger(context.Background(), log))

	RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid request format"}`, w.Body.String())
	logger.AssertLogField(t, logBuf, "level", "DEBUG")
}
