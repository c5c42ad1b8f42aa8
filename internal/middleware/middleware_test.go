package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/queensrush/internal/middleware"
	"github.com/mcoot/queensrush/internal/testutil"
)

func logRecords(t *testing.T, raw string) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

func TestLoggingLevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusConflict, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			logger, buf := testutil.BufferLogger()
			handler := middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/games/ABC/place", nil))

			records := logRecords(t, buf.String())
			require.Len(t, records, 1)
			assert.Equal(t, tt.level, records[0]["level"])
			assert.Equal(t, "http request", records[0]["msg"])
			assert.Equal(t, "/api/v1/games/ABC/place", records[0]["path"])
			assert.EqualValues(t, tt.status, records[0]["status"])
			assert.EqualValues(t, 4, records[0]["size"])
		})
	}
}

func TestLoggingDefaultsToOK(t *testing.T) {
	logger, buf := testutil.BufferLogger()
	handler := middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	records := logRecords(t, buf.String())
	require.Len(t, records, 1)
	assert.EqualValues(t, http.StatusOK, records[0]["status"])
}

func TestRecoveryPlainResponse(t *testing.T) {
	logger, buf := testutil.BufferLogger()
	handler := middleware.Recovery(logger, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("board exploded")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal Server Error")

	records := logRecords(t, buf.String())
	require.Len(t, records, 1)
	assert.Equal(t, "panic recovered", records[0]["msg"])
	assert.Equal(t, "board exploded", records[0]["panic"])
	assert.Equal(t, "/boom", records[0]["path"])
	assert.NotEmpty(t, records[0]["stack"])
}

func TestRecoveryCustomHandler(t *testing.T) {
	logger, _ := testutil.BufferLogger()
	var got any
	onPanic := func(w http.ResponseWriter, _ *http.Request, recovered any) {
		got = recovered
		w.WriteHeader(http.StatusTeapot)
	}
	handler := middleware.Recovery(logger, onPanic)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(42)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, 42, got)
}

func TestRecoveryPassesThroughAbort(t *testing.T) {
	logger, buf := testutil.BufferLogger()
	handler := middleware.Recovery(logger, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Empty(t, buf.String())
}

func TestRecoveryNoPanic(t *testing.T) {
	logger, buf := testutil.BufferLogger()
	handler := middleware.Recovery(logger, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Empty(t, buf.String())
}
