package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eduvantage/internal/llm"
	"github.com/abhisek/eduvantage/internal/prompt"
	"github.com/abhisek/eduvantage/internal/study"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, responses ...llm.MockResponse) (*gin.Engine, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	svc := study.NewService(mock, study.DefaultConfig(), nil)
	router := NewRouter(RouterConfig{
		StudyHandler: NewStudyHandler(svc, prompt.PersonaExam),
		AllowOrigins: []string{"http://localhost:5173"},
	})
	return router, mock
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestPlan(t *testing.T) {
	router, mock := newTestRouter(t, llm.MockResponse{Content: json.RawMessage(
		`{"subject":"OS","topics":[{"name":"Scheduling","priority":"High","estimatedHours":3}]}`,
	)})

	rec := doJSON(t, router, http.MethodPost, "/api/plan", map[string]any{
		"persona": "college",
		"subject": "Operating Systems",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Plan study.Plan `json:"plan"`
		View struct {
			TotalHours string `json:"totalHours"`
			Rows       []struct {
				Highlight bool `json:"highlight"`
			} `json:"rows"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OS", body.Plan.Subject)
	assert.Equal(t, "3h", body.View.TotalHours)
	require.Len(t, body.View.Rows, 1)
	assert.True(t, body.View.Rows[0].Highlight)

	req, _ := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, "College Engineering/Science")
	assert.Contains(t, req.Messages[0].Content, "10 hours per week", "hours default to 10")
}

func TestPlan_MalformedResponseIsEmptyPlan(t *testing.T) {
	router, _ := newTestRouter(t, llm.MockText(`{"subject":"x"}`))

	rec := doJSON(t, router, http.MethodPost, "/api/plan", map[string]any{"subject": "x", "weeklyHours": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"plan":{"subject":"","topics":[]},"view":{"subject":"","rows":[],"totalHours":"0h"}}`, rec.Body.String())
}

func TestPlan_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		response llm.MockResponse
		status   int
		code     string
	}{
		{"missing subject", map[string]any{"subject": ""}, llm.MockResponse{}, http.StatusBadRequest, CodeMissingInput},
		{"bad persona", map[string]any{"subject": "x", "persona": "school"}, llm.MockResponse{}, http.StatusBadRequest, CodeBadRequest},
		{"rate limited", map[string]any{"subject": "x"},
			llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}}, http.StatusTooManyRequests, CodeRateLimited},
		{"upstream down", map[string]any{"subject": "x"},
			llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("secret detail")}}, http.StatusBadGateway, CodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t, tt.response)
			rec := doJSON(t, router, http.MethodPost, "/api/plan", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			apiErr := decodeError(t, rec)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.NotContains(t, apiErr.Message, "secret detail")
		})
	}
}

func TestPlan_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeBadRequest, decodeError(t, rec).Code)
}

func TestDoubt(t *testing.T) {
	router, mock := newTestRouter(t, llm.MockText("### Step 1: Read\n- graph\n#### Final Result: 4"))
	img := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	rec := doJSON(t, router, http.MethodPost, "/api/doubts", map[string]any{"query": "", "image": img})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Text   string `json:"text"`
		Blocks []struct {
			Kind string `json:"kind"`
			Text string `json:"text"`
		} `json:"blocks"`
		Counts map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Blocks, 3)
	assert.Equal(t, map[string]int{"heading": 1, "bullet": 1, "final-result": 1}, body.Counts)
	assert.Equal(t, "heading", body.Blocks[0].Kind)
	assert.Equal(t, "final-result", body.Blocks[2].Kind)
	assert.Equal(t, "4", body.Blocks[2].Text)

	req, _ := mock.LastCall()
	require.Len(t, req.Messages[0].Images, 1)
	assert.Equal(t, []byte("png-bytes"), req.Messages[0].Images[0].Data)
}

func TestDoubt_BadImageAndMissingInput(t *testing.T) {
	router, mock := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/doubts", map[string]any{"image": "data:text/plain;base64,aGk="})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeBadImage, decodeError(t, rec).Code)

	rec = doJSON(t, router, http.MethodPost, "/api/doubts", map[string]any{"query": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeMissingInput, decodeError(t, rec).Code)

	assert.Zero(t, mock.CallCount())
}

func TestBodyLimit(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("ok"))
	router := NewRouter(RouterConfig{
		StudyHandler: NewStudyHandler(study.NewService(mock, study.DefaultConfig(), nil), prompt.PersonaExam),
		MaxBodyBytes: 1 << 10,
	})
	oversized := `{"query":"` + strings.Repeat("x", 4<<10) + `"}`

	tests := []struct {
		name          string
		contentLength int64
	}{
		{"declared length", int64(len(oversized))},
		{"chunked", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/doubts", io.NopCloser(strings.NewReader(oversized)))
			req.ContentLength = tt.contentLength
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
			assert.Equal(t, CodeTooLarge, decodeError(t, rec).Code)
		})
	}
	assert.Zero(t, mock.CallCount())

	rec := doJSON(t, router, http.MethodPost, "/api/doubts", map[string]any{"query": "2+2"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestDefaultMaxBodyBytesFitsImage(t *testing.T) {
	assert.Greater(t, DefaultMaxBodyBytes, int64(base64.StdEncoding.EncodedLen(prompt.MaxImageBytes)))
}

func TestResources(t *testing.T) {
	router, mock := newTestRouter(t, llm.MockResponse{
		Content: json.RawMessage("### Courses\n- NPTEL"),
		Sources: []llm.Source{{URI: "https://nptel.ac.in/x"}},
	})

	rec := doJSON(t, router, http.MethodPost, "/api/resources", map[string]any{"topic": "Atomic Physics"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Sources []study.SourceLink `json:"sources"`
		View    struct {
			Sources []struct {
				Title string `json:"title"`
				Host  string `json:"host"`
			} `json:"sources"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.View.Sources, 1)
	assert.Equal(t, "External Link", body.View.Sources[0].Title)
	assert.Equal(t, "nptel.ac.in", body.View.Sources[0].Host)

	req, _ := mock.LastCall()
	assert.True(t, req.Search)
}

func TestRequestIDPropagates(t *testing.T) {
	router, _ := newTestRouter(t)
	const id = "0b4c2a0e-8f7e-4d43-9a53-0d7c1f6f9a11"

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/plan", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
