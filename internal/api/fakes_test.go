package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"referent/internal/config"
	"referent/internal/llm"
)

// fakeOpenRouter answers chat completions with a fixed reply or status.
type fakeOpenRouter struct {
	mu       sync.Mutex
	status   int
	reply    string
	requests []llm.ChatRequest
}

func newFakeOpenRouter(t *testing.T, status int, reply string) (*fakeOpenRouter, *httptest.Server) {
	t.Helper()
	f := &fakeOpenRouter{status: status, reply: reply}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req llm.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.mu.Unlock()

		if f.status != http.StatusOK {
			http.Error(w, `{"error":{"message":"upstream down"}}`, f.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": f.reply}}},
		})
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeOpenRouter) calls() []llm.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.ChatRequest(nil), f.requests...)
}

// fakeImages serves one response for every image endpoint.
type fakeImages struct {
	mu          sync.Mutex
	status      int
	contentType string
	body        []byte
	hits        int
}

func newFakeImages(t *testing.T, status int, contentType string, body []byte) (*fakeImages, *httptest.Server) {
	t.Helper()
	f := &fakeImages{status: status, contentType: contentType, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		f.mu.Lock()
		f.hits++
		f.mu.Unlock()
		w.Header().Set("Content-Type", f.contentType)
		w.WriteHeader(f.status)
		w.Write(f.body)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeImages) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

func testConfig(textURL, imageURL string) *config.Config {
	cfg := config.Default()
	cfg.OpenRouter.URL = textURL
	cfg.OpenRouter.APIKey = "or-key"
	cfg.HuggingFace.URL = imageURL
	cfg.HuggingFace.APIKey = "hf-key"
	cfg.HuggingFace.LoadingRetrySeconds = 0
	return cfg
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	switch p := payload.(type) {
	case string:
		body = bytes.NewBufferString(p)
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %s", w.Body.String())
	}
	return resp.Error
}
