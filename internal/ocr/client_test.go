package ocr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"syllabuscal/internal/config"
)

func testConfig(url string) config.OCRConfig {
	cfg := config.DefaultConfig().OCR
	cfg.URL = url
	cfg.APIKey = "test-key"
	return cfg
}

func TestRecognize_SendsFormAndJoinsResults(t *testing.T) {
	pdf := []byte("%PDF-1.4 scanned")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		assert.Equal(t, "test-key", r.FormValue("apikey"))
		assert.Equal(t, "eng", r.FormValue("language"))
		assert.Equal(t, "false", r.FormValue("isOverlayRequired"))
		assert.Equal(t, "2", r.FormValue("OCREngine"))

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		assert.Equal(t, "syllabus.pdf", hdr.Filename)
		assert.Equal(t, "application/pdf", hdr.Header.Get("Content-Type"))
		got, _ := io.ReadAll(f)
		assert.Equal(t, pdf, got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ParsedResults":[{"ParsedText":"Midterm March 3, 2025"},{"ParsedText":""},{"ParsedText":"Quiz 4/1"}]}`)
	}))
	defer srv.Close()

	text := NewClient(testConfig(srv.URL)).Recognize(context.Background(), pdf)
	assert.Equal(t, "Midterm March 3, 2025\nQuiz 4/1", text)
}

func TestRecognize_FailuresDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "quota exceeded", http.StatusForbidden)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"ParsedResults": [`)
			},
		},
		{
			name: "wrong field types",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"ParsedResults": "nope"}`)
			},
		},
		{
			name: "missing results",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"IsErroredOnProcessing": true}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			assert.Equal(t, "", NewClient(testConfig(srv.URL)).Recognize(context.Background(), []byte("%PDF")))
		})
	}
}

func TestRecognize_SingleAttemptWithTimeout(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := testConfig(srv.URL)
	client := NewClient(cfg)
	client.client.Timeout = 50 * time.Millisecond

	start := time.Now()
	assert.Equal(t, "", client.Recognize(context.Background(), []byte("%PDF")))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRecognize_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assert.Equal(t, "", NewClient(testConfig(url)).Recognize(context.Background(), []byte("%PDF")))
}

func TestRecognize_DisabledWithoutKey(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""

	assert.Equal(t, "", NewClient(cfg).Recognize(context.Background(), []byte("%PDF")))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestNewClient_UsesConfiguredTimeout(t *testing.T) {
	assert.Equal(t, 20*time.Second, NewClient(config.DefaultConfig().OCR).client.Timeout)
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://api.ocr.space/...(redacted)", redactURL("https://api.ocr.space/parse/image?apikey=secret"))
	assert.Equal(t, "http://127.0.0.1:8080/...(redacted)", redactURL("http://127.0.0.1:8080"))
	assert.Equal(t, "ocr://...(redacted)", redactURL("not a url"))
}
