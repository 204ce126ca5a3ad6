// Package ocr is a best-effort client for an OCR.space compatible service.
// A request is attempted exactly once; every failure is reported to the
// caller as "no text".
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"syllabuscal/internal/config"
	appLog "syllabuscal/internal/log"
)

// ErrNoText means the service was reachable but returned nothing usable.
var ErrNoText = errors.New("ocr: no parsed text")

const (
	uploadFileName    = "syllabus.pdf"
	uploadContentType = "application/pdf"
	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 16 << 20
)

// parseResponse is the subset of the OCR.space payload we read.
type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
}

// Client posts whole PDFs to the OCR endpoint.
type Client struct {
	client *http.Client
	cfg    config.OCRConfig
}

// NewClient creates a client whose single request is bounded by
// cfg.Timeout().
func NewClient(cfg config.OCRConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout(),
		},
		cfg: cfg,
	}
}

// Recognize returns the concatenated parsed text of pdf, or "" when OCR is
// disabled or fails for any reason.
func (c *Client) Recognize(ctx context.Context, pdf []byte) string {
	if !c.cfg.Enabled() {
		appLog.Debug("ocr disabled; skipping")
		return ""
	}

	text, err := c.recognize(ctx, pdf)
	if err != nil {
		if errors.Is(err, ErrNoText) {
			appLog.Warn("ocr returned no text", "url", redactURL(c.cfg.URL))
		} else {
			appLog.Error("ocr request failed", err, "url", redactURL(c.cfg.URL))
		}
		return ""
	}

	appLog.Info("ocr success", "url", redactURL(c.cfg.URL), "chars", len(text))
	return text
}

func (c *Client) recognize(ctx context.Context, pdf []byte) (string, error) {
	body, contentType, err := c.buildForm(pdf)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	appLog.Info("ocr request start", "url", redactURL(c.cfg.URL), "bytes", len(pdf))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr: unexpected status %s", resp.Status)
	}

	var payload parseResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("ocr: decode response: %w", err)
	}

	texts := make([]string, 0, len(payload.ParsedResults))
	for _, r := range payload.ParsedResults {
		if r.ParsedText != "" {
			texts = append(texts, r.ParsedText)
		}
	}
	if len(texts) == 0 {
		return "", ErrNoText
	}
	return strings.Join(texts, "\n"), nil
}

func (c *Client) buildForm(pdf []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, uploadFileName))
	header.Set("Content-Type", uploadContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"apikey", c.cfg.APIKey},
		{"language", c.cfg.Language},
		{"isOverlayRequired", "false"},
		{"OCREngine", c.cfg.Engine},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// redactURL keeps only scheme and host so query-string keys never reach logs.
func redactURL(u string) string {
	const redactedSuffix = "/...(redacted)"

	i := strings.Index(u, "://")
	if i == -1 {
		return "ocr://...(redacted)"
	}
	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j != -1 {
		rest = rest[:j]
	}
	return u[:i+3] + rest + redactedSuffix
}
