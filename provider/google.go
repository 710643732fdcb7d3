package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZaguanLabs/nbtai"
)

const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleProvider translates text through the public Google Translate web
// endpoint. It requires no API key but offers no SLA: callers should wrap
// it in the retry gateway.
type GoogleProvider struct {
	client   *http.Client
	endpoint string
}

var _ AIProvider = (*GoogleProvider)(nil)

// NewGoogleProvider creates a Google Translate backend. The configured
// language pair is validated immediately.
func NewGoogleProvider(cfg Config) (*GoogleProvider, error) {
	if err := validateLangs(BackendGoogle, cfg.SourceLang, cfg.TargetLang); err != nil {
		return nil, err
	}
	return &GoogleProvider{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: googleEndpoint,
	}, nil
}

// SetEndpoint overrides the translation endpoint. Used in tests.
func (p *GoogleProvider) SetEndpoint(endpoint string) {
	p.endpoint = endpoint
}

// Translate implements AIProvider.
func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", googleLang(req.SourceLang))
	params.Set("tl", googleLang(req.TargetLang))
	params.Set("dt", "t")
	params.Set("q", req.Text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", &nbtai.ProviderError{Message: "building request", Cause: err}
	}
	httpReq.Header.Set("User-Agent", nbtai.UserAgent())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &nbtai.ProviderError{Message: "google translate request failed", Cause: err, Retryable: true}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &nbtai.ProviderError{Message: "reading response", Cause: err, Retryable: true}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &nbtai.ProviderError{
			Message:   fmt.Sprintf("google translate returned status %d", resp.StatusCode),
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	return parseGoogleResponse(body)
}

// parseGoogleResponse extracts the translated text from the gtx response,
// which is a nested JSON array: the first element is a list of segments
// and each segment's first element is a translated chunk.
func parseGoogleResponse(body []byte) (string, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		return "", &nbtai.ProviderError{Message: "decoding google response", Cause: err}
	}
	if len(outer) == 0 {
		return "", &nbtai.ProviderError{Message: "empty google response"}
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(outer[0], &segments); err != nil {
		return "", &nbtai.ProviderError{Message: "decoding google segments", Cause: err}
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var chunk string
		if err := json.Unmarshal(seg[0], &chunk); err != nil {
			continue
		}
		sb.WriteString(chunk)
	}
	return sb.String(), nil
}

// googleLang maps a language code to the hyphenated form the endpoint
// expects (pt_BR becomes pt-BR).
func googleLang(lang string) string {
	return strings.ReplaceAll(nbtai.NormalizeLocale(lang), "_", "-")
}
