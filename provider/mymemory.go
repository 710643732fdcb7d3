package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ZaguanLabs/nbtai"
)

const myMemoryEndpoint = "https://api.mymemory.translated.net/get"

// MyMemoryProvider translates text through the MyMemory public API.
// The free tier is rate limited by volume per day; pair it with a
// rate limiter for larger notebooks.
type MyMemoryProvider struct {
	client   *http.Client
	endpoint string
	email    string
}

var _ AIProvider = (*MyMemoryProvider)(nil)

// NewMyMemoryProvider creates a MyMemory backend. The configured language
// pair is validated immediately.
func NewMyMemoryProvider(cfg Config) (*MyMemoryProvider, error) {
	if err := validateLangs(BackendMyMemory, cfg.SourceLang, cfg.TargetLang); err != nil {
		return nil, err
	}
	return &MyMemoryProvider{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: myMemoryEndpoint,
	}, nil
}

// SetEndpoint overrides the translation endpoint. Used in tests.
func (p *MyMemoryProvider) SetEndpoint(endpoint string) {
	p.endpoint = endpoint
}

// SetEmail attaches a contact email to requests, which raises the daily
// quota on the free tier.
func (p *MyMemoryProvider) SetEmail(email string) {
	p.email = email
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  json.Number `json:"responseStatus"`
	ResponseDetails string      `json:"responseDetails"`
}

// Translate implements AIProvider.
func (p *MyMemoryProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	params := url.Values{}
	params.Set("q", req.Text)
	params.Set("langpair", fmt.Sprintf("%s|%s", myMemoryLang(req.SourceLang), myMemoryLang(req.TargetLang)))
	if p.email != "" {
		params.Set("de", p.email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", &nbtai.ProviderError{Message: "building request", Cause: err}
	}
	httpReq.Header.Set("User-Agent", nbtai.UserAgent())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &nbtai.ProviderError{Message: "mymemory request failed", Cause: err, Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &nbtai.ProviderError{
			Message:   fmt.Sprintf("mymemory returned status %d", resp.StatusCode),
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	var mm myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&mm); err != nil {
		return "", &nbtai.ProviderError{Message: "decoding mymemory response", Cause: err}
	}

	// The API reports errors through responseStatus with HTTP 200.
	if status, _ := mm.ResponseStatus.Int64(); status != 200 {
		return "", &nbtai.ProviderError{
			Message:   fmt.Sprintf("mymemory error %d: %s", status, mm.ResponseDetails),
			Retryable: status == 429 || status >= 500,
		}
	}

	return mm.ResponseData.TranslatedText, nil
}

// myMemoryLang maps a language code to the hyphenated RFC 3066 form the
// API expects.
func myMemoryLang(lang string) string {
	return googleLang(lang)
}
