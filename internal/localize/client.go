// Package localize is a client for the Localize v2.0 project API.
//
// Every call is a single synchronous request. Nothing is retried and remote
// failures are returned as they were reported by the transport.
package localize

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/valpere/localize/internal/config"
	"github.com/valpere/localize/internal/phrase"
)

type Client struct {
	cfg  config.Config
	http *http.Client
}

// NewClient returns a client for the project in cfg. The underlying
// http.Client carries no timeout.
func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
	}
}

// WithHTTPClient replaces the transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) Config() config.Config {
	return c.cfg
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, errors.Wrap(err, "creating request object")
	}
	for k, v := range Headers(c.cfg) {
		req.Header.Set(k, v)
	}

	log.Debug().Str("method", method).Str("url", rawURL).Msg("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, rawURL)
	}

	log.Debug().Str("status", resp.Status).Int64("content_length", resp.ContentLength).Msg("received response")
	return resp, nil
}

type pushRequest struct {
	Phrases []phrase.Phrase `json:"phrases"`
}

// PushResult is the raw outcome of a push. A non-2xx status is not an error.
type PushResult struct {
	StatusCode int
	Status     string
}

// PushPhrases posts the phrases to the project's phrases endpoint.
func (c *Client) PushPhrases(ctx context.Context, phrases []phrase.Phrase) (*PushResult, error) {
	if phrases == nil {
		phrases = []phrase.Phrase{}
	}
	body, err := json.Marshal(pushRequest{Phrases: phrases})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling json")
	}

	resp, err := c.do(ctx, http.MethodPost, EndpointURL(c.cfg, ActionPhrases, nil), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return &PushResult{StatusCode: resp.StatusCode, Status: resp.Status}, nil
}

type phrasesResponse struct {
	Data *struct {
		Phrases *[]struct {
			Phrase *string `json:"phrase"`
		} `json:"phrases"`
	} `json:"data"`
}

// GetPhrases lists the project's phrases in the given state, in response
// order, each with its first character removed.
func (c *Client) GetPhrases(ctx context.Context, state string) ([]string, error) {
	params := url.Values{"state": []string{state}}
	resp, err := c.do(ctx, http.MethodGet, EndpointURL(c.cfg, ActionPhrases, params), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var pr phrasesResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, errors.Wrapf(err, "decoding phrases response (%s)", resp.Status)
	}
	if pr.Data == nil {
		return nil, errors.Errorf("phrases response (%s) has no data field", resp.Status)
	}
	if pr.Data.Phrases == nil {
		return nil, errors.Errorf("phrases response (%s) has no data.phrases field", resp.Status)
	}

	out := make([]string, 0, len(*pr.Data.Phrases))
	for i, p := range *pr.Data.Phrases {
		if p.Phrase == nil {
			return nil, errors.Errorf("phrase %d has no phrase field", i)
		}
		out = append(out, StripFirst(*p.Phrase))
	}
	return out, nil
}

// StripFirst drops the first character of s.
//
// The API is assumed to prefix every phrase with a marker character. This is
// an observed convention of the upstream data, not a documented contract;
// phrases without the prefix lose a real character.
func StripFirst(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[size:]
}

// Stats fetches the project statistics. The "data" object is returned when
// present, otherwise the whole document.
func (c *Client) Stats(ctx context.Context) (map[string]interface{}, error) {
	resp, err := c.do(ctx, http.MethodGet, StatsURL(c.cfg), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "decoding stats response (%s)", resp.Status)
	}
	if data, ok := doc["data"].(map[string]interface{}); ok {
		return data, nil
	}
	return doc, nil
}
