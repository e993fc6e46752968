package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultLoadingDelay = 8 * time.Second
	DefaultMaxBytes     = 20 << 20
)

// Client walks an ordered list of image models until one returns an image.
// It keeps no state between calls.
type Client struct {
	baseURL      string
	candidates   []Candidate
	httpClient   *http.Client
	loadingDelay time.Duration
	maxBytes     int
	sleep        func(ctx context.Context, d time.Duration) error
}

type Option func(*Client)

// WithLoadingDelay sets the wait before the single resend on "loading".
func WithLoadingDelay(d time.Duration) Option {
	return func(c *Client) { c.loadingDelay = d }
}

// WithSleeper replaces the blocking wait, mainly for tests.
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// WithMaxResponseBytes caps how much of one response is read. A larger
// body counts as a failed model, never as a truncated image.
func WithMaxResponseBytes(n int) Option {
	return func(c *Client) { c.maxBytes = n }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL string, candidates []Candidate, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		candidates:   candidates,
		httpClient:   &http.Client{Timeout: 120 * time.Second},
		loadingDelay: DefaultLoadingDelay,
		maxBytes:     DefaultMaxBytes,
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Candidates returns the model order this client tries.
func (c *Client) Candidates() []Candidate {
	return c.candidates
}

// endpoints lists the path variants for a model: the provider-specific
// route first, then the auto-routed one.
func (c *Client) endpoints(model string) []string {
	return []string{
		c.baseURL + "/hf-inference/models/" + model,
		c.baseURL + "/models/" + model,
	}
}

// chain states
type state int

const (
	stateTryModel state = iota
	stateTryEndpoint
	stateClassify
	stateRetryOnce
	stateNextEndpoint
	stateNextModel
	stateSuccess
	stateExhausted
)

// run is the mutable cursor of one Generate call.
type run struct {
	model    int
	endpoint int
	urls     []string
	body     []byte
	last     attempt
	retried  bool
	image    Image
	failure  *Failure // most recent non-404 failure, loading included
}

// Generate returns the first image any candidate produces. On failure the
// error is a *Failure; when every candidate is exhausted it wraps
// ErrExhausted and carries the last non-404 provider status, if any.
func (c *Client) Generate(ctx context.Context, prompt, credential string) (Image, error) {
	r := &run{}
	st := stateTryModel

	for {
		switch st {
		case stateTryModel:
			if r.model >= len(c.candidates) {
				st = stateExhausted
				continue
			}
			cand := c.candidates[r.model]
			body, err := json.Marshal(generateRequest{Inputs: prompt, Parameters: cand.Parameters})
			if err != nil {
				return Image{}, &Failure{Message: "could not encode request", Model: cand.Model, cause: err}
			}
			r.body = body
			r.urls = c.endpoints(cand.Model)
			r.endpoint = 0
			st = stateTryEndpoint

		case stateTryEndpoint:
			if r.endpoint >= len(r.urls) {
				st = stateNextModel
				continue
			}
			r.retried = false
			r.last = c.post(ctx, r.urls[r.endpoint], credential, r.body)
			st = stateClassify

		case stateClassify:
			if err := ctx.Err(); err != nil {
				return Image{}, &Failure{Message: "request cancelled", cause: err}
			}
			model := c.candidates[r.model].Model
			switch o := classify(r.last).(type) {
			case gotImage:
				r.image = o.image
				st = stateSuccess
			case modelLoading:
				log.Printf("[ImageGen] %s is loading (%s): %s", model, r.last.url, o.detail)
				r.failure = &Failure{Message: o.detail, Detail: o.detail, Model: model}
				if r.retried {
					st = stateNextEndpoint
				} else {
					st = stateRetryOnce
				}
			case notAnImage:
				log.Printf("[ImageGen] %s returned no image (%s): %s", model, r.last.url, o.detail)
				st = stateNextEndpoint
			case endpointMissing:
				log.Printf("[ImageGen] %s 404 (%s): %s", model, r.last.url, o.detail)
				st = stateNextEndpoint
			case modelFailed:
				log.Printf("[ImageGen] %s %d (%s): %s", model, o.status, r.last.url, o.detail)
				r.failure = &Failure{Message: o.detail, StatusCode: o.status, Detail: o.detail, Model: model, cause: o.err}
				if r.retried {
					st = stateNextEndpoint
				} else {
					st = stateNextModel
				}
			default:
				return Image{}, &Failure{Message: fmt.Sprintf("unhandled outcome %T", o), Model: model}
			}

		case stateRetryOnce:
			if err := c.sleep(ctx, c.loadingDelay); err != nil {
				return Image{}, &Failure{Message: "request cancelled", cause: err}
			}
			r.retried = true
			r.last = c.post(ctx, r.urls[r.endpoint], credential, r.body)
			st = stateClassify

		case stateNextEndpoint:
			r.endpoint++
			st = stateTryEndpoint

		case stateNextModel:
			r.model++
			st = stateTryModel

		case stateSuccess:
			return r.image, nil

		case stateExhausted:
			f := &Failure{Message: ErrExhausted.Error(), cause: ErrExhausted}
			if r.failure != nil {
				f.StatusCode = r.failure.StatusCode
				f.Detail = r.failure.Detail
				f.Model = r.failure.Model
			}
			return Image{}, f
		}
	}
}

// post sends one request and reads the whole response.
func (c *Client) post(ctx context.Context, url, credential string, body []byte) attempt {
	a := attempt{url: url}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		a.err = fmt.Errorf("failed to create request: %w", err)
		return a
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		a.err = fmt.Errorf("http request failed: %w", err)
		return a
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, int64(c.maxBytes)+1))
	if err != nil {
		a.err = fmt.Errorf("failed to read response: %w", err)
		return a
	}
	if len(data) > c.maxBytes {
		a.err = fmt.Errorf("%w: status %d, over %d bytes", ErrResponseTooLarge, resp.StatusCode, c.maxBytes)
		return a
	}
	a.statusCode = resp.StatusCode
	a.contentType = resp.Header.Get("Content-Type")
	a.body = data
	return a
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
