// Package remote implements the executor interface against a stateless
// HTTP tensor service. The service loads a model per session; tensors
// round-trip as JSON and all request state stays client-side.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jotspot/inktex/executor"
	"github.com/jotspot/inktex/log"
)

// DefaultTimeout bounds a single service call. Session creation uploads
// the model and gets a longer allowance.
const (
	DefaultTimeout       = 60 * time.Second
	createSessionTimeout = 5 * time.Minute
)

// Client talks to one tensor service instance and implements
// executor.Factory.
type Client struct {
	base   string
	client *http.Client
}

// NewClient builds a client for the service at rawURL. Any path component
// is discarded; the API lives under /v1.
func NewClient(rawURL string) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", rawURL)
	}

	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	return &Client{
		base:   base.String(),
		client: &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// NewSession uploads the model and opens a session.
func (c *Client) NewSession(ctx context.Context, model []byte, opts executor.Options) (executor.Session, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, createSessionTimeout)
		defer cancel()
	}

	req := createSessionRequest{
		Model:   base64.StdEncoding.EncodeToString(model),
		Backend: opts.Backend,
		Threads: opts.Threads,
	}
	var resp createSessionResponse
	if err := c.post(ctx, "/v1/sessions", req, &resp); err != nil {
		return nil, err
	}
	if resp.SessionID == "" {
		return nil, fmt.Errorf("service returned no session id")
	}
	log.Trace.Printf("remote session %s opened on %q", resp.SessionID, opts.Backend)
	return &session{client: c, id: resp.SessionID}, nil
}

// post sends a JSON request and decodes a JSON response, surfacing service
// error bodies.
func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return fmt.Errorf("service error: Status %d, %s", res.StatusCode, e.Error)
		}
		return fmt.Errorf("service error: Status %d, Response: %s", res.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// session is one remote model instance.
type session struct {
	client *Client
	id     string
}

func (s *session) Encode(ctx context.Context, pixels, mask executor.Tensor) (executor.Tensor, executor.Tensor, error) {
	req := encodeRequest{
		SessionID: s.id,
		Pixels:    toWire(pixels),
		Mask:      toWire(mask),
	}
	var resp encodeResponse
	if err := s.client.post(ctx, "/v1/encode", req, &resp); err != nil {
		return executor.Tensor{}, executor.Tensor{}, err
	}
	return fromWire(resp.Features), fromWire(resp.EncMask), nil
}

func (s *session) DecodeStep(ctx context.Context, features, encMask executor.Tensor, ids []int64) (executor.Tensor, error) {
	req := decodeStepRequest{
		SessionID: s.id,
		Features:  toWire(features),
		EncMask:   toWire(encMask),
		IDs:       ids,
	}
	var resp decodeStepResponse
	if err := s.client.post(ctx, "/v1/decode_step", req, &resp); err != nil {
		return executor.Tensor{}, err
	}
	return fromWire(resp.Logits), nil
}

// Release closes the remote session, best effort with a short deadline.
func (s *session) Release() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.post(ctx, "/v1/sessions/"+s.id+"/release", releaseRequest{SessionID: s.id}, nil)
}
