// Package assets downloads and caches model files and vocabularies.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/jotspot/inktex/log"
	"github.com/pkg/errors"
)

const downloadTimeout = 2 * time.Minute

// Source fetches assets over HTTP and keeps local copies so a model
// is only downloaded once per machine.
type Source struct {
	client   *http.Client
	cacheDir string
	token    string
}

type Option func(*Source)

// WithCacheDir overrides the default cache location.
func WithCacheDir(dir string) Option {
	return func(s *Source) {
		s.cacheDir = dir
	}
}

// WithHTTPClient replaces the default http client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// WithToken sets a bearer token sent with every download request.
func WithToken(token string) Option {
	return func(s *Source) {
		s.token = token
	}
}

func NewSource(opts ...Option) *Source {
	s := &Source{
		client: &http.Client{Timeout: downloadTimeout},
	}
	for _, o := range opts {
		o(s)
	}
	if s.cacheDir == "" {
		dir, err := defaultCacheDir()
		if err != nil {
			log.Warning.Println("asset cache disabled:", err)
		} else {
			s.cacheDir = dir
		}
	}
	if s.token != "" {
		warnIfExpired(s.token)
	}
	return s
}

// Fetch returns the contents of rawURL, preferring a previously cached copy.
func (s *Source) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, errors.New("empty asset url")
	}
	if data, ok := s.fromCache(rawURL); ok {
		log.Trace.Println("asset cache hit:", rawURL)
		return data, nil
	}
	data, err := s.download(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	s.store(rawURL, data)
	return data, nil
}

func (s *Source) fromCache(rawURL string) ([]byte, bool) {
	if s.cacheDir == "" {
		return nil, false
	}
	data, err := os.ReadFile(s.cachePath(rawURL))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *Source) store(rawURL string, data []byte) {
	if s.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(s.cacheDir, 0700); err != nil {
		log.Warning.Println("cannot create asset cache:", err)
		return
	}
	if err := os.WriteFile(s.cachePath(rawURL), data, 0600); err != nil {
		log.Warning.Println("cannot cache asset:", err)
	}
}

func (s *Source) cachePath(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return path.Join(s.cacheDir, hex.EncodeToString(sum[:]))
}

func (s *Source) download(ctx context.Context, rawURL string) ([]byte, error) {
	log.Info.Println("downloading asset:", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: Status %d, Response: %s", res.StatusCode, string(body))
	}

	return body, nil
}

func defaultCacheDir() (string, error) {
	cachedir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir cannot be determined
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return path.Join(home, ".inktex-cache"), nil
	}
	folder := path.Join(cachedir, "inktex")
	if err := os.MkdirAll(folder, 0700); err != nil {
		// Fallback to home directory if cache dir cannot be created
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return path.Join(home, ".inktex-cache"), nil
	}
	return folder, nil
}

func warnIfExpired(token string) {
	claims := &jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return
	}
	if claims.ExpiresAt != 0 && time.Now().After(time.Unix(claims.ExpiresAt, 0)) {
		log.Warning.Println("asset token is expired")
	}
}
