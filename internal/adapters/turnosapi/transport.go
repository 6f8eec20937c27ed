// Package turnosapi is the HTTP adapter for the clinic REST API.
// AuthClient talks to the unauthenticated auth endpoints; Client sends every
// other call through an http.Client whose transport is the request gateway.
package turnosapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/turnos-app/turnos/internal/domain/model"
	apperrors "github.com/turnos-app/turnos/internal/errors"
)

// DefaultBaseURL is the local development API.
const DefaultBaseURL = "http://localhost:8000/api"

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Config captures connection settings shared by AuthClient and Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client // Optional: overrides the default client
}

type transport struct {
	base   *url.URL
	client *http.Client
}

func newTransport(cfg Config) (*transport, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url must be http or https: %q", raw)
	}

	hc := cfg.Client
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &transport{base: u, client: hc}, nil
}

// endpoint joins path (with leading and trailing slash) to the base URL.
func (t *transport) endpoint(path string, query url.Values) string {
	u := *t.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// call sends in as JSON (when non-nil) and decodes a 2xx body into out (when non-nil).
func (t *transport) call(ctx context.Context, method, path string, query url.Values, in, out any) error {
	body, err := t.raw(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := decodeJSON(body, out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "decode %s %s response", method, path)
	}
	return nil
}

// decodeJSON unmarshals data into out; an empty body leaves out untouched.
func decodeJSON(data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// raw performs the request and returns the 2xx body.
func (t *transport) raw(ctx context.Context, method, path string, query url.Values, in any) ([]byte, error) {
	data, _, err := t.do(ctx, method, path, query, in)
	return data, err
}

// rawStatus is raw without a query, also reporting the 2xx status code.
func (t *transport) rawStatus(ctx context.Context, method, path string, in any) ([]byte, int, error) {
	return t.do(ctx, method, path, nil, in)
}

func (t *transport) do(ctx context.Context, method, path string, query url.Values, in any) ([]byte, int, error) {
	var reader io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, 0, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.endpoint(path, query), reader)
	if err != nil {
		return nil, 0, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, 0, apperrors.MapTransportError(unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, resp.StatusCode, apperrors.FromResponse(resp.StatusCode, data)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, apperrors.MapTransportError(err)
	}
	return data, resp.StatusCode, nil
}

// unwrapURLError strips *url.Error so context errors are recognized.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}

// decodeList accepts either a bare JSON array or a paginated {"results": [...]} object.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var page model.Page[T]
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// decodePage accepts a paginated object or a bare array (returned as one page).
func decodePage[T any](data []byte) (model.Page[T], error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		list, err := decodeList[T](trimmed)
		if err != nil {
			return model.Page[T]{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode page")
		}
		return model.Page[T]{Count: len(list), Results: list}, nil
	}
	var page model.Page[T]
	if err := decodeJSON(trimmed, &page); err != nil {
		return model.Page[T]{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode page")
	}
	return page, nil
}

// getList fetches path and decodes a bare or paginated list.
func getList[T any](ctx context.Context, t *transport, path string, query url.Values) ([]T, error) {
	data, err := t.raw(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeList[T](data)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "decode GET %s response", path)
	}
	return list, nil
}
