package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/service"
	"github.com/MrSnakeDoc/navsync/internal/utils"
)

const (
	methodPropfind = "PROPFIND"
	methodMkcol    = "MKCOL"

	maxPayloadBytes = 32 << 20
)

const propfindBody = `<?xml version="1.0" encoding="utf-8"?>
<d:propfind xmlns:d="DAV:"><d:prop><d:resourcetype/></d:prop></d:propfind>`

// WebDAV stores objects as files inside one collection on a WebDAV server.
type WebDAV struct {
	base     *url.URL
	username string
	password string
	client   service.HTTPClient
}

func NewWebDAV(endpoint, username, password string, client service.HTTPClient) (*WebDAV, error) {
	base, err := utils.ParseEndpointURL(endpoint)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if client == nil {
		return nil, fmt.Errorf("webdav: nil http client")
	}
	return &WebDAV{base: base, username: username, password: password, client: client}, nil
}

// Reachable probes the collection with PROPFIND and creates it when the
// server reports it missing.
func (w *WebDAV) Reachable(ctx context.Context) error {
	resp, err := w.do(ctx, methodPropfind, w.base.String(), strings.NewReader(propfindBody), func(h http.Header) {
		h.Set("Depth", "0")
		h.Set("Content-Type", "application/xml; charset=utf-8")
	})
	if err != nil {
		return err
	}
	defer utils.Try(resp.Body.Close)
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusMultiStatus, resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		logger.Debug("webdav: collection %s missing, creating it", w.base.Redacted())
		return w.mkcol(ctx)
	default:
		return statusError(methodPropfind, w.base.Redacted(), resp.StatusCode)
	}
}

func (w *WebDAV) Get(ctx context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	resp, err := w.do(ctx, http.MethodGet, utils.JoinURLPath(w.base, name), http.NoBody, nil)
	if err != nil {
		return nil, err
	}
	defer utils.Try(resp.Body.Close)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(http.MethodGet, name, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > maxPayloadBytes {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, maxPayloadBytes)
	}
	return data, nil
}

func (w *WebDAV) Put(ctx context.Context, name string, data []byte, contentType string) error {
	if err := validName(name); err != nil {
		return err
	}
	resp, err := w.do(ctx, http.MethodPut, utils.JoinURLPath(w.base, name), bytes.NewReader(data), func(h http.Header) {
		h.Set("Content-Type", contentType)
	})
	if err != nil {
		return err
	}
	defer utils.Try(resp.Body.Close)
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	default:
		return statusError(http.MethodPut, name, resp.StatusCode)
	}
}

// --- internals ---

func (w *WebDAV) mkcol(ctx context.Context) error {
	resp, err := w.do(ctx, methodMkcol, w.base.String(), http.NoBody, nil)
	if err != nil {
		return err
	}
	defer utils.Try(resp.Body.Close)
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusMethodNotAllowed {
		return statusError(methodMkcol, w.base.Redacted(), resp.StatusCode)
	}
	return nil
}

func (w *WebDAV) do(ctx context.Context, method, target string, body io.Reader, header func(http.Header)) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.SetBasicAuth(w.username, w.password)
	if header != nil {
		header(req.Header)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Redacted(), err)
	}
	return resp, nil
}

func statusError(method, name string, code int) error {
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return fmt.Errorf("%s %s: %w (status %d)", method, name, ErrUnauthorized, code)
	}
	return fmt.Errorf("%s %s: unexpected status %d", method, name, code)
}
