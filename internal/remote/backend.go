// Package remote talks to the network file store that holds the shared copy
// of the document. Backends move opaque bytes; Store adds the compressed
// JSON codec and typed decoding of the three well-known files.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("remote object not found")
	ErrUnauthorized = errors.New("remote store rejected credentials")
)

const (
	contentTypeGzip = "application/gzip"
	contentTypeJSON = "application/json"
)

// Backend is a named-file store. Get returns ErrNotFound for absent objects.
type Backend interface {
	Reachable(ctx context.Context) error
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte, contentType string) error
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid remote object name %q", name)
	}
	return nil
}
