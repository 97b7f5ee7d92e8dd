package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/navsync/internal/utils"
)

// Dir keeps the remote copy in a directory, typically a mounted network
// share or a folder synced by another tool.
type Dir struct {
	root string
}

func NewDir(root string) (*Dir, error) {
	if root == "" {
		return nil, errors.New("directory is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	return &Dir{root: abs}, nil
}

// Reachable fails when the directory is missing, so an unmounted share is
// reported instead of silently written to.
func (d *Dir) Reachable(ctx context.Context) error {
	fi, err := os.Stat(d.root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", d.root, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", d.root)
	}
	return nil
}

func (d *Dir) Get(ctx context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(d.root, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (d *Dir) Put(ctx context.Context, name string, data []byte, contentType string) error {
	if err := validName(name); err != nil {
		return err
	}
	final := filepath.Join(d.root, name)
	if err := utils.WriteFileAtomic(final+".tmp", final, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
