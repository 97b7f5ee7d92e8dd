package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/config"
	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/utils"
)

// Store is the local persistence for the document and the sync settings.
// Update* methods are read-modify-write transactions: fn sees the latest
// persisted value and its result is written atomically.
type Store interface {
	LoadDocument(ctx context.Context) (models.Document, error)
	UpdateDocument(ctx context.Context, fn func(*models.Document) error) error

	// BackupDocument snapshots the current document before it is replaced.
	BackupDocument(ctx context.Context) error

	LoadSettings(ctx context.Context) (models.SyncSettings, error)
	UpdateSettings(ctx context.Context, fn func(*models.SyncSettings) error) error

	DocumentPath() string
}

// ErrAbort lets an Update callback cancel the write without failing.
var ErrAbort = errors.New("store: update aborted")

type FS struct {
	dir          string
	docPath      string
	backupPath   string
	settingsPath string

	docMu      sync.Mutex
	settingsMu sync.Mutex
	now        func() time.Time
}

func NewFS(dataDir string) (*FS, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dataDir, err)
	}
	return &FS{
		dir:          dataDir,
		docPath:      filepath.Join(dataDir, config.DocumentFile),
		backupPath:   filepath.Join(dataDir, config.BackupFile),
		settingsPath: filepath.Join(dataDir, config.SettingsFile),
		now:          time.Now,
	}, nil
}

func (s *FS) DocumentPath() string { return s.docPath }

// LoadDocument returns the persisted document, or the first-run document
// when none exists yet.
func (s *FS) LoadDocument(ctx context.Context) (models.Document, error) {
	s.docMu.Lock()
	defer s.docMu.Unlock()
	return s.readDocument()
}

func (s *FS) UpdateDocument(ctx context.Context, fn func(*models.Document) error) error {
	s.docMu.Lock()
	defer s.docMu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		if errors.Is(err, ErrAbort) {
			return nil
		}
		return err
	}
	if err := utils.WriteJSONAtomic(s.docPath, doc); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func (s *FS) BackupDocument(ctx context.Context) error {
	s.docMu.Lock()
	defer s.docMu.Unlock()

	ok, err := utils.FileExists(s.docPath)
	if err != nil || !ok {
		return err
	}
	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	logger.Debug("store: backing up document to %s", s.backupPath)
	return utils.WriteJSONAtomic(s.backupPath, doc)
}

func (s *FS) LoadSettings(ctx context.Context) (models.SyncSettings, error) {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()
	return s.readSettings()
}

func (s *FS) UpdateSettings(ctx context.Context, fn func(*models.SyncSettings) error) error {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	st, err := s.readSettings()
	if err != nil {
		return err
	}
	if err := fn(&st); err != nil {
		if errors.Is(err, ErrAbort) {
			return nil
		}
		return err
	}
	if err := utils.WriteJSONAtomic(s.settingsPath, st); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// --- internals ---

func (s *FS) readDocument() (models.Document, error) {
	ok, err := utils.FileExists(s.docPath)
	if err != nil {
		return models.Document{}, err
	}
	if !ok {
		return models.NewDocument(s.now()), nil
	}
	var doc models.Document
	if err := utils.FileReader(s.docPath, utils.FileTypeJSON, &doc); err != nil {
		return models.Document{}, fmt.Errorf("read document: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

func (s *FS) readSettings() (models.SyncSettings, error) {
	ok, err := utils.FileExists(s.settingsPath)
	if err != nil {
		return models.SyncSettings{}, err
	}
	if !ok {
		return models.DefaultSyncSettings(), nil
	}
	st := models.DefaultSyncSettings()
	if err := utils.FileReader(s.settingsPath, utils.FileTypeJSON, &st); err != nil {
		return models.SyncSettings{}, fmt.Errorf("read settings: %w", err)
	}
	return st, nil
}
