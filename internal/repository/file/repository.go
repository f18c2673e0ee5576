package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Repository stores the inventory slot as a JSON array in a single file.
type Repository struct {
	path   string
	logger *zap.Logger
}

// NewRepository builds a file-backed slot. The file is created on the first write.
func NewRepository(path string, logger *zap.Logger) (*Repository, error) {
	if path == "" {
		return nil, errors.New("storage file path must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{path: path, logger: logger}, nil
}

// Read decodes the file. A missing or empty file is an empty slot.
func (r *Repository) Read(ctx context.Context) ([]models.StockItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.StockItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", r.path, err)
	}
	if len(data) == 0 {
		return []models.StockItem{}, nil
	}

	var items []models.StockItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", r.path, err)
	}
	if items == nil {
		items = []models.StockItem{}
	}
	return items, nil
}

// Write replaces the file contents through a temp file and rename, so readers see
// either the old list or the new one.
func (r *Repository) Write(ctx context.Context, items []models.StockItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []models.StockItem{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode slot: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create slot dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp slot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp slot: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace slot %s: %w", r.path, err)
	}

	r.logger.Debug("slot written", zap.String("path", r.path), zap.Int("items", len(items)))
	return nil
}
