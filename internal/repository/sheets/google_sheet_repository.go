package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// header is the first row of the sheet; columns follow the slot field names.
var header = []interface{}{"id", "name", "category", "quantity", "unit", "dateAdded"}

// GoogleSheetRepository stores the inventory slot as rows of a spreadsheet range.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger

	mu sync.Mutex
	// rows is the number of rows last seen in the range, header included. -1 until known.
	rows int
}

// NewGoogleSheetRepository builds a Google Sheets backed slot. Extra client options are
// appended after the credentials derived from cfg.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id must not be empty")
	}
	if cfg.Range == "" {
		return nil, fmt.Errorf("sheet range must not be empty")
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if cfg.CredentialsPath != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
		logger:        logger,
		rows:          -1,
	}, nil
}

// Read fetches the range and decodes one item per row. Rows that cannot be decoded are skipped.
func (r *GoogleSheetRepository) Read(ctx context.Context) ([]models.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.StockItem, 0, len(values))
	for i, row := range values {
		if (i == 0 && isHeader(row)) || isBlank(row) {
			continue
		}
		item, err := decodeRow(row)
		if err != nil {
			r.logger.Warn("skip sheet row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Write replaces the range with the header followed by every item in a single update.
// Rows left over from a longer previous list are overwritten with blanks, so a failed
// update leaves the previous contents in place.
func (r *GoogleSheetRepository) Write(ctx context.Context, items []models.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rows < 0 {
		if _, err := r.fetch(ctx); err != nil {
			return err
		}
	}

	values := make([][]interface{}, 0, max(len(items)+1, r.rows))
	values = append(values, header)
	for _, item := range items {
		values = append(values, encodeRow(item))
	}
	written := len(values)
	for len(values) < r.rows {
		values = append(values, blankRow())
	}

	call := r.service.Spreadsheets.Values.Update(r.spreadsheetID, r.sheetRange, &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx)
	if _, err := call.Do(); err != nil {
		return fmt.Errorf("update range %s: %w", r.sheetRange, err)
	}
	r.rows = written

	r.logger.Debug("sheet slot written", zap.String("range", r.sheetRange), zap.Int("items", len(items)))
	return nil
}

// fetch reads the raw rows of the range and records their count. Callers hold r.mu.
func (r *GoogleSheetRepository) fetch(ctx context.Context) ([][]interface{}, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", r.sheetRange, err)
	}
	r.rows = len(resp.Values)
	return resp.Values, nil
}

func encodeRow(item models.StockItem) []interface{} {
	return []interface{}{
		item.ID,
		item.Name,
		item.Category,
		item.Quantity,
		item.Unit,
		item.DateAdded.UTC().Format(time.RFC3339Nano),
	}
}

func decodeRow(row []interface{}) (models.StockItem, error) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(row[i]))
	}

	item := models.StockItem{
		ID:       cell(0),
		Name:     cell(1),
		Category: cell(2),
		Unit:     cell(4),
	}
	if item.ID == "" {
		return models.StockItem{}, fmt.Errorf("missing id")
	}

	quantity, err := strconv.Atoi(cell(3))
	if err != nil {
		return models.StockItem{}, fmt.Errorf("parse quantity %q: %w", cell(3), err)
	}
	item.Quantity = quantity

	if raw := cell(5); raw != "" {
		added, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return models.StockItem{}, fmt.Errorf("parse dateAdded %q: %w", raw, err)
		}
		item.DateAdded = added.UTC()
	}
	return item, nil
}

func blankRow() []interface{} {
	row := make([]interface{}, len(header))
	for i := range row {
		row[i] = ""
	}
	return row
}

func isBlank(row []interface{}) bool {
	for _, cell := range row {
		if strings.TrimSpace(fmt.Sprint(cell)) != "" {
			return false
		}
	}
	return true
}

func isHeader(row []interface{}) bool {
	return len(row) > 0 && fmt.Sprint(row[0]) == header[0]
}
