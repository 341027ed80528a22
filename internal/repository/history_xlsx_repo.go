package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"chat-gateway/internal/models"
)

const (
	historySheet = "History"
	dateLayout   = "02/01/2006"
	timeLayout   = "15:04:05"
)

var historyColumns = []interface{}{"id", "user_message", "bot_message", "date", "time"}

// XLSXHistoryRepo keeps the chat history in a single spreadsheet. Every
// append rewrites the workbook, so writes are serialized and the file is
// replaced atomically.
type XLSXHistoryRepo struct {
	mu   sync.Mutex
	path string
}

func NewXLSXHistoryRepo(path string) *XLSXHistoryRepo {
	return &XLSXHistoryRepo{path: path}
}

func (r *XLSXHistoryRepo) Record(ctx context.Context, entry models.HistoryEntry) (models.RecordID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := r.open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	rows, err := f.GetRows(historySheet)
	if err != nil {
		return "", fmt.Errorf("failed to read history rows: %w", err)
	}

	nextID := 1
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if n, err := strconv.Atoi(row[0]); err == nil && n >= nextID {
			nextID = n + 1
		}
	}

	// Row numbers are 1-based and row 1 holds the header
	rowNum := len(rows) + 1
	if rowNum < 2 {
		rowNum = 2
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return "", err
	}

	values := []interface{}{
		nextID,
		entry.UserMessage,
		entry.BotMessage,
		entry.CreatedAt.Format(dateLayout),
		entry.CreatedAt.Format(timeLayout),
	}
	if err := f.SetSheetRow(historySheet, cell, &values); err != nil {
		return "", fmt.Errorf("failed to append history row: %w", err)
	}

	if err := r.save(f); err != nil {
		return "", err
	}

	return models.RecordID(strconv.Itoa(nextID)), nil
}

// open loads the workbook or creates a new one with the header row.
func (r *XLSXHistoryRepo) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return newHistoryWorkbook()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}

	idx, err := f.GetSheetIndex(historySheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	if idx == -1 {
		if _, err := f.NewSheet(historySheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create history sheet: %w", err)
		}
		if err := f.SetSheetRow(historySheet, "A1", &historyColumns); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func newHistoryWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create history sheet: %w", err)
	}
	if err := f.SetSheetRow(historySheet, "A1", &historyColumns); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write history header: %w", err)
	}
	return f, nil
}

func (r *XLSXHistoryRepo) save(f *excelize.File) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
