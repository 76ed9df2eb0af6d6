package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/college-predictor-api/internal/models"
)

// Image status sheet headers, matched case-insensitively.
const (
	StatusColumnName  = "college list"
	StatusColumnCheck = "check"
)

// ImageStatusRepository reads the image-submission tracker kept by the content team.
// Workbooks (.xlsx/.xlsm) are read from their first sheet; anything else is parsed as CSV.
type ImageStatusRepository struct {
	path string
}

// NewImageStatusRepository constructs an ImageStatusRepository.
func NewImageStatusRepository(path string) *ImageStatusRepository {
	return &ImageStatusRepository{path: path}
}

// Load returns every status row in sheet order, duplicates included.
func (r *ImageStatusRepository) Load(ctx context.Context) ([]models.ImageStatus, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbookRows(r.path)
	default:
		rows, err = readCSVRows(r.path)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ParseImageStatuses(rows)
}

// ParseImageStatuses maps raw sheet rows, header first, to status records.
func ParseImageStatuses(rows [][]string) ([]models.ImageStatus, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("image status sheet is empty")
	}
	nameIdx, checkIdx := -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case StatusColumnName:
			if nameIdx < 0 {
				nameIdx = i
			}
		case StatusColumnCheck:
			if checkIdx < 0 {
				checkIdx = i
			}
		}
	}
	if nameIdx < 0 || checkIdx < 0 {
		return nil, fmt.Errorf("image status sheet needs %q and %q columns", StatusColumnName, StatusColumnCheck)
	}

	statuses := make([]models.ImageStatus, 0, len(rows)-1)
	for _, row := range rows[1:] {
		statuses = append(statuses, models.ImageStatus{
			SourceName: cellAt(row, nameIdx),
			Status:     cellAt(row, checkIdx),
		})
	}
	return statuses, nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func readWorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open image status workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("image status workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read image status sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image status csv: %w", err)
	}
	defer file.Close() //nolint:errcheck

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows := make([][]string, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read image status csv: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
