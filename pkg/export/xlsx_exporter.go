package export

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	fillLightGreen = "C6EFCE"
	fillDarkGreen  = "006100"
	fillAltRow     = "F2F2F2"
	fillRed        = "FFC7CE"
	maxSheetName   = 31
)

// SheetOptions controls workbook styling.
type SheetOptions struct {
	SheetName string
	// LightHeaderThrough is the last header painted light green; later headers are dark green.
	LightHeaderThrough string
	// StatusColumn is painted red when its value equals StatusAlert, green otherwise.
	StatusColumn string
	StatusAlert  string
	// CurrencyColumns get a rupee number format.
	CurrencyColumns []string
	CurrencyFormat  string
}

// XLSXExporter renders datasets into a styled single-sheet workbook.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

type cellStyleKey struct {
	fill   string
	numFmt string
}

// Render writes the dataset to an in-memory workbook.
func (e *XLSXExporter) Render(data Dataset, opts SheetOptions) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	sheet := SanitizeSheetName(opts.SheetName)
	if opts.CurrencyFormat == "" {
		opts.CurrencyFormat = "₹#,##0"
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	lightThrough := indexOf(data.Headers, opts.LightHeaderThrough)
	statusCol := indexOf(data.Headers, opts.StatusColumn)
	currency := make(map[int]bool, len(opts.CurrencyColumns))
	for _, column := range opts.CurrencyColumns {
		if i := indexOf(data.Headers, column); i >= 0 {
			currency[i] = true
		}
	}

	widths := make([]int, len(data.Headers))
	lightHeader, err := f.NewStyle(headerStyle(fillLightGreen, "000000"))
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	darkHeader, err := f.NewStyle(headerStyle(fillDarkGreen, "FFFFFF"))
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	for i, header := range data.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header %s: %w", header, err)
		}
		style := lightHeader
		if lightThrough >= 0 && i > lightThrough {
			style = darkHeader
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return nil, fmt.Errorf("style header %s: %w", header, err)
		}
		widths[i] = utf8.RuneCountInString(header)
	}

	styles := make(map[cellStyleKey]int)
	styleFor := func(key cellStyleKey) (int, error) {
		if id, ok := styles[key]; ok {
			return id, nil
		}
		style := &excelize.Style{}
		if key.fill != "" {
			style.Fill = excelize.Fill{Type: "pattern", Color: []string{key.fill}, Pattern: 1}
		}
		if key.numFmt != "" {
			numFmt := key.numFmt
			style.CustomNumFmt = &numFmt
		}
		id, err := f.NewStyle(style)
		if err != nil {
			return 0, err
		}
		styles[key] = id
		return id, nil
	}

	for r, row := range data.Rows {
		excelRow := r + 2
		for c, header := range data.Headers {
			cell, _ := excelize.CoordinatesToCellName(c+1, excelRow)
			value := row[header]
			if ptr, ok := value.(*int64); ok {
				if ptr == nil {
					value = nil
				} else {
					value = *ptr
				}
			}
			if value != nil {
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, fmt.Errorf("write %s: %w", cell, err)
				}
			}
			text := cellText(value)
			if n := utf8.RuneCountInString(text); n > widths[c] {
				widths[c] = n
			}

			key := cellStyleKey{}
			if excelRow%2 == 0 {
				key.fill = fillAltRow
			}
			if c == statusCol {
				key.fill = fillLightGreen
				if text == opts.StatusAlert {
					key.fill = fillRed
				}
			}
			if currency[c] {
				key.numFmt = opts.CurrencyFormat
			}
			if key == (cellStyleKey{}) {
				continue
			}
			id, err := styleFor(key)
			if err != nil {
				return nil, fmt.Errorf("cell style: %w", err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
				return nil, fmt.Errorf("style %s: %w", cell, err)
			}
		}
	}

	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, float64(width+2)); err != nil {
			return nil, fmt.Errorf("width %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func headerStyle(fill, fontColor string) *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: fontColor},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}
}

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

// SanitizeSheetName makes a client-supplied name acceptable to Excel.
func SanitizeSheetName(name string) string {
	cleaned := strings.TrimSpace(sheetNameReplacer.Replace(name))
	cleaned = strings.Trim(cleaned, "'")
	if cleaned == "" {
		return "Sheet1"
	}
	runes := []rune(cleaned)
	if len(runes) > maxSheetName {
		cleaned = strings.TrimSpace(string(runes[:maxSheetName]))
	}
	return cleaned
}

func indexOf(values []string, target string) int {
	if target == "" {
		return -1
	}
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
