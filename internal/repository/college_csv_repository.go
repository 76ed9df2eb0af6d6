package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/noah-isme/college-predictor-api/internal/models"
)

// Registry column names after header normalisation.
const (
	ColumnCollege         = "COLLEGE"
	ColumnUniversityName  = "UNIVERSITY_NAME"
	ColumnState           = "STATE"
	ColumnSeats           = "SEATS"
	ColumnTuitionFee      = "TUITION_FEE"
	ColumnHostelChargesPA = "HOSTEL_CHARGES_PA"
	ColumnAnnual          = "ANNUAL"
	ColumnOneTime         = "ONE_TIME"
	ColumnTuitionPackage  = "TUITION_PACKAGE"
	ColumnGrandTotal      = "GRAND_TOTAL"
	ColumnOpeningRank     = "OPENING_RANK_2023"
	ColumnClosingRank     = "CLOSING_RANK_2023"
	ColumnWebsite         = "WEBSITE"
	ColumnOverview        = "OVERVIEW"
)

// RegistryColumns lists the mapped registry columns in sheet order.
var RegistryColumns = []string{
	ColumnCollege, ColumnUniversityName, ColumnState, ColumnSeats, ColumnTuitionFee,
	ColumnHostelChargesPA, ColumnAnnual, ColumnOneTime, ColumnTuitionPackage, ColumnGrandTotal,
	ColumnOpeningRank, ColumnClosingRank, ColumnWebsite, ColumnOverview,
}

var knownColumns = func() map[string]struct{} {
	known := make(map[string]struct{}, len(RegistryColumns))
	for _, column := range RegistryColumns {
		known[column] = struct{}{}
	}
	return known
}()

var headerRenames = map[string]string{
	"UNIVESITY_NAME":      ColumnUniversityName,
	"HOSTEL_CHARGES_P.A.": ColumnHostelChargesPA,
}

var (
	lineBreaks  = regexp.MustCompile(`[\r\n]+`)
	whitespace  = regexp.MustCompile(`\s+`)
	amountNoise = strings.NewReplacer("₹", "", ",", "")
)

// NormalizeHeader turns a spreadsheet header such as "Tuition\r\nFee " into TUITION_FEE.
func NormalizeHeader(raw string) string {
	h := strings.TrimPrefix(raw, "\ufeff")
	h = strings.ReplaceAll(h, `"`, "")
	h = lineBreaks.ReplaceAllString(h, " ")
	h = strings.TrimSpace(h)
	h = whitespace.ReplaceAllString(h, "_")
	h = strings.ToUpper(h)
	if renamed, ok := headerRenames[h]; ok {
		return renamed
	}
	return h
}

// ParseAmount reads currency, seat and rank cells like "₹ 12,50,000". Blank or
// unparseable cells are nil; fractional values are truncated and values
// beyond the int64 range saturate.
func ParseAmount(raw string) *int64 {
	cleaned := strings.TrimSpace(amountNoise.Replace(raw))
	if cleaned == "" {
		return nil
	}
	if v, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return &v
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	var v int64
	switch {
	case f >= math.MaxInt64:
		v = math.MaxInt64
	case f <= math.MinInt64:
		v = math.MinInt64
	default:
		v = int64(f)
	}
	return &v
}

// CollegeCSVRepository reads the college registry from a CSV export.
type CollegeCSVRepository struct {
	path string
}

// NewCollegeCSVRepository constructs a CollegeCSVRepository.
func NewCollegeCSVRepository(path string) *CollegeCSVRepository {
	return &CollegeCSVRepository{path: path}
}

// Load parses every registry row. A missing file or COLLEGE column is an error.
func (r *CollegeCSVRepository) Load(ctx context.Context) ([]models.College, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open college registry: %w", err)
	}
	defer file.Close() //nolint:errcheck
	return ParseColleges(ctx, file)
}

// ParseColleges decodes a registry CSV stream.
func ParseColleges(ctx context.Context, src io.Reader) ([]models.College, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rawHeaders, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read registry header: %w", err)
	}
	headers := make([]string, len(rawHeaders))
	index := make(map[string]int, len(rawHeaders))
	for i, raw := range rawHeaders {
		headers[i] = NormalizeHeader(raw)
		if _, dup := index[headers[i]]; !dup {
			index[headers[i]] = i
		}
	}
	if _, ok := index[ColumnCollege]; !ok {
		return nil, fmt.Errorf("registry missing %s column", ColumnCollege)
	}

	colleges := make([]models.College, 0)
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read registry line %d: %w", line, err)
		}
		colleges = append(colleges, collegeFromRecord(headers, index, record))
	}
	return colleges, nil
}

func collegeFromRecord(headers []string, index map[string]int, record []string) models.College {
	cell := func(column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	college := models.College{
		Name:            cell(ColumnCollege),
		UniversityName:  cell(ColumnUniversityName),
		State:           cell(ColumnState),
		Seats:           ParseAmount(cell(ColumnSeats)),
		TuitionFee:      ParseAmount(cell(ColumnTuitionFee)),
		HostelChargesPA: ParseAmount(cell(ColumnHostelChargesPA)),
		Annual:          ParseAmount(cell(ColumnAnnual)),
		OneTime:         ParseAmount(cell(ColumnOneTime)),
		TuitionPackage:  ParseAmount(cell(ColumnTuitionPackage)),
		GrandTotal:      ParseAmount(cell(ColumnGrandTotal)),
		OpeningRank:     ParseAmount(cell(ColumnOpeningRank)),
		ClosingRank:     ParseAmount(cell(ColumnClosingRank)),
		Website:         cell(ColumnWebsite),
		Overview:        cell(ColumnOverview),
	}

	for i, header := range headers {
		if _, ok := knownColumns[header]; ok || header == "" || i >= len(record) {
			continue
		}
		if college.Extra == nil {
			college.Extra = make(map[string]string)
		}
		college.Extra[header] = record[i]
	}
	return college
}
