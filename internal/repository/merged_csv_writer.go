package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/noah-isme/college-predictor-api/internal/models"
)

// Columns appended to the registry columns in the merged output.
const (
	ColumnSlug      = "SLUG"
	ColumnDoneFlag  = "DONE_FLAG"
	ColumnImagePath = "IMAGE_PATH"
	ColumnHasImage  = "HAS_IMAGE"
)

// WriteMergedCSV writes merged rows: registry columns, any extra columns seen, then the merge columns.
func WriteMergedCSV(w io.Writer, colleges []models.MergedCollege) error {
	extras := extraColumns(colleges)
	headers := make([]string, 0, len(RegistryColumns)+len(extras)+4)
	headers = append(headers, RegistryColumns...)
	headers = append(headers, extras...)
	headers = append(headers, ColumnSlug, ColumnDoneFlag, ColumnImagePath, ColumnHasImage)

	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write merged header: %w", err)
	}
	for _, c := range colleges {
		record := []string{
			c.Name,
			c.UniversityName,
			c.State,
			formatAmount(c.Seats),
			formatAmount(c.TuitionFee),
			formatAmount(c.HostelChargesPA),
			formatAmount(c.Annual),
			formatAmount(c.OneTime),
			formatAmount(c.TuitionPackage),
			formatAmount(c.GrandTotal),
			formatAmount(c.OpeningRank),
			formatAmount(c.ClosingRank),
			c.Website,
			c.Overview,
		}
		for _, column := range extras {
			record = append(record, c.Extra[column])
		}
		record = append(record, c.Slug, strconv.FormatBool(c.Done), c.ImagePath, strconv.FormatBool(c.HasImage))
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write merged row %q: %w", c.Name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func extraColumns(colleges []models.MergedCollege) []string {
	seen := make(map[string]struct{})
	for _, c := range colleges {
		for column := range c.Extra {
			seen[column] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for column := range seen {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

func formatAmount(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
