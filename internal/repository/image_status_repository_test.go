package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseImageStatuses(t *testing.T) {
	rows := [][]string{
		{"S.No", " College List ", "CHECK"},
		{"1", "Alpha Medical College", "done"},
		{"2", "Beta College"},
	}
	statuses, err := ParseImageStatuses(rows)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "Alpha Medical College", statuses[0].SourceName)
	assert.True(t, statuses[0].Done())
	assert.Equal(t, "", statuses[1].Status)
}

func TestParseImageStatusesMissingColumns(t *testing.T) {
	_, err := ParseImageStatuses([][]string{{"college list", "status"}})
	require.Error(t, err)

	_, err = ParseImageStatuses(nil)
	require.Error(t, err)
}

func TestImageStatusRepositoryLoadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image_status.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"college list", "check"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Alpha Medical College", "Done"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Alpha Medical College", "pending"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	statuses, err := NewImageStatusRepository(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].Done())
	assert.False(t, statuses[1].Done())
}

func TestImageStatusRepositoryLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image_status.csv")
	require.NoError(t, os.WriteFile(path, []byte("college list,check\nBeta College,DONE\n"), 0o644))

	statuses, err := NewImageStatusRepository(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Done())
}

func TestImageStatusRepositoryMissingFile(t *testing.T) {
	_, err := NewImageStatusRepository(filepath.Join(t.TempDir(), "nope.xlsx")).Load(context.Background())
	require.Error(t, err)
}
