package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/college-predictor-api/pkg/errors"
)

const testRegistry = `College,University Name,State,Tuition Fee,Grand Total,Opening Rank 2023,Closing Rank 2023
"Alpha College, Pune",Alpha University,Maharashtra,"12,50,000","25,00,000",1000,45000
Beta College,Beta University,Kerala,"25,00,000","35,00,000",500,30000
`

const testStatuses = `College List,Check
"Alpha College, Pune",Done
Beta College,done
`

type fixturePaths struct {
	colleges string
	status   string
	images   string
	dir      string
}

func writeFixtures(t *testing.T) fixturePaths {
	t.Helper()
	dir := t.TempDir()
	paths := fixturePaths{
		colleges: filepath.Join(dir, "colleges.csv"),
		status:   filepath.Join(dir, "status.csv"),
		images:   filepath.Join(dir, "images"),
		dir:      dir,
	}
	require.NoError(t, os.WriteFile(paths.colleges, []byte(testRegistry), 0o644))
	require.NoError(t, os.WriteFile(paths.status, []byte(testStatuses), 0o644))
	require.NoError(t, os.MkdirAll(paths.images, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(paths.images, "alpha_college_pune.jpg"), []byte("jpg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(paths.images, "stray.png"), []byte("png"), 0o644))
	return paths
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMergeCommandWritesDatasetAndReport(t *testing.T) {
	paths := writeFixtures(t)
	merged := filepath.Join(paths.dir, "merged.csv")

	out, err := runCLI(t, "merge",
		"--colleges", paths.colleges,
		"--status", paths.status,
		"--images", paths.images,
		"--out", merged,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Marked done but image missing")
	assert.Contains(t, out, "beta_college")
	assert.Contains(t, out, "Images matching no college")
	assert.Contains(t, out, "stray")
	assert.Contains(t, out, "Colleges: 2  Mismatches: 1  Orphans: 1")

	raw, err := os.ReadFile(merged)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "images/alpha_college_pune.jpg")
	assert.Contains(t, string(raw), "SLUG,DONE_FLAG,IMAGE_PATH,HAS_IMAGE")
}

func TestMergeCommandFailsOnMissingRegistry(t *testing.T) {
	paths := writeFixtures(t)

	_, err := runCLI(t, "merge",
		"--colleges", filepath.Join(paths.dir, "missing.csv"),
		"--status", paths.status,
		"--images", paths.images,
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInputData))
}

func TestSearchCommandPrintsQualifyingColleges(t *testing.T) {
	paths := writeFixtures(t)

	out, err := runCLI(t, "search",
		"--colleges", paths.colleges,
		"--status", paths.status,
		"--images", paths.images,
		"--rank", "40000",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Alpha College")
	assert.Contains(t, out, "Within budget")
	assert.NotContains(t, out, "Beta College")
	assert.Contains(t, out, "you qualify for 1 colleges.")
}

func TestSearchCommandFiltersByState(t *testing.T) {
	paths := writeFixtures(t)

	out, err := runCLI(t, "search",
		"--colleges", paths.colleges,
		"--status", paths.status,
		"--images", paths.images,
		"--rank", "100",
		"--tuition-budget", "1000000",
		"--state", "Kerala",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Beta College")
	assert.Contains(t, out, "Budget Exceeding")
	assert.NotContains(t, out, "Alpha College")
	assert.Contains(t, out, "you qualify for 1 colleges in Kerala.")
}

func TestSearchCommandRequiresRank(t *testing.T) {
	_, err := runCLI(t, "search")
	require.Error(t, err)
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Name", "Count"}, [][]string{{"only"}}, []columnAlignment{alignLeft, alignRight})
	assert.Contains(t, out, "Name")
	assert.NotContains(t, out, "NAME")
	assert.Contains(t, out, "only")
	assert.Empty(t, renderTable(nil, nil, nil))
}

func TestCommandLoggerOmitsStacktraces(t *testing.T) {
	ctx := &commandContext{}
	cfg, err := ctx.ensureConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Log.DisableStacktrace)
	assert.Equal(t, "warn", cfg.Log.Level)
}
