package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-predictor-api/internal/models"
)

func TestResolveDuplicatesPrefersDone(t *testing.T) {
	statuses := []models.ImageStatus{
		{SourceName: "Alpha Medical College", Status: "pending"},
		{SourceName: "ALPHA medical college.", Status: "Done"},
		{SourceName: "Alpha Medical College", Status: "done"},
		{SourceName: "Beta College", Status: "pending"},
		{SourceName: "Beta  College", Status: "missing"},
	}

	resolved := ResolveDuplicates(statuses)
	require.Len(t, resolved, 2)

	alpha := resolved["alpha_medical_college"]
	assert.True(t, alpha.Done())
	assert.Equal(t, "ALPHA medical college.", alpha.SourceName, "first done row in input order wins")

	beta := resolved["beta_college"]
	assert.False(t, beta.Done())
	assert.Equal(t, "pending", beta.Status, "first row wins when none is done")
}

func TestResolveDuplicatesStatusIsExactWord(t *testing.T) {
	resolved := ResolveDuplicates([]models.ImageStatus{{SourceName: "Gamma", Status: "done "}})
	assert.False(t, resolved["gamma"].Done())
}

func TestMergeLeftJoin(t *testing.T) {
	colleges := []models.College{
		{Name: "Alpha Medical College, Pune"},
		{Name: "Beta College"},
		{Name: "Gamma Institute"},
	}
	resolved := ResolveDuplicates([]models.ImageStatus{
		{SourceName: "Alpha Medical College Pune", Status: "done"},
		{SourceName: "Beta College", Status: "DONE"},
	})
	keys := KeysFromStems([]string{"alpha_medical_college_pune", "gamma_institute", "stray_photo"})

	result := Merge(colleges, resolved, keys)
	require.Len(t, result.Colleges, 3)

	alpha := result.Colleges[0]
	assert.Equal(t, "alpha_medical_college_pune", alpha.Slug)
	assert.True(t, alpha.Done)
	assert.Equal(t, "images/alpha_medical_college_pune.jpg", alpha.ImagePath)
	assert.True(t, alpha.HasImage)

	beta := result.Colleges[1]
	assert.True(t, beta.Done)
	assert.Empty(t, beta.ImagePath)
	assert.False(t, beta.HasImage)

	gamma := result.Colleges[2]
	assert.False(t, gamma.Done, "no status row means not done")
	assert.Empty(t, gamma.ImagePath, "file on disk is ignored without a done status")

	assert.Equal(t, []models.ReportEntry{{Name: "Beta College", Slug: "beta_college"}}, result.Report.Mismatches)
	assert.Equal(t, []models.ReportEntry{{Slug: "stray_photo"}}, result.Report.Orphans)
}

func TestMergeOrphanListedOnce(t *testing.T) {
	result := Merge(nil, nil, KeysFromStems([]string{"lonely", "lonely", "also_lonely"}))
	assert.Empty(t, result.Colleges)
	assert.Empty(t, result.Report.Mismatches)
	assert.Equal(t, []models.ReportEntry{{Slug: "also_lonely"}, {Slug: "lonely"}}, result.Report.Orphans)
}

func TestMergeToleratesNilInputs(t *testing.T) {
	result := Merge([]models.College{{Name: "Delta"}}, nil, nil)
	require.Len(t, result.Colleges, 1)
	assert.False(t, result.Colleges[0].Done)
	assert.NotNil(t, result.Report.Orphans)
	assert.NotNil(t, result.Report.Mismatches)
}
