package commands

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octronic/dreamtool/internal/cli/testutil"
	"github.com/octronic/dreamtool/internal/project"
)

func TestCalculateHealthScore(t *testing.T) {
	tests := []struct {
		name   string
		checks []HealthCheck
		want   int
	}{
		{name: "no checks returns 100", want: 100},
		{
			name: "all passing returns 100",
			checks: []HealthCheck{
				{RuleID: "DP01", Status: statusPass},
				{RuleID: "DP02", Status: statusPass},
			},
			want: 100,
		},
		{
			name:   "warnings reduce score",
			checks: []HealthCheck{{RuleID: "DP02", Status: statusWarn, IssueCount: 2}},
			want:   90,
		},
		{
			name:   "errors reduce score more",
			checks: []HealthCheck{{RuleID: "DP01", Status: statusError, IssueCount: 1}},
			want:   80,
		},
		{
			name: "clamped at zero",
			checks: []HealthCheck{
				{RuleID: "DP01", Status: statusError, IssueCount: 3},
				{RuleID: "DE01", Status: statusError, IssueCount: 3},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateHealthScore(tt.checks))
		})
	}
}

func TestGetRecommendation(t *testing.T) {
	for _, id := range []string{"DC01", "DP01", "DP02", "DP03", "DE01", "DE02", "DE03", "DE04"} {
		assert.NotEmpty(t, getRecommendation(id), id)
	}
	assert.Empty(t, getRecommendation("UNKNOWN"))
}

func TestGenerateRecommendations(t *testing.T) {
	recs := generateRecommendations([]HealthCheck{
		{RuleID: "DP01", Status: statusPass},
		{RuleID: "DP02", Status: statusWarn, IssueCount: 1},
		{RuleID: "XX99", Status: statusWarn, IssueCount: 1},
	})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "uuid")
}

func TestDuplicateIdentifiers(t *testing.T) {
	issues := duplicateIdentifiers(project.Snapshot{
		Scenes: []project.Item{
			{Identifier: "a", Name: "First"},
			{Identifier: "a", Name: "Second"},
		},
		Resources: []project.Item{
			{Identifier: "a", Name: "Fine"},
		},
	})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], `"First"`)
	assert.Contains(t, issues[0], "only the first is reachable")
}

func TestUnnamedItems(t *testing.T) {
	issues := unnamedItems(project.Snapshot{
		Scenes:    []project.Item{{Identifier: "s", Name: " "}},
		Resources: []project.Item{{Identifier: "r", Name: "ok"}},
	})
	assert.Equal(t, []string{"scene s has no name"}, issues)
}

func TestDoctor_Markdown(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, err := execute(t, dir, NewDoctorCommand())
	require.NoError(t, err)

	assert.Contains(t, out, "# dreamtool health report")
	assert.Contains(t, out, "- **Scenes:** 2")
	assert.Contains(t, out, "- **[WARN]** DC01: Configuration file")
	assert.Contains(t, out, "- **[PASS]** DP01: Project file readable")
	assert.Contains(t, out, "- **[PASS]** DE01: Preferences store")
	assert.Contains(t, out, "## Health Score")
	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
}

func TestDoctor_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	exe, err := os.Executable()
	require.NoError(t, err)
	testutil.WriteConfig(t, dir, "output: json\ntool_path: "+exe+"\n")

	out, err := execute(t, dir, NewDoctorCommand())
	require.NoError(t, err)

	var report DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Demo", report.Summary.Name)
	assert.Equal(t, 1, report.Summary.Resources)

	statuses := make(map[string]string)
	for _, c := range report.HealthChecks {
		statuses[c.RuleID] = c.Status
	}
	assert.Equal(t, statusPass, statuses["DC01"])
	assert.Equal(t, statusPass, statuses["DP02"])
	assert.Equal(t, statusPass, statuses["DE02"])
	assert.Equal(t, statusPass, statuses["DE03"])
}

func TestDoctor_MissingProject(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteConfig(t, dir, "output: json\n")

	out, err := execute(t, dir, NewDoctorCommand())
	require.NoError(t, err)

	var report DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotEmpty(t, report.HealthChecks)
	var found bool
	for _, c := range report.HealthChecks {
		if c.RuleID == "DP01" {
			found = true
			assert.Equal(t, statusError, c.Status)
		}
	}
	assert.True(t, found)
	assert.LessOrEqual(t, report.Score, 80)
}
