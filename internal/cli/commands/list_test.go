package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octronic/dreamtool/internal/cli/testutil"
)

func TestList_Markdown(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, err := execute(t, dir, NewListCommand())
	require.NoError(t, err)

	assert.Contains(t, out, "# Demo (2 scenes, 1 resources)")
	assert.Contains(t, out, "| Kind | # | Name | ID |")
	assert.Contains(t, out, "| scene | 1 | Intro | scene-1 |")
	assert.Contains(t, out, "| resource | 1 | Logo | res-1 |")
	testutil.AssertNoANSI(t, out)
}

func TestList_FilterJSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.WriteConfig(t, dir, "output: json\n")

	out, err := execute(t, dir, NewListCommand(), "scenes")
	require.NoError(t, err)

	var got ListOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Demo", got.Project)
	assert.Equal(t, 1, got.Resources)
	require.Len(t, got.Items, 2)
	assert.Equal(t, ListItem{Kind: "scene", Position: 2, Name: "Credits", Identifier: "scene-2"}, got.Items[1])
}

func TestList_UnknownTarget(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	_, err := execute(t, dir, NewListCommand(), "models")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown list target")
}
