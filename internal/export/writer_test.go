package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom/encoding/geojson"
)

func testArtifacts() Artifacts {
	return Artifacts{
		Analytics: []DistrictAnalytics{{District: "Gasabo", Province: "Kigali City"}},
		Hotspots: TopHotspots{
			ByRisk:     []RiskRanking{{District: "Gasabo"}},
			ByStunting: []StuntingRanking{{District: "Gasabo"}},
		},
		Provinces: []ProvinceSummary{{Province: "Kigali City"}},
		Briefs:    []PolicyBrief{{Province: "Kigali City", Summary: "ok"}},
		Geometry:  &geojson.FeatureCollection{},
		Report:    "REPORT BODY\n",
	}
}

func TestWriteAllArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	err := Write(dir, testArtifacts())
	require.NoError(t, err)

	for _, name := range []string{
		AnalyticsFile, HotspotsFile, ProvincesFile, BriefsFile, GeometryFile, ReportFile,
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	// JSON artifacts round-trip.
	data, err := os.ReadFile(filepath.Join(dir, AnalyticsFile))
	require.NoError(t, err)
	var analytics []DistrictAnalytics
	require.NoError(t, json.Unmarshal(data, &analytics))
	require.Len(t, analytics, 1)
	assert.Equal(t, "Gasabo", analytics[0].District)

	report, err := os.ReadFile(filepath.Join(dir, ReportFile))
	require.NoError(t, err)
	assert.Equal(t, "REPORT BODY\n", string(report))
}

func TestWriteCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep", "out")

	err := Write(dir, testArtifacts())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, AnalyticsFile))
	assert.NoError(t, err)
}

func TestWriteLeavesNoStagingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	err := Write(dir, testArtifacts())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}

func TestWriteOverwritesPreviousRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, Write(dir, testArtifacts()))

	a := testArtifacts()
	a.Report = "SECOND RUN\n"
	require.NoError(t, Write(dir, a))

	report, err := os.ReadFile(filepath.Join(dir, ReportFile))
	require.NoError(t, err)
	assert.Equal(t, "SECOND RUN\n", string(report))
}

func TestWriteJSONFieldNames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, Write(dir, testArtifacts()))

	data, err := os.ReadFile(filepath.Join(dir, HotspotsFile))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "by_risk")
	assert.Contains(t, raw, "by_stunting")
}
