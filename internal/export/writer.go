package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// Artifact file names, fixed so the presentation layer can fetch them.
const (
	AnalyticsFile = "district_analytics.json"
	HotspotsFile  = "top_hotspots.json"
	ProvincesFile = "province_summary.json"
	BriefsFile    = "policy_briefs.json"
	GeometryFile  = "rwanda_districts.json"
	ReportFile    = "district_malnutrition_report.txt"
)

// Artifacts bundles everything one run emits.
type Artifacts struct {
	Analytics []DistrictAnalytics
	Hotspots  TopHotspots
	Provinces []ProvinceSummary
	Briefs    []PolicyBrief
	Geometry  *geojson.FeatureCollection
	Report    string
}

// Write serializes every artifact into dir. Files are staged in a temporary
// directory and only moved into place once all of them serialized, so a
// failed run never leaves partial output behind.
func Write(dir string, a Artifacts) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrap(err, "export: create output dir")
	}

	stage, err := os.MkdirTemp(dir, ".stage-")
	if err != nil {
		return eris.Wrap(err, "export: create staging dir")
	}
	defer os.RemoveAll(stage) //nolint:errcheck

	files := []struct {
		name string
		v    interface{}
	}{
		{AnalyticsFile, a.Analytics},
		{HotspotsFile, a.Hotspots},
		{ProvincesFile, a.Provinces},
		{BriefsFile, a.Briefs},
		{GeometryFile, a.Geometry},
	}
	for _, f := range files {
		if err := writeJSON(filepath.Join(stage, f.name), f.v); err != nil {
			return err
		}
	}
	if err := os.WriteFile(filepath.Join(stage, ReportFile), []byte(a.Report), 0o644); err != nil {
		return eris.Wrap(err, "export: write report")
	}

	names := []string{AnalyticsFile, HotspotsFile, ProvincesFile, BriefsFile, GeometryFile, ReportFile}
	for _, name := range names {
		if err := os.Rename(filepath.Join(stage, name), filepath.Join(dir, name)); err != nil {
			return eris.Wrapf(err, "export: move %s into place", name)
		}
	}

	zap.L().Info("export: artifacts written",
		zap.String("dir", dir),
		zap.Int("files", len(names)),
	)
	return nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "export: marshal %s", filepath.Base(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", filepath.Base(path))
	}
	return nil
}
