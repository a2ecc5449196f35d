package geo

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// LoadBoundaries reads a boundary feature collection from disk, choosing the
// parser by file extension: .json/.geojson for GeoJSON, .shp for ESRI
// shapefiles.
func LoadBoundaries(ctx context.Context, path string) (*geojson.FeatureCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "geo: context cancelled")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".geojson":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "geo: open boundary file")
		}
		defer f.Close() //nolint:errcheck
		return ReadFeatureCollection(f)
	case ".shp":
		return ReadShapefile(path)
	default:
		return nil, eris.Errorf("geo: unsupported boundary format %q", filepath.Ext(path))
	}
}

// ReadFeatureCollection decodes a GeoJSON feature collection.
func ReadFeatureCollection(r io.Reader) (*geojson.FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "geo: read boundary data")
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "geo: decode feature collection")
	}

	if len(fc.Features) == 0 {
		zap.L().Warn("geo: boundary collection contains no features")
	}
	return &fc, nil
}
