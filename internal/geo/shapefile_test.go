package geo

import (
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestShapeToGeomPoint(t *testing.T) {
	g := shapeToGeom(&shp.Point{X: 30.06, Y: -1.94})
	require.NotNil(t, g)

	p, ok := g.(*geom.Point)
	require.True(t, ok)
	assert.Equal(t, []float64{30.06, -1.94}, p.FlatCoords())
}

func TestShapeToGeomPolygon(t *testing.T) {
	poly := &shp.Polygon{
		NumParts: 1,
		Parts:    []int32{0},
		Points: []shp.Point{
			{X: 30.0, Y: -2.0},
			{X: 30.0, Y: -1.0},
			{X: 31.0, Y: -1.0},
			{X: 31.0, Y: -2.0},
			{X: 30.0, Y: -2.0}, // closed ring
		},
	}

	g := shapeToGeom(poly)
	require.NotNil(t, g)

	mp, ok := g.(*geom.MultiPolygon)
	require.True(t, ok)
	assert.Equal(t, 1, mp.NumPolygons())
}

func TestShapeToGeomMultiPartPolygon(t *testing.T) {
	poly := &shp.Polygon{
		NumParts: 2,
		Parts:    []int32{0, 4},
		Points: []shp.Point{
			{X: 30.0, Y: -2.0},
			{X: 30.0, Y: -1.5},
			{X: 30.5, Y: -1.5},
			{X: 30.0, Y: -2.0},
			{X: 31.0, Y: -2.0},
			{X: 31.0, Y: -1.5},
			{X: 31.5, Y: -1.5},
			{X: 31.0, Y: -2.0},
		},
	}

	g := shapeToGeom(poly)
	require.NotNil(t, g)

	mp, ok := g.(*geom.MultiPolygon)
	require.True(t, ok)
	assert.Equal(t, 2, mp.NumPolygons())
}

func TestShapeToGeomPolyLine(t *testing.T) {
	pl := &shp.PolyLine{
		NumParts: 1,
		Parts:    []int32{0},
		Points: []shp.Point{
			{X: 30.0, Y: -2.0},
			{X: 30.1, Y: -1.9},
			{X: 30.2, Y: -1.8},
		},
	}

	g := shapeToGeom(pl)
	require.NotNil(t, g)

	mls, ok := g.(*geom.MultiLineString)
	require.True(t, ok)
	assert.Equal(t, 1, mls.NumLineStrings())
}

func TestShapeToGeomNilAndEmpty(t *testing.T) {
	assert.Nil(t, shapeToGeom(nil))
	assert.Nil(t, shapeToGeom(&shp.Polygon{}))
	assert.Nil(t, shapeToGeom(&shp.PolyLine{}))
}
