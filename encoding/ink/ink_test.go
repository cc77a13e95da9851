package ink

import (
	"math"
	"testing"
)

func TestBoundingBox(t *testing.T) {
	strokes := []Stroke{
		{Points: []Point{{X: 10, Y: 20}, {X: 30, Y: 25}}},
		{Points: []Point{{X: 5, Y: 40}}},
	}

	box, ok := BoundingBox(strokes)
	if !ok {
		t.Fatal("expected a bounding box")
	}
	if box.MinX != 5 || box.MinY != 20 || box.MaxX != 30 || box.MaxY != 40 {
		t.Errorf("wrong box: %+v", box)
	}
	if box.Width() != 25 || box.Height() != 20 {
		t.Errorf("wrong extent: %f x %f", box.Width(), box.Height())
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	if _, ok := BoundingBox(nil); ok {
		t.Error("no strokes should give no box")
	}
	if _, ok := BoundingBox([]Stroke{{}, {}}); ok {
		t.Error("pointless strokes should give no box")
	}
}

func TestPathLength(t *testing.T) {
	strokes := []Stroke{
		{Points: []Point{{X: 0, Y: 0}, {X: 3, Y: 4}}},
		{Points: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
	}

	got := PathLength(strokes)
	if math.Abs(got-15) > 1e-9 {
		t.Errorf("path length = %f, want 15", got)
	}
}

func TestPointCount(t *testing.T) {
	strokes := []Stroke{
		{Points: []Point{{}, {}, {}}},
		{},
		{Points: []Point{{}}},
	}
	if n := PointCount(strokes); n != 4 {
		t.Errorf("point count = %d, want 4", n)
	}
}

func TestFromJSON(t *testing.T) {
	g, err := FromJSON([]byte(`[{"points":[{"x":1,"y":2},{"x":3,"y":4}],"width":2}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(g) != 1 || len(g[0].Points) != 2 {
		t.Fatalf("wrong gesture shape: %+v", g)
	}
	if g[0].Width != 2 || g[0].Points[1].X != 3 {
		t.Errorf("wrong gesture values: %+v", g)
	}

	if _, err := FromJSON([]byte(`{`)); err == nil {
		t.Error("truncated JSON should fail")
	}
}
