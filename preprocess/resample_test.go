package preprocess

import (
	"math"
	"testing"

	"github.com/jotspot/inktex/encoding/ink"
)

func TestResampleUniformSpacing(t *testing.T) {
	// a long diagonal line, unevenly sampled
	points := []ink.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 1},
		{X: 20, Y: 20},
		{X: 21, Y: 21},
		{X: 60, Y: 60},
	}

	out := Resample(points, 3)

	if out[0] != points[0] {
		t.Errorf("first point moved: %+v", out[0])
	}
	if out[len(out)-1] != points[len(points)-1] {
		t.Errorf("last point moved: %+v", out[len(out)-1])
	}

	for i := 1; i < len(out)-1; i++ {
		d := ink.Dist(out[i-1], out[i])
		if math.Abs(d-3) > 1e-6 {
			t.Errorf("segment %d spacing = %f, want 3", i, d)
		}
	}
	// the closing segment only has to stay within the interval
	if d := ink.Dist(out[len(out)-2], out[len(out)-1]); d > 3+1e-6 {
		t.Errorf("final segment spacing = %f, want <= 3", d)
	}
}

func TestResampleShortInputs(t *testing.T) {
	if got := Resample(nil, 3); len(got) != 0 {
		t.Errorf("nil input gave %d points", len(got))
	}

	one := []ink.Point{{X: 4, Y: 2}}
	got := Resample(one, 3)
	if len(got) != 1 || got[0] != one[0] {
		t.Errorf("single point changed: %+v", got)
	}
}

func TestResampleDefaultsInterval(t *testing.T) {
	points := []ink.Point{{X: 0, Y: 0}, {X: 30, Y: 0}}

	out := Resample(points, 0)
	if len(out) < 2 {
		t.Fatalf("too few points: %d", len(out))
	}
	if d := ink.Dist(out[0], out[1]); math.Abs(d-DefaultResampleInterval) > 1e-6 {
		t.Errorf("spacing = %f, want default %f", d, DefaultResampleInterval)
	}
}

func TestResampleHandlesDuplicatePoints(t *testing.T) {
	points := []ink.Point{
		{X: 0, Y: 0},
		{X: 0, Y: 0},
		{X: 0, Y: 0},
		{X: 9, Y: 0},
	}

	out := Resample(points, 3)
	if out[0] != points[0] || out[len(out)-1] != points[3] {
		t.Errorf("endpoints not kept: %+v", out)
	}
	for i := 1; i < len(out); i++ {
		if d := ink.Dist(out[i-1], out[i]); d > 3+1e-6 {
			t.Errorf("segment %d spacing = %f", i, d)
		}
	}
}

func TestNormalizeKeepsWidth(t *testing.T) {
	strokes := []ink.Stroke{
		{Width: 4, Points: []ink.Point{{X: 0, Y: 0}, {X: 12, Y: 0}}},
	}

	out := Normalize(strokes)
	if out[0].Width != 4 {
		t.Errorf("width = %f, want 4", out[0].Width)
	}
	if len(out[0].Points) < 4 {
		t.Errorf("expected resampled points, got %d", len(out[0].Points))
	}
}
