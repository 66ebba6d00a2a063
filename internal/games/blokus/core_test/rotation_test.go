package core_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-blokus/internal/games/blokus/core"
)

func TestRotationCycle(t *testing.T) {
	testCases := []struct {
		rot  core.Rotation
		next core.Rotation
		prev core.Rotation
		deg  int
	}{
		{core.Rot0, core.Rot90, core.Rot270, 0},
		{core.Rot90, core.Rot180, core.Rot0, 90},
		{core.Rot180, core.Rot270, core.Rot90, 180},
		{core.Rot270, core.Rot0, core.Rot180, 270},
	}

	for _, tc := range testCases {
		if got := tc.rot.NextClockwise(); got != tc.next {
			t.Errorf("%v.NextClockwise() = %v, want %v", tc.rot, got, tc.next)
		}
		if got := tc.rot.Prev(); got != tc.prev {
			t.Errorf("%v.Prev() = %v, want %v", tc.rot, got, tc.prev)
		}
		if got := tc.rot.Degrees(); got != tc.deg {
			t.Errorf("%v.Degrees() = %d, want %d", tc.rot, got, tc.deg)
		}
	}
}

func TestParseRotation(t *testing.T) {
	testCases := []struct {
		in      string
		want    core.Rotation
		wantErr bool
	}{
		{"0", core.Rot0, false},
		{"90", core.Rot90, false},
		{"180°", core.Rot180, false},
		{"270deg", core.Rot270, false},
		{"45", core.Rot0, true},
		{"", core.Rot0, true},
	}

	for _, tc := range testCases {
		got, err := core.ParseRotation(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseRotation(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseRotation(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRotateMatrix(t *testing.T) {
	m := [][]int{
		{1, 2, 3},
		{4, 5, 6},
	}

	r90, err := core.Rotate90(m)
	if err != nil {
		t.Fatalf("Rotate90: %v", err)
	}
	want90 := [][]int{{3, 6}, {2, 5}, {1, 4}}
	if !reflect.DeepEqual(r90, want90) {
		t.Errorf("Rotate90 = %v, want %v", r90, want90)
	}

	r180, _ := core.Rotate180(m)
	want180 := [][]int{{6, 5, 4}, {3, 2, 1}}
	if !reflect.DeepEqual(r180, want180) {
		t.Errorf("Rotate180 = %v, want %v", r180, want180)
	}

	r270, _ := core.Rotate270(m)
	want270 := [][]int{{4, 1}, {5, 2}, {6, 3}}
	if !reflect.DeepEqual(r270, want270) {
		t.Errorf("Rotate270 = %v, want %v", r270, want270)
	}

	// Three quarter turns equal one Rotate270.
	x := m
	for i := 0; i < 3; i++ {
		x, _ = core.Rotate90(x)
	}
	if !reflect.DeepEqual(x, r270) {
		t.Errorf("Rotate90^3 = %v, want %v", x, r270)
	}

	// Input is untouched.
	if !reflect.DeepEqual(m, [][]int{{1, 2, 3}, {4, 5, 6}}) {
		t.Errorf("input was modified: %v", m)
	}
}

func TestRotateRagged(t *testing.T) {
	ragged := [][]int{{1, 2}, {3}}
	if _, err := core.Rotate90(ragged); !errors.Is(err, core.ErrRaggedMask) {
		t.Errorf("Rotate90 ragged: got %v, want ErrRaggedMask", err)
	}
	if _, err := core.Rotate180(ragged); !errors.Is(err, core.ErrRaggedMask) {
		t.Errorf("Rotate180 ragged: got %v, want ErrRaggedMask", err)
	}
	if _, err := core.Rotate270(ragged); !errors.Is(err, core.ErrRaggedMask) {
		t.Errorf("Rotate270 ragged: got %v, want ErrRaggedMask", err)
	}
}

func TestRotationOrderFour(t *testing.T) {
	cat := core.DefaultCatalog()
	for _, p := range core.AllPieces() {
		base := cat.Mask(p, core.Rot0)
		m := base
		for i := 0; i < 4; i++ {
			var err error
			m, err = m.Rotate(core.Rot90)
			if err != nil {
				t.Fatalf("%v: rotate: %v", p, err)
			}
		}
		if !m.Equal(base) {
			t.Errorf("%v: four quarter turns gave\n%s\nwant\n%s", p, m, base)
		}
	}
}

func TestRotate180Twice(t *testing.T) {
	cat := core.DefaultCatalog()
	for _, p := range core.AllPieces() {
		base := cat.Mask(p, core.Rot0)
		m, _ := base.Rotate(core.Rot180)
		m, _ = m.Rotate(core.Rot180)
		if !m.Equal(base) {
			t.Errorf("%v: two half turns changed the mask", p)
		}
	}
}
