package engine

import "testing"

func TestFieldSeasonRotation(t *testing.T) {
	cases := []struct {
		field, orientation uint8
		want               Season
	}{
		{0, 0, Spring},
		{1, 0, Summer},
		{2, 0, Autumn},
		{3, 0, Winter},
		{0, 1, Winter},
		{0, 2, Autumn},
		{3, 1, Autumn},
	}
	for _, c := range cases {
		if got := FieldSeason(c.field, c.orientation); got != c.want {
			t.Errorf("FieldSeason(%d,%d) = %s, want %s", c.field, c.orientation, got, c.want)
		}
	}
}

func TestFieldNameFormat(t *testing.T) {
	if got := FieldName(0, 0); got != "Spring Field" {
		t.Errorf("FieldName(0,0) = %q, want %q", got, "Spring Field")
	}
}

func TestSeasonString(t *testing.T) {
	if Spring.String() != "Spring" || Winter.String() != "Winter" {
		t.Errorf("unexpected Season.String() values")
	}
}
