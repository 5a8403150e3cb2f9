package cloze

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNextIndexFor(t *testing.T) {
	tests := []struct {
		name    string
		fields  []string
		index   int
		current string
		want    int
	}{
		{
			name:    "edit buffer supersedes snapshot",
			fields:  []string{"{{c1::a}}", "no cloze here"},
			index:   1,
			current: "{{c2::b}}",
			want:    3,
		},
		{
			name:    "no markers anywhere",
			fields:  []string{"front", "back"},
			index:   0,
			current: "still nothing",
			want:    1,
		},
		{
			name:    "stale marker in edited field is ignored",
			fields:  []string{"{{c7::old}}", "{{c2::x}}"},
			index:   0,
			current: "removed",
			want:    3,
		},
		{
			name:    "gaps are not filled",
			fields:  []string{"{{c1::a}} {{c5::b}}"},
			index:   0,
			current: "{{c1::a}} {{c5::b}}",
			want:    6,
		},
		{
			name:    "multiple markers in one field",
			fields:  []string{""},
			index:   0,
			current: "{{c3::a}}{{c10::b}}{{c4::c}}",
			want:    11,
		},
		{
			name:    "empty field list",
			fields:  nil,
			index:   0,
			current: "{{c2::z}}",
			want:    3,
		},
		{
			name:    "index out of range still scans current",
			fields:  []string{"{{c1::a}}"},
			index:   5,
			current: "{{c4::d}}",
			want:    5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextIndexFor(tt.fields, tt.index, tt.current); got != tt.want {
				t.Errorf("NextIndexFor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIndicesIgnoresMalformedMarkers(t *testing.T) {
	text := "{{c::a}} {c1::b} {{c2:c}} {{c99999999999999999999999::d}} {{c3::e}} {{C4::f}}"
	got := Indices(text)
	if !slices.Equal(got, []int{3}) {
		t.Errorf("Indices = %v, want [3]", got)
	}
}

func TestNextIndexZeroGroup(t *testing.T) {
	if got := NextIndex([]string{"{{c0::zero}}"}); got != 1 {
		t.Errorf("NextIndex = %d, want 1", got)
	}
}

// Feature: fieldedit, Property 2: Next cloze index is max + 1
func TestNextIndexProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 5).Draw(t, "fields")
		fields := make([]string, n)
		highest := 0
		for i := range fields {
			var sb strings.Builder
			groups := rapid.SliceOfN(rapid.IntRange(1, 50), 0, 4).Draw(t, fmt.Sprintf("groups%d", i))
			for _, g := range groups {
				fmt.Fprintf(&sb, "text {{c%d::answer}} ", g)
				highest = max(highest, g)
			}
			fields[i] = sb.String()
		}

		if got := NextIndex(fields); got != highest+1 {
			t.Fatalf("NextIndex(%q) = %d, want %d", fields, got, highest+1)
		}
	})
}

// Feature: fieldedit, Property 3: NextIndexFor is idempotent and side-effect free
func TestNextIndexForIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fields := rapid.SliceOfN(rapid.StringMatching(`(text|\{\{c[0-9]{1,2}::a\}\}| ){0,6}`), 1, 5).Draw(t, "fields")
		index := rapid.IntRange(0, len(fields)-1).Draw(t, "index")
		current := rapid.StringMatching(`(\{\{c[0-9]{1,2}::b\}\}|x){0,4}`).Draw(t, "current")

		before := slices.Clone(fields)
		first := NextIndexFor(fields, index, current)
		second := NextIndexFor(fields, index, current)

		if first != second {
			t.Fatalf("not deterministic: %d then %d", first, second)
		}
		if !slices.Equal(before, fields) {
			t.Fatalf("input mutated: before %q, after %q", before, fields)
		}
	})
}
