// Package cloze finds cloze-deletion groups ({{c1::...}}) in note fields and
// picks the next free group number.
package cloze

import (
	"regexp"
	"strconv"
)

var markerPattern = regexp.MustCompile(`\{\{c(\d+)::`)

// Indices returns the group number of every cloze marker in text, in order of
// appearance. Numbers too large for an int are skipped.
func Indices(text string) []int {
	var out []int
	for _, m := range markerPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// NextIndex returns one more than the highest group number across fields,
// or 1 when no field contains a marker.
func NextIndex(fields []string) int {
	highest := 0
	for _, f := range fields {
		for _, n := range Indices(f) {
			if n > highest {
				highest = n
			}
		}
	}
	return highest + 1
}

// NextIndexFor computes NextIndex over a copy of fields in which the entry at
// index has been replaced by current. fields is not modified. When index is out
// of range current is scanned in addition to the snapshot.
func NextIndexFor(fields []string, index int, current string) int {
	merged := make([]string, len(fields), len(fields)+1)
	copy(merged, fields)
	if index >= 0 && index < len(merged) {
		merged[index] = current
	} else {
		merged = append(merged, current)
	}
	return NextIndex(merged)
}
