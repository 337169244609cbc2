package models

import (
	"reflect"
	"testing"
)

func TestSelectsAll(t *testing.T) {
	tests := []struct {
		sel  []string
		want bool
	}{
		{nil, true},
		{[]string{}, true},
		{[]string{"all"}, true},
		{[]string{"Marina", "all"}, true},
		{[]string{"Marina"}, false},
	}
	for _, tt := range tests {
		if got := SelectsAll(tt.sel); got != tt.want {
			t.Errorf("SelectsAll(%v) = %v, want %v", tt.sel, got, tt.want)
		}
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		sel   []string
		value string
		want  []string
	}{
		{[]string{"all"}, "A", []string{"A"}},
		{[]string{"A"}, "B", []string{"A", "B"}},
		{[]string{"A", "B"}, "A", []string{"B"}},
		{[]string{"A"}, "A", []string{"all"}},
		{[]string{"A", "B"}, "all", []string{"all"}},
	}
	for _, tt := range tests {
		if got := Toggle(tt.sel, tt.value); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Toggle(%v, %q) = %v, want %v", tt.sel, tt.value, got, tt.want)
		}
	}
}
