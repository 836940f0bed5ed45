package codegen

import "testing"

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "A"},
		{"abc", "Abc"},
		{"Hello", "Hello"},
		{"_x", "_x"},
		{"9a", "9a"},
	}

	for _, tt := range tests {
		got := UpperFirst(tt.input)
		if got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"pattern", PatternConst("date"), "DatePattern"},
		{"group", GroupConst("Date", "year"), "DateGroupYear"},
		{"group underscore", GroupConst("Date", "_tz"), "DateGroup_tz"},
		{"group count", GroupCountConst("Date"), "DateGroupCount"},
		{"regexp", RegexpVar("Date"), "DateRegexp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
