package ui

import (
	"reflect"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "fits on one line",
			text:  "a quiet glade",
			width: 20,
			want:  []string{"a quiet glade"},
		},
		{
			name:  "breaks on spaces",
			text:  "the shadow sits upon the throne",
			width: 15,
			want:  []string{"the shadow sits", "upon the throne"},
		},
		{
			name:  "long word gets its own line",
			text:  "an unpronounceablenameofplace here",
			width: 10,
			want:  []string{"an", "unpronounceablenameofplace", "here"},
		},
		{
			name:  "preserves paragraph breaks",
			text:  "first\nsecond",
			width: 20,
			want:  []string{"first", "second"},
		},
		{
			name:  "blank paragraph becomes empty line",
			text:  "first\n\nsecond",
			width: 20,
			want:  []string{"first", "", "second"},
		},
		{
			name:  "zero width returns text unchanged",
			text:  "anything at all",
			width: 0,
			want:  []string{"anything at all"},
		},
	}

	for _, tt := range tests {
		if got := WrapText(tt.text, tt.width); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: WrapText(%q, %d) = %v, want %v", tt.name, tt.text, tt.width, got, tt.want)
		}
	}
}
