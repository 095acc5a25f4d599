package formatting_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/folio/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"bare bytes", "1024", 1024, false},
		{"explicit bytes", "10B", 10, false},
		{"kilobytes", "64KB", 64 * 1024, false},
		{"megabytes", "1MB", 1024 * 1024, false},
		{"lowercase with space", "2 mb", 2 * 1024 * 1024, false},
		{"binary suffix", "2MiB", 2 * 1024 * 1024, false},
		{"single letter", "512k", 512 * 1024, false},
		{"fractional", "1.5KB", 1536, false},
		{"surrounding space", "  4KB ", 4096, false},
		{"empty string", "", 0, true},
		{"unknown unit", "5XB", 0, true},
		{"negative", "-1MB", 0, true},
		{"dangling dot", "1.MB", 0, true},
		{"beyond int64", "8EB", 0, true},
		{"unit past exabytes", "1ZB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, formatting.ErrInvalidSize) {
				t.Errorf("ParseBytes(%q) error = %v, want ErrInvalidSize", tt.input, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{812, 3, "812 B"},
		{1536, 1, "1.5 KB"},
		{1536, -1, "2 KB"},
		{3 * 1024 * 1024, 0, "3 MB"},
		{-2048, 0, "-2 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}
