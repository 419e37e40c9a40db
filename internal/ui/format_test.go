package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"node", 10, "node"},
		{"node", 4, "node"},
		{"postgres", 5, "post…"},
		{"日本語テスト", 4, "日本語…"},
		{"ab", 1, "a"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("tcp", 5); got != "tcp  " {
		t.Errorf("padRight = %q, want %q", got, "tcp  ")
	}
	if got := padRight("postgres", 5); got != "post…" {
		t.Errorf("padRight should truncate, got %q", got)
	}
}

func TestPadLeft(t *testing.T) {
	if got := padLeft("80", 5); got != "   80" {
		t.Errorf("padLeft = %q, want %q", got, "   80")
	}
}

func TestFormatCPU(t *testing.T) {
	if got := formatCPU(12.34); got != "12.3%" {
		t.Errorf("formatCPU = %q, want 12.3%%", got)
	}
	if got := formatCPU(0); got != "0.0%" {
		t.Errorf("formatCPU = %q, want 0.0%%", got)
	}
}
