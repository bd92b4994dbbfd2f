package tui

import (
	"testing"
	"time"
)

func TestFormatLKR(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "Rs 0"},
		{800, "Rs 800"},
		{4200, "Rs 4,200"},
		{8750, "Rs 8,750"},
		{1250000, "Rs 1,250,000"},
		{-400, "Rs -400"},
	}
	for _, tt := range tests {
		if got := formatLKR(tt.in); got != tt.want {
			t.Errorf("formatLKR(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{200, "3h 20m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.in); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		in   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-50 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		if got := formatTime(tt.in); got != tt.want {
			t.Errorf("formatTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("truncStr = %q", got)
	}
	if got := truncStr("a very long course title", 10); got != "a very lo…" {
		t.Errorf("truncStr = %q", got)
	}
}

func TestEditRune(t *testing.T) {
	tests := []struct {
		text string
		key  string
		want string
	}{
		{"", "a", "a"},
		{"ab", "backspace", "a"},
		{"", "backspace", ""},
		{"x", "enter", "x"},
		{"x", "left", "x"},
		{"නිම", "ල", "නිමල"},
		{"නිමල", "backspace", "නිම"},
	}
	for _, tt := range tests {
		if got := editRune(tt.text, tt.key); got != tt.want {
			t.Errorf("editRune(%q, %q) = %q, want %q", tt.text, tt.key, got, tt.want)
		}
	}
}
