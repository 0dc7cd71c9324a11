package main

import (
	"strings"
	"testing"
	"time"
)

func TestFormatViews(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1500, "1.5K"},
		{245000, "245.0K"},
		{1_200_000, "1.2M"},
	}
	for _, tt := range tests {
		if got := formatViews(tt.n); got != tt.want {
			t.Errorf("formatViews(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate(time.Time{}); got != "-" {
		t.Errorf("formatDate(zero) = %q, want -", got)
	}
	ts := time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC)
	if got := formatDate(ts); got != "2024-12-15" {
		t.Errorf("formatDate = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	got := truncate("a very long title that keeps going", 10)
	if len([]rune(got)) > 10 {
		t.Errorf("truncate length = %d, want <= 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate = %q, want ellipsis suffix", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"ID", "VIEWS"},
		[][]string{{"vid-00001", "245.0K"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	if !strings.Contains(out, "vid-00001") {
		t.Errorf("table missing row data:\n%s", out)
	}
	if !strings.Contains(out, "VIEWS") {
		t.Errorf("table missing header:\n%s", out)
	}
}

func TestMask(t *testing.T) {
	if got := mask(""); got != "(not set)" {
		t.Errorf("mask(empty) = %q", got)
	}
	if got := mask("key"); got != "****" {
		t.Errorf("mask(short) = %q", got)
	}
	got := mask("sk-1234567890")
	if strings.Contains(got, "345678") {
		t.Errorf("mask leaked middle: %q", got)
	}
	if !strings.HasPrefix(got, "sk") {
		t.Errorf("mask = %q, want sk prefix kept", got)
	}
}
