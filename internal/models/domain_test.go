package models

import "testing"

func TestParseContentType(t *testing.T) {
	got, err := ParseContentType(" YouTube ")
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	if got != ContentYouTube {
		t.Fatalf("expected %q, got %q", ContentYouTube, got)
	}

	got, err = ParseContentType("")
	if err != nil {
		t.Fatalf("parse empty content type: %v", err)
	}
	if got != ContentOther {
		t.Fatalf("expected empty type to default to %q, got %q", ContentOther, got)
	}

	if _, err := ParseContentType("podcast"); err == nil {
		t.Fatal("expected invalid content type error")
	}
}

func TestIsValidProgress(t *testing.T) {
	if !IsValidProgress(DefaultProgress) {
		t.Fatalf("expected default progress %d to be valid", DefaultProgress)
	}
	if !IsValidProgress(ProgressMax) {
		t.Fatalf("expected %d to be valid", ProgressMax)
	}
	if IsValidProgress(ProgressMin - 1) {
		t.Fatalf("expected %d to be invalid", ProgressMin-1)
	}
	if IsValidProgress(ProgressMax + 1) {
		t.Fatalf("expected %d to be invalid", ProgressMax+1)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "2024-02-29", want: "2024-02-29"},
		{raw: " 2025-01-01 ", want: "2025-01-01"},
		{raw: "2023-02-29", wantErr: true},
		{raw: "01/02/2024", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalizeTagName(t *testing.T) {
	if got := NormalizeTagName("  Jazz "); got != "jazz" {
		t.Fatalf("expected 'jazz', got %q", got)
	}
}
