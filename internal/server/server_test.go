package server

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantFrom string
		wantMod  bool
		wantMap  string
	}{
		{"empty", "/api/stats/camps", "", false, ""},
		{"date range", "/api/stats/camps?from=2025-01-01&to=2025-01-31", "2025-01-01", false, ""},
		{"mod flag true", "/api/stats/camps?mod=true", "", true, ""},
		{"mod flag numeric", "/api/stats/camps?mod=1", "", true, ""},
		{"map", "/api/stats/camps?map=Village", "", false, "Village"},
		{"malformed date ignored", "/api/stats/camps?from=notadate", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseFilter(httptest.NewRequest("GET", tt.url, nil))

			if tt.wantFrom == "" {
				if !f.From.IsZero() {
					t.Fatalf("From = %v, want zero", f.From)
				}
			} else {
				want, _ := time.Parse("2006-01-02", tt.wantFrom)
				if !f.From.Equal(want) {
					t.Fatalf("From = %v, want %v", f.From, want)
				}
			}
			if f.ModOnly != tt.wantMod {
				t.Fatalf("ModOnly = %v, want %v", f.ModOnly, tt.wantMod)
			}
			if f.MapName != tt.wantMap {
				t.Fatalf("MapName = %q, want %q", f.MapName, tt.wantMap)
			}
		})
	}
}

func TestParseFilterInclusiveEnd(t *testing.T) {
	f := parseFilter(httptest.NewRequest("GET", "/api/stats/camps?to=2025-01-31", nil))

	endOfDay := time.Date(2025, 1, 31, 23, 59, 59, 999999999, time.UTC)
	if !f.To.Equal(endOfDay) {
		t.Fatalf("To = %v, want inclusive end of day %v", f.To, endOfDay)
	}
}
