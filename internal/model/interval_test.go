package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b DateInterval
		want bool
	}{
		{
			name: "disjoint ranges",
			a:    DateInterval{date(2025, 6, 1), date(2025, 6, 5)},
			b:    DateInterval{date(2025, 6, 10), date(2025, 6, 14)},
			want: false,
		},
		{
			name: "checkout day equals next checkin",
			a:    DateInterval{date(2025, 6, 10), date(2025, 6, 12)},
			b:    DateInterval{date(2025, 6, 12), date(2025, 6, 14)},
			want: false,
		},
		{
			name: "one shared night",
			a:    DateInterval{date(2025, 6, 10), date(2025, 6, 12)},
			b:    DateInterval{date(2025, 6, 11), date(2025, 6, 14)},
			want: true,
		},
		{
			name: "contained range",
			a:    DateInterval{date(2025, 6, 1), date(2025, 6, 30)},
			b:    DateInterval{date(2025, 6, 10), date(2025, 6, 12)},
			want: true,
		},
		{
			name: "identical ranges",
			a:    DateInterval{date(2025, 6, 10), date(2025, 6, 12)},
			b:    DateInterval{date(2025, 6, 10), date(2025, 6, 12)},
			want: true,
		},
		{
			name: "adjacent single nights",
			a:    DateInterval{date(2025, 6, 10), date(2025, 6, 11)},
			b:    DateInterval{date(2025, 6, 11), date(2025, 6, 12)},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			// overlap is symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalValid(t *testing.T) {
	if (DateInterval{date(2025, 6, 10), date(2025, 6, 10)}).Valid() {
		t.Error("zero-length interval should be invalid")
	}
	if (DateInterval{date(2025, 6, 12), date(2025, 6, 10)}).Valid() {
		t.Error("reversed interval should be invalid")
	}
	if !(DateInterval{date(2025, 6, 10), date(2025, 6, 11)}).Valid() {
		t.Error("single-night interval should be valid")
	}
}

func TestNights(t *testing.T) {
	i := DateInterval{date(2025, 6, 10), date(2025, 6, 14)}
	if got := i.Nights(); got != 4 {
		t.Errorf("Nights() = %d, want 4", got)
	}
}

func TestNormalizeDate(t *testing.T) {
	t.Run("strips time of day", func(t *testing.T) {
		in := time.Date(2025, 6, 10, 15, 42, 7, 999, time.UTC)
		if got := NormalizeDate(in); !got.Equal(date(2025, 6, 10)) {
			t.Errorf("NormalizeDate() = %v, want %v", got, date(2025, 6, 10))
		}
	})

	t.Run("converts timezone before truncating", func(t *testing.T) {
		// 23:00 in UTC-3 is already June 11 in UTC.
		loc := time.FixedZone("UTC-3", -3*60*60)
		in := time.Date(2025, 6, 10, 23, 0, 0, 0, loc)
		if got := NormalizeDate(in); !got.Equal(date(2025, 6, 11)) {
			t.Errorf("NormalizeDate() = %v, want %v", got, date(2025, 6, 11))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		once := NormalizeDate(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
		if got := NormalizeDate(once); !got.Equal(once) {
			t.Errorf("NormalizeDate(NormalizeDate(t)) = %v, want %v", got, once)
		}
	})
}

func TestParseDate(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		got, err := ParseDate("2025-06-10")
		if err != nil {
			t.Fatalf("ParseDate: %v", err)
		}
		if !got.Equal(date(2025, 6, 10)) {
			t.Errorf("ParseDate() = %v, want %v", got, date(2025, 6, 10))
		}
	})

	t.Run("rfc3339 timestamp", func(t *testing.T) {
		got, err := ParseDate("2025-06-10T18:30:00-03:00")
		if err != nil {
			t.Fatalf("ParseDate: %v", err)
		}
		if !got.Equal(date(2025, 6, 10)) {
			t.Errorf("ParseDate() = %v, want %v", got, date(2025, 6, 10))
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseDate("next tuesday"); err == nil {
			t.Error("expected error for unparseable date")
		}
	})
}
