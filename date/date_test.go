package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "iso", in: "2025-01-31", want: New(2025, time.January, 31)},
		{name: "permissive", in: "2025-7-1", want: New(2025, time.July, 1)},
		{name: "garbage", in: "not-a-date", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected an error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) returned unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_Add_Normalizes(t *testing.T) {
	d := New(2025, time.January, 31).Add(1)
	if want := New(2025, time.February, 1); d != want {
		t.Errorf("Add(1) = %v, want %v", d, want)
	}
	d = New(2025, time.March, 1).Add(-1)
	if want := New(2025, time.February, 28); d != want {
		t.Errorf("Add(-1) = %v, want %v", d, want)
	}
}

func TestDate_Compare(t *testing.T) {
	a := New(2025, time.May, 1)
	b := New(2025, time.May, 2)
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before() is inconsistent for %v and %v", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After() is inconsistent for %v and %v", a, b)
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare() is inconsistent for %v and %v", a, b)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := New(2025, time.August, 9)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() returned unexpected error: %v", err)
	}
	if string(data) != `"2025-08-09"` {
		t.Errorf("Marshal() = %s, want %q", data, "2025-08-09")
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() returned unexpected error: %v", err)
	}
	if got != d {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}

func TestRange(t *testing.T) {
	r := NewRange(New(2025, time.January, 1), New(2025, time.January, 31))
	if !r.Contains(r.From) || !r.Contains(r.To) {
		t.Error("Contains() must include boundaries")
	}
	if r.Contains(New(2024, time.December, 31)) || r.Contains(New(2025, time.February, 1)) {
		t.Error("Contains() accepted a date outside the range")
	}

	clipped := r.Clip(New(2025, time.January, 10))
	if clipped.To != New(2025, time.January, 10) {
		t.Errorf("Clip() To = %v, want 2025-01-10", clipped.To)
	}
	if clipped.From != r.From {
		t.Errorf("Clip() moved From to %v", clipped.From)
	}
}

func TestLastYear(t *testing.T) {
	r := LastYear(New(2025, time.June, 15))
	if r.From != New(2024, time.June, 15) || r.To != New(2025, time.June, 15) {
		t.Errorf("LastYear() = %v, want one year ending 2025-06-15", r)
	}
}
