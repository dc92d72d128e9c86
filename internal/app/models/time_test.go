package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateWireFormat(t *testing.T) {
	d := NewDate(2026, time.January, 20)

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2026-01-20"` {
		t.Fatalf("marshaled date = %s, want \"2026-01-20\"", out)
	}

	var back Date
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip = %s, want %s", back, d)
	}
}

func TestDateRejectsOtherLayouts(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"20.01.2026"`), &d); err == nil {
		t.Fatal("accepted a non-ISO date")
	}
}

func TestClockTimeAcceptsBothWireForms(t *testing.T) {
	tests := []struct {
		in   string
		want ClockTime
	}{
		{`"10:30:00"`, NewClockTime(10, 30, 0)},
		{`"10:30"`, NewClockTime(10, 30, 0)},
		{`"23:59:59"`, NewClockTime(23, 59, 59)},
	}

	for _, tc := range tests {
		var got ClockTime
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Errorf("unmarshal %s: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("unmarshal %s = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestClockTimeMarshalsWithSeconds(t *testing.T) {
	out, err := json.Marshal(NewClockTime(9, 5, 0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"09:05:00"` {
		t.Fatalf("marshaled time = %s, want \"09:05:00\"", out)
	}
}

func TestClockTimeDisplayDropsSeconds(t *testing.T) {
	c := NewClockTime(10, 30, 45)
	if got := c.Display(); got != "10:30" {
		t.Errorf("Display() = %q, want 10:30", got)
	}
	if got := c.String(); got != "10:30:45" {
		t.Errorf("String() = %q, want 10:30:45", got)
	}
}
