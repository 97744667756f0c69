package ari

import (
	"testing"
	"time"
)

func TestTPTimeRoundTrip(t *testing.T) {
	tp := TP{Seconds: 100}
	got := NewTPFromTime(tp.Time())
	if got != tp {
		t.Fatalf("TP round trip through Time() = %+v, want %+v", got, tp)
	}
}

func TestTPStringIntegerWhenNoFraction(t *testing.T) {
	tp := TP{Seconds: 742896970}
	if tp.String() != "TP.742896970" {
		t.Fatalf("unexpected TP rendering: %s", tp.String())
	}
}

func TestTPStringDecimalWithFraction(t *testing.T) {
	tp := TP{Seconds: 5, Nanos: 500000000}
	if tp.String() != "TP.5.5" {
		t.Fatalf("unexpected TP rendering: %s", tp.String())
	}
}

func TestTDDuration(t *testing.T) {
	td := TD{Seconds: 3, Nanos: int32(500 * time.Millisecond)}
	want := 3*time.Second + 500*time.Millisecond
	if td.Duration() != want {
		t.Fatalf("TD.Duration() = %v, want %v", td.Duration(), want)
	}
}

func TestDTNEpochValue(t *testing.T) {
	want := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if !DTNEpoch.Equal(want) {
		t.Fatalf("DTNEpoch = %v, want %v", DTNEpoch, want)
	}
}
