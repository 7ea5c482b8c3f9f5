package models

import (
	"testing"
	"time"
)

func TestDeriveEndTime(t *testing.T) {
	start := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	b := Booking{BookingTime: start, DurationInMinutes: 90}
	b.DeriveEndTime()

	want := start.Add(90 * time.Minute)
	if !b.BookingEndTime.Equal(want) {
		t.Fatalf("end time = %v, want %v", b.BookingEndTime, want)
	}
}

func TestDeriveEndTimeRederives(t *testing.T) {
	start := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	b := Booking{BookingTime: start, DurationInMinutes: 60}
	b.DeriveEndTime()

	b.DurationInMinutes = 120
	b.DeriveEndTime()

	if want := start.Add(2 * time.Hour); !b.BookingEndTime.Equal(want) {
		t.Fatalf("end time = %v, want %v", b.BookingEndTime, want)
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCanceled, BookingCompleted} {
		if !ValidBookingStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if ValidBookingStatus("NO_SHOW") {
		t.Error("unknown status should be invalid")
	}
}
