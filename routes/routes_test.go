package routes

import (
	"testing"

	"tavolo/ratelim"

	"github.com/julienschmidt/httprouter"
)

func TestConfirmBookingRoutedAsGet(t *testing.T) {
	router := httprouter.New()
	AddBookingRoutes(router, ratelim.NewRateLimiter())

	h, ps, _ := router.Lookup("GET", "/api/v1/bookings/confirm-booking/abc123")
	if h == nil {
		t.Fatal("confirm-booking is not routable via GET")
	}
	if got := ps.ByName("bookingid"); got != "abc123" {
		t.Fatalf("bookingid param = %q, want %q", got, "abc123")
	}

	// the plain booking fetch stays routable alongside it
	if h, _, _ := router.Lookup("GET", "/api/v1/bookings/booking/abc123"); h == nil {
		t.Fatal("booking fetch is not routable via GET")
	}
}
