package routes

import (
	"tavolo/auth"
	"tavolo/bookings"
	"tavolo/events"
	"tavolo/middleware"
	"tavolo/ratelim"
	"tavolo/restaurants"
	"tavolo/users"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/auth/register", rl.Limit(auth.Register))
	router.POST("/api/v1/auth/login", rl.Limit(auth.Login))
	router.POST("/api/v1/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/v1/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddUserRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/users", rl.Limit(users.CreateUser))
	router.GET("/api/v1/users", users.GetUsers)
	router.GET("/api/v1/users/user/:userid", users.GetUser)
	router.GET("/api/v1/users/uid/:uid", users.GetUserByUID)
	router.PATCH("/api/v1/users/user/:userid", middleware.Authenticate(users.EditUser))
	router.DELETE("/api/v1/users/user/:userid", middleware.Authenticate(users.DeleteUser))
}

func AddRestaurantRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/restaurants", rl.Limit(middleware.Authenticate(restaurants.RegisterRestaurant)))
	router.GET("/api/v1/restaurants", restaurants.GetRestaurants)
	router.GET("/api/v1/restaurants/restaurant/:restaurantid", restaurants.GetRestaurant)
	router.PATCH("/api/v1/restaurants/restaurant/:restaurantid", middleware.Authenticate(restaurants.EditRestaurant))
	router.PATCH("/api/v1/restaurants/approval/:restaurantid", middleware.RequireRole("admin", restaurants.SetApproval))
	router.DELETE("/api/v1/restaurants/restaurant/:restaurantid", middleware.Authenticate(restaurants.DeleteRestaurant))
	router.POST("/api/v1/restaurants/restaurant/:restaurantid/banner", middleware.Authenticate(restaurants.UploadBanner))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/bookings", rl.Limit(bookings.CreateBooking))
	router.GET("/api/v1/bookings", bookings.GetBookings)
	router.GET("/api/v1/bookings/booking/:bookingid", bookings.GetBooking)
	router.PATCH("/api/v1/bookings/booking/:bookingid", bookings.EditBooking)
	router.GET("/api/v1/bookings/confirm-booking/:bookingid", middleware.Authenticate(bookings.ConfirmBooking))
	router.DELETE("/api/v1/bookings/booking/:bookingid", bookings.DeleteBooking)
	router.GET("/api/v1/bookings/booking/:bookingid/receipt", bookings.PrintReceipt)

	router.GET("/ws/bookings/:restaurantid", bookings.HandleWS)
}

func AddEventRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/events", rl.Limit(middleware.Authenticate(events.CreateEvent)))
	router.GET("/api/v1/events", events.GetEvents)
	router.GET("/api/v1/events/event/:eventid", events.GetEvent)
	router.PATCH("/api/v1/events/event/:eventid", middleware.Authenticate(events.EditEvent))
	router.DELETE("/api/v1/events/event/:eventid", middleware.Authenticate(events.DeleteEvent))
	router.POST("/api/v1/events/event/:eventid/showcase", middleware.Authenticate(events.UploadShowcase))
}
