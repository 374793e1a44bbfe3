package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hotelcore/controllers"
	_ "hotelcore/docs"
	middlewares "hotelcore/middleware"
	"hotelcore/models"
	"hotelcore/services"
	"hotelcore/services/logger"
)

func SetupRoutes(router *gin.Engine, facade *services.BookingFacade, jwtSecret string, log logger.Logger) {
	bookingController := controllers.NewBookingController(facade)
	roomController := controllers.NewRoomController(facade)
	rateController := controllers.NewRateController(facade)
	userController := controllers.NewUserController(facade)
	authController := controllers.NewAuthController(facade)

	router.Use(middlewares.RequestMiddleware(log), middlewares.ErrorHandler())

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middlewares.AuthMiddleware(jwtSecret)
	staff := []gin.HandlerFunc{auth, middlewares.StaffOnly()}

	v1 := router.Group("/api/v1")

	v1.GET("/rooms/available", roomController.GetAvailableRooms)
	v1.GET("/rooms/:id", roomController.GetRoomDetail)
	v1.GET("/rooms/:id/calendar", roomController.GetRoomCalendar)
	v1.POST("/rooms", append(staff, roomController.CreateRoom)...)
	v1.PUT("/rooms/:id/status", middlewares.AuthMiddleware(jwtSecret, models.RoomOperatorRoles...), roomController.ChangeRoomStatus)
	v1.DELETE("/rooms/:id", append(staff, roomController.DeleteRoom)...)

	v1.POST("/bookings", auth, bookingController.CreateBooking)
	v1.GET("/bookings", auth, bookingController.ListBookings)
	v1.GET("/bookings/:id", auth, bookingController.GetBooking)
	v1.PUT("/bookings/:id/status", append(staff, bookingController.UpdateBookingStatus)...)
	v1.POST("/bookings/:id/cancel", auth, bookingController.CancelBooking)

	v1.POST("/ratings", auth, rateController.CreateRate)
	v1.GET("/ratings/:resourceId", rateController.GetRatingSummary)
	v1.POST("/restaurants", append(staff, rateController.CreateRestaurant)...)

	v1.POST("/auth/login", authController.Login)
	v1.POST("/users", userController.RegisterUser)
	v1.GET("/users/:id", auth, userController.GetUserByID)
}
