package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lendshare/lendshare-backend/internal/gateway"
	"github.com/lendshare/lendshare-backend/internal/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	serverURL := os.Getenv("SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:9090"
	}
	client := gateway.NewClient(serverURL)

	r := gin.Default()
	r.Use(middleware.RequestID())

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.UserHeader}
	r.Use(cors.New(config))

	users := r.Group("/users")
	{
		users.GET("", client.Forward)
		users.POST("", gateway.CreateUser(client))
		users.GET("/:userId", client.Forward)
		users.PATCH("/:userId", client.Forward)
		users.DELETE("/:userId", client.Forward)
	}

	items := r.Group("/items")
	items.Use(middleware.Identity())
	{
		items.POST("", gateway.CreateItem(client))
		items.PATCH("/:itemId", client.Forward)
		items.GET("/:itemId", client.Forward)
		items.GET("", gateway.Paginated(client))
		items.GET("/search", gateway.Paginated(client))
		items.POST("/:itemId/comment", gateway.AddComment(client))
		items.POST("/:itemId/image", client.Forward)
	}

	bookings := r.Group("/bookings")
	bookings.Use(middleware.Identity())
	{
		bookings.POST("", gateway.CreateBooking(client))
		bookings.PATCH("/:bookingId", client.Forward)
		bookings.GET("/owner", gateway.ListBookings(client))
		bookings.GET("/:bookingId", client.Forward)
		bookings.GET("", gateway.ListBookings(client))
	}

	requests := r.Group("/requests")
	requests.Use(middleware.Identity())
	{
		requests.POST("", client.Forward)
		requests.GET("", client.Forward)
		requests.GET("/all", gateway.Paginated(client))
		requests.GET("/:requestId", client.Forward)
	}

	port := os.Getenv("GATEWAY_PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start gateway:", err)
	}
}
