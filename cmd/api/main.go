package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lendshare/lendshare-backend/internal/database"
	"github.com/lendshare/lendshare-backend/internal/handlers"
	"github.com/lendshare/lendshare-backend/internal/middleware"
	"github.com/lendshare/lendshare-backend/internal/repository"
	"github.com/lendshare/lendshare-backend/internal/service"
	"github.com/lendshare/lendshare-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Redis only backs the search cache, so a missing instance is not fatal
	if err := services.InitRedis(); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Initialize storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	userStore := repository.NewGormUserStore(db)
	itemStore := repository.NewGormItemStore(db)
	bookingStore := repository.NewGormBookingStore(db)
	commentStore := repository.NewGormCommentStore(db)
	requestStore := repository.NewGormRequestStore(db)

	bookingSvc := service.NewBookingService(userStore, itemStore, bookingStore)
	itemSvc := service.NewItemService(userStore, itemStore, commentStore, bookingSvc)
	userSvc := service.NewUserService(userStore)
	requestSvc := service.NewRequestService(userStore, requestStore, itemStore)

	r := gin.Default()
	r.Use(middleware.RequestID())

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.UserHeader}
	r.Use(cors.New(config))

	// Serve locally stored item images
	if !services.IsUsingS3() {
		r.Static("/uploads", os.Getenv("UPLOAD_DIR"))
	}

	// User directory carries no caller identity
	users := r.Group("/users")
	{
		users.GET("", handlers.GetUsers(userSvc))
		users.POST("", handlers.CreateUser(userSvc))
		users.GET("/:userId", handlers.GetUser(userSvc))
		users.PATCH("/:userId", handlers.UpdateUser(userSvc))
		users.DELETE("/:userId", handlers.DeleteUser(userSvc))
	}

	items := r.Group("/items")
	items.Use(middleware.Identity())
	{
		items.POST("", handlers.CreateItem(itemSvc))
		items.PATCH("/:itemId", handlers.UpdateItem(itemSvc))
		items.GET("/:itemId", handlers.GetItem(itemSvc))
		items.GET("", handlers.GetOwnerItems(itemSvc))
		items.GET("/search", handlers.SearchItems(itemSvc))
		items.POST("/:itemId/comment", handlers.AddComment(itemSvc))
		items.POST("/:itemId/image", handlers.UploadItemImage(itemSvc))
	}

	bookings := r.Group("/bookings")
	bookings.Use(middleware.Identity())
	{
		bookings.POST("", handlers.CreateBooking(bookingSvc))
		bookings.PATCH("/:bookingId", handlers.SetBookingApproval(bookingSvc))
		bookings.GET("/owner", handlers.GetOwnerBookings(bookingSvc))
		bookings.GET("/:bookingId", handlers.GetBooking(bookingSvc))
		bookings.GET("", handlers.GetBookerBookings(bookingSvc))
	}

	requests := r.Group("/requests")
	requests.Use(middleware.Identity())
	{
		requests.POST("", handlers.CreateRequest(requestSvc))
		requests.GET("", handlers.GetOwnRequests(requestSvc))
		requests.GET("/all", handlers.GetOtherRequests(requestSvc))
		requests.GET("/:requestId", handlers.GetRequest(requestSvc))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
