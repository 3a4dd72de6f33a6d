package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cseduardo/TiendaPromElec/internal/auth"
	"github.com/cseduardo/TiendaPromElec/internal/config"
	"github.com/cseduardo/TiendaPromElec/internal/database"
	"github.com/cseduardo/TiendaPromElec/internal/handlers"
	"github.com/cseduardo/TiendaPromElec/internal/middleware"
	"github.com/cseduardo/TiendaPromElec/internal/orders"
	"github.com/cseduardo/TiendaPromElec/internal/store"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureCustomerIndexes(db); err != nil {
		log.Printf("customer index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}

	tokens := auth.NewTokenService(config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL)
	productStore := store.NewMongoProductStore(db)
	orderStore := store.NewMongoOrderStore(db)
	placement := orders.NewService(productStore, orderStore)

	r := gin.Default()

	r.POST("/accounts/register", handlers.Register(db))
	r.POST("/accounts/login", handlers.Login(db, tokens))
	r.GET("/accounts/me", middleware.Authenticated(tokens), handlers.GetMe(db))
	r.PUT("/accounts/me", middleware.Authenticated(tokens), handlers.UpdateMe(db))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.GET("/categories", handlers.GetCategories(db))

	ordersGroup := r.Group("/orders")
	ordersGroup.Use(middleware.Authenticated(tokens))
	{
		ordersGroup.GET("", handlers.GetOrders(orderStore))
		ordersGroup.GET("/:id", handlers.GetOrder(orderStore))
		ordersGroup.POST("", handlers.CreateOrder(db, placement))
		ordersGroup.PUT("/:id", middleware.RequireRole(auth.RoleAdmin), handlers.UpdateOrder(orderStore))
		ordersGroup.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), handlers.DeleteOrder(orderStore))
	}

	admin := r.Group("/")
	admin.Use(middleware.AdminOnly(tokens))
	{
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
