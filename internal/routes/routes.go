package routes

import (
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux) {
	// Profile routes (identity comes from the external provider)
	r.Get("/api/me", handlers.GetMe)
	r.Post("/api/me", handlers.GetMe) // with identity fields for first access
	r.Put("/api/me", handlers.UpdateProfile)

	// Waste recycling pickup routes
	r.Post("/api/waste-requests", handlers.CreateWasteRequest)
	r.Get("/api/waste-requests", handlers.GetWasteRequests)
	r.Put("/api/waste-requests/status", handlers.UpdateWasteRequestStatus)

	// Food donation pickup routes
	r.Post("/api/food-requests", handlers.CreateFoodRequest)
	r.Get("/api/food-requests", handlers.GetFoodRequests)
	r.Put("/api/food-requests/status", handlers.UpdateFoodRequestStatus)

	// Leaderboard
	r.Get("/api/leaderboard", handlers.GetLeaderboard)

	// Shop routes
	r.Get("/api/products", handlers.GetProducts)
	r.Post("/api/products", handlers.CreateProduct)
	r.Get("/api/product", handlers.GetProduct)
	r.Post("/api/orders", handlers.CreateOrder)
	r.Get("/api/orders", handlers.GetOrders)
	r.Post("/api/orders/verify-payment", handlers.VerifyPayment)

	// Image upload routes
	r.Post("/api/upload", handlers.UploadImage)

	// Notification routes
	r.Get("/api/notifications", handlers.GetNotifications)
	r.Put("/api/notifications/read", handlers.MarkNotificationRead)

	// Community chat (MongoDB history + Redis Pub/Sub)
	r.Get("/api/chat/history", handlers.LoadChatHistory)
	r.Get("/ws/chat", handlers.ChatWebSocket)

	// Legacy registration API (PostgreSQL)
	r.Post("/users", handlers.RegisterUser)
	r.Get("/users", handlers.ListRegisteredUsers)
}
