package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/models"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var productCache services.CacheService

// buildProductFilter translates catalog query parameters into a Mongo filter.
// A search term matches name or description case-insensitively; the term is
// quoted so user input cannot inject regex metacharacters.
func buildProductFilter(category, search string) bson.M {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if search = strings.TrimSpace(search); search != "" {
		pattern := regexp.QuoteMeta(search)
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	return filter
}

// GetProducts lists the shop catalog, optionally filtered by category and a
// free-text search term (?q=bamboo). Only the unfiltered listing is cached in
// Redis; the catalog changes rarely but search results are too varied to cache.
func GetProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("q")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	unfiltered := category == "" && strings.TrimSpace(search) == ""

	cacheKey := "products:all"
	if unfiltered {
		var cached []models.Product
		if hit, _ := productCache.Get(ctx, cacheKey, &cached); hit {
			writeJSON(w, http.StatusOK, Response{Success: true, Data: cached})
			return
		}
	}

	filter := buildProductFilter(category, search)

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1})
	findOptions.SetLimit(200)

	cursor, err := database.DB.Collection("products").Find(ctx, filter, findOptions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}

	if unfiltered {
		_ = productCache.Set(ctx, cacheKey, products, services.ProductCacheTTL)
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// GetProduct returns a single product by id.
func GetProduct(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := database.DB.Collection("products").FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// CreateProduct adds an item to the shop catalog and drops the cached listing
// so the next fetch sees it. The catalog is managed by trusted staff; the
// caller's identity is taken the same way as everywhere else.
func CreateProduct(w http.ResponseWriter, r *http.Request) {
	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req struct {
		Name                   string   `json:"name"`
		Description            string   `json:"description"`
		Category               string   `json:"category"`
		Price                  float64  `json:"price"`
		ImageURL               string   `json:"image_url"`
		EcoRating              int      `json:"eco_rating"`
		StockQuantity          int      `json:"stock_quantity"`
		Recyclable             bool     `json:"recyclable"`
		SustainabilityFeatures []string `json:"sustainability_features"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "name and category are required")
		return
	}
	if req.Price < 0 || req.StockQuantity < 0 {
		writeError(w, http.StatusBadRequest, "price and stock_quantity must not be negative")
		return
	}
	if req.EcoRating < 0 || req.EcoRating > 5 {
		writeError(w, http.StatusBadRequest, "eco_rating must be between 0 and 5")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product := models.Product{
		Name:                   req.Name,
		Description:            req.Description,
		Category:               req.Category,
		Price:                  req.Price,
		ImageURL:               req.ImageURL,
		EcoRating:              req.EcoRating,
		StockQuantity:          req.StockQuantity,
		Recyclable:             req.Recyclable,
		SustainabilityFeatures: req.SustainabilityFeatures,
		CreatedAt:              time.Now().UTC(),
	}

	result, err := database.DB.Collection("products").InsertOne(ctx, product)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	// The cached unfiltered listing is now stale.
	_ = productCache.Invalidate(ctx, "products:all")

	writeJSON(w, http.StatusCreated, Response{Success: true, Message: "Product created", Data: product})
}
