package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Mrfarooqui038501/Ecommerce/internal/config"
	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
	"github.com/Mrfarooqui038501/Ecommerce/internal/repository"
	"github.com/Mrfarooqui038501/Ecommerce/internal/telemetry"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
)

var products = []domain.Product{
	{ProductID: "PROD001", Name: "Laptop Pro", Description: "High-performance laptop for professionals", Price: 1299.99, Quantity: 10},
	{ProductID: "PROD002", Name: "Smartphone X", Description: "Latest smartphone with advanced features", Price: 799.99, Quantity: 15},
	{ProductID: "PROD003", Name: "Wireless Earbuds", Description: "Premium wireless earbuds with noise cancellation", Price: 149.99, Quantity: 20},
	{ProductID: "PROD004", Name: "Smart Watch Elite", Description: "Advanced fitness tracking and health monitoring", Price: 299.99, Quantity: 25},
	{ProductID: "PROD005", Name: "4K Gaming Monitor", Description: "27-inch 4K monitor with 144Hz refresh rate", Price: 499.99, Quantity: 8},
	{ProductID: "PROD006", Name: "Mechanical Keyboard", Description: "RGB mechanical gaming keyboard with Cherry MX switches", Price: 129.99, Quantity: 30},
	{ProductID: "PROD007", Name: "Wireless Gaming Mouse", Description: "High-precision wireless gaming mouse with adjustable DPI", Price: 79.99, Quantity: 40},
	{ProductID: "PROD008", Name: "Tablet Pro 12.9", Description: "Professional tablet with Apple Pencil support", Price: 899.99, Quantity: 12},
	{ProductID: "PROD009", Name: "Bluetooth Speaker", Description: "Waterproof portable speaker with 24-hour battery life", Price: 199.99, Quantity: 35},
	{ProductID: "PROD010", Name: "4K Webcam", Description: "Professional 4K webcam for streaming and conferences", Price: 159.99, Quantity: 18},
	{ProductID: "PROD011", Name: "External SSD 1TB", Description: "Portable SSD with USB-C connection and 1TB storage", Price: 149.99, Quantity: 22},
	{ProductID: "PROD012", Name: "Gaming Console Pro", Description: "Next-gen gaming console with 4K graphics support", Price: 499.99, Quantity: 15},
	{ProductID: "PROD013", Name: "Wireless Charger", Description: "Fast wireless charging pad with multiple device support", Price: 39.99, Quantity: 50},
	{ProductID: "PROD014", Name: "Smart Home Hub", Description: "Central hub for controlling all smart home devices", Price: 129.99, Quantity: 28},
	{ProductID: "PROD015", Name: "Noise-Canceling Headphones", Description: "Over-ear headphones with active noise cancellation", Price: 249.99, Quantity: 20},
	{ProductID: "PROD016", Name: "Ultra-Wide Monitor", Description: "34-inch curved ultra-wide monitor for productivity", Price: 699.99, Quantity: 10},
	{ProductID: "PROD017", Name: "Graphics Card Pro", Description: "High-end graphics card for gaming and rendering", Price: 899.99, Quantity: 5},
	{ProductID: "PROD018", Name: "Camera Drone", Description: "4K camera drone with GPS and automatic return", Price: 599.99, Quantity: 15},
	{ProductID: "PROD019", Name: "Smart Security Camera", Description: "WiFi-enabled security camera with night vision", Price: 89.99, Quantity: 45},
	{ProductID: "PROD020", Name: "Power Bank 20000mAh", Description: "High-capacity power bank with fast charging support", Price: 49.99, Quantity: 60},
}

// Wipes and reseeds the product catalog with the demo inventory.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	telemetry.InitLogger()

	ctx := context.Background()
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Client().Disconnect(ctx)

	collection := mongoDB.Collection("products")
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		slog.Error("failed to clear products", "error", err)
		os.Exit(1)
	}

	repo := repository.NewProductRepository(mongoDB)
	for i := range products {
		if err := repo.Insert(ctx, &products[i]); err != nil {
			slog.Error("failed to insert product", "productId", products[i].ProductID, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("products seeded successfully", "count", len(products))
}
