package main

// @title Inventory Service API
// @version 1.0
// @description Shop inventory management API with event publishing to the message bus

// @contact.name API Support
// @contact.url http://github.com/pixelbloom/inventory-service
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/pixelbloom/inventory-service/blob/main/LICENSE

// @host localhost:8001
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Inventory
// @tag.description Inventory item endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
