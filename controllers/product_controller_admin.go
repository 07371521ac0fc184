package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/database"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/errs"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/logger"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/models"
)

func CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all required fields must be set"})
		return
	}

	product.ID = primitive.NewObjectID()
	product.Reviews = []models.Review{}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.ProductCollection.InsertOne(ctx, product); err != nil {
		logger.L.Error("failed to create product", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to create product", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "product created", "data": product})
}

func GetProductsAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.ProductCollection.Find(ctx, bson.M{})
	if err != nil {
		errs.Respond(c, errs.Internal("failed to list products", err))
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		errs.Respond(c, errs.Internal("failed to list products", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "fetch success",
		"count":   len(products),
		"data":    products,
	})
}

func UpdateProduct(c *gin.Context) {
	productID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Image       *string  `json:"image"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Discount    *float64 `json:"discount"`
		Stock       *int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	update := bson.M{}
	if body.Name != nil {
		update["name"] = *body.Name
	}
	if body.Description != nil {
		update["description"] = *body.Description
	}
	if body.Image != nil {
		update["image"] = *body.Image
	}
	if body.Category != nil {
		update["category"] = *body.Category
	}
	if body.Price != nil {
		update["price"] = *body.Price
	}
	if body.Discount != nil {
		update["discount"] = *body.Discount
	}
	if body.Stock != nil {
		update["stock"] = *body.Stock
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err := database.ProductCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": productID}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		errs.Respond(c, errs.NotFound("product not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product updated", "data": updated})
}

func DeleteProduct(c *gin.Context) {
	productID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := database.ProductCollection.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		logger.L.Error("failed to delete product", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to delete product", err))
		return
	}
	if res.DeletedCount == 0 {
		errs.Respond(c, errs.NotFound("product not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted", "id": productID.Hex()})
}
