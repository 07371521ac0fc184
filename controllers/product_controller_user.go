package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/database"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/errs"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/logger"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/models"
)

func GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	cursor, err := database.ProductCollection.Find(ctx, filter)
	if err != nil {
		errs.Respond(c, errs.Internal("failed to list products", err))
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		errs.Respond(c, errs.Internal("failed to list products", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fetch success", "data": products})
}

func GetProductByID(c *gin.Context) {
	productID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		errs.Respond(c, errs.NotFound("product not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fetch success", "data": product})
}

// CreateProductReview appends a review. One review per user per product.
func CreateProductReview(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "rating must be between 1 and 5"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		errs.Respond(c, errs.NotFound("product not found"))
		return
	}
	if product.HasReviewBy(userID) {
		errs.Respond(c, errs.Conflict("product already reviewed"))
		return
	}

	var reviewer models.User
	reviewerName := ""
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&reviewer); err == nil {
		reviewerName = reviewer.Name
	}

	product.AddReview(models.Review{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      reviewerName,
		Rating:    body.Rating,
		Comment:   body.Comment,
		CreatedAt: time.Now(),
	})

	_, err := database.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{
			"reviews":    product.Reviews,
			"rating":     product.Rating,
			"numReviews": product.NumReviews,
			"updatedAt":  time.Now(),
		}},
	)
	if err != nil {
		logger.L.Error("failed to save review", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to save review", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "review added", "data": product})
}
