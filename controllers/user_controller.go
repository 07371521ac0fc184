package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/database"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/errs"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/logger"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/models"
)

func GetProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		errs.Respond(c, errs.NotFound("user not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fetch success", "data": user})
}

// GetFavorites lists the products on the user's favorites list.
func GetFavorites(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		errs.Respond(c, errs.NotFound("user not found"))
		return
	}

	products := []models.Product{}
	if len(user.Favorites) > 0 {
		cursor, err := database.ProductCollection.Find(ctx, bson.M{"_id": bson.M{"$in": user.Favorites}})
		if err != nil {
			errs.Respond(c, errs.Internal("failed to list favorites", err))
			return
		}
		if err := cursor.All(ctx, &products); err != nil {
			errs.Respond(c, errs.Internal("failed to list favorites", err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "fetch success", "data": products})
}

// AddFavorite puts a product on the favorites list. $addToSet keeps the
// list duplicate-free even under concurrent adds.
func AddFavorite(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := objectIDParam(c, "productId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Err(); err != nil {
		errs.Respond(c, errs.NotFound("product not found"))
		return
	}

	_, err := database.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"favorites": productID}},
	)
	if err != nil {
		logger.L.Error("failed to add favorite", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to add favorite", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "added to favorites", "productId": productID.Hex()})
}

// RemoveFavorite drops a product from the favorites list. Removing an
// absent product is a no-op.
func RemoveFavorite(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := objectIDParam(c, "productId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := database.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"favorites": productID}},
	)
	if err != nil {
		logger.L.Error("failed to remove favorite", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to remove favorite", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed from favorites", "productId": productID.Hex()})
}
