package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/database"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/errs"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/logger"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/models"
)

// cartRetries bounds the optimistic-concurrency retry loop on cart writes.
const cartRetries = 3

func findCart(ctx context.Context, userID primitive.ObjectID) (models.Cart, bool, error) {
	var cart models.Cart
	err := database.CartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return models.Cart{}, false, nil
	}
	if err != nil {
		return models.Cart{}, false, err
	}
	return cart, true, nil
}

// saveCart persists a mutated cart conditionally on the version it was read
// at. Returns false when another writer got there first.
func saveCart(ctx context.Context, cart models.Cart) (bool, error) {
	res, err := database.CartCollection.UpdateOne(ctx,
		bson.M{"_id": cart.ID, "version": cart.Version},
		bson.M{
			"$set": bson.M{
				"items":      cart.Items,
				"totalPrice": cart.TotalPrice,
				"updatedAt":  time.Now(),
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// mutateCart runs the read-mutate-conditional-write cycle, retrying on
// version conflicts so concurrent mutations by the same user never lose
// updates. mutate returns an application error to abort.
func mutateCart(ctx context.Context, userID primitive.ObjectID, mutate func(cart *models.Cart) error) (models.Cart, error) {
	for attempt := 0; attempt < cartRetries; attempt++ {
		cart, found, err := findCart(ctx, userID)
		if err != nil {
			return models.Cart{}, err
		}
		if !found {
			return models.Cart{}, errs.NotFound("cart not found")
		}

		if err := mutate(&cart); err != nil {
			return models.Cart{}, err
		}

		ok, err := saveCart(ctx, cart)
		if err != nil {
			return models.Cart{}, err
		}
		if ok {
			cart.Version++
			return cart, nil
		}
	}
	return models.Cart{}, errs.Conflict("cart was modified concurrently, please retry")
}

// GetCart returns the user's cart, or an empty cart value if they never
// added anything. Not having a cart is not an error.
func GetCart(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, found, err := findCart(ctx, userID)
	if err != nil {
		logger.L.Error("failed to fetch cart", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to fetch cart", err))
		return
	}
	if !found {
		cart = models.EmptyCart(userID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "fetch success", "data": cart})
}

// AddToCart snapshots the product into the cart, accumulating quantity when
// the product is already a line.
func AddToCart(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var body struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid productId"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		errs.Respond(c, errs.NotFound("product not found"))
		return
	}

	for attempt := 0; attempt < cartRetries; attempt++ {
		cart, found, err := findCart(ctx, userID)
		if err != nil {
			logger.L.Error("failed to fetch cart", zap.Error(err))
			errs.Respond(c, errs.Internal("failed to fetch cart", err))
			return
		}

		if !found {
			cart = models.EmptyCart(userID)
			cart.ID = primitive.NewObjectID()
			cart.AddItem(product, body.Quantity)
			cart.Version = 1
			cart.UpdatedAt = time.Now()

			_, err := database.CartCollection.InsertOne(ctx, cart)
			if mongo.IsDuplicateKeyError(err) {
				// Lost the race creating the cart; retry against it.
				continue
			}
			if err != nil {
				logger.L.Error("failed to create cart", zap.Error(err))
				errs.Respond(c, errs.Internal("failed to add to cart", err))
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "added to cart", "data": cart})
			return
		}

		cart.AddItem(product, body.Quantity)
		saved, err := saveCart(ctx, cart)
		if err != nil {
			logger.L.Error("failed to update cart", zap.Error(err))
			errs.Respond(c, errs.Internal("failed to add to cart", err))
			return
		}
		if saved {
			c.JSON(http.StatusOK, gin.H{"message": "added to cart", "data": cart})
			return
		}
	}

	errs.Respond(c, errs.Conflict("cart was modified concurrently, please retry"))
}

// UpdateCartItem sets a line's quantity to an absolute value. Quantity zero
// or below removes the line.
func UpdateCartItem(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	lineItemID, ok := objectIDParam(c, "lineItemId")
	if !ok {
		return
	}

	var body struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid quantity"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := mutateCart(ctx, userID, func(cart *models.Cart) error {
		if !cart.SetQuantity(lineItemID, *body.Quantity) {
			return errs.NotFound("line item not found in cart")
		}
		return nil
	})
	if err != nil {
		if errs.KindOf(err) == errs.KindInternal {
			logger.L.Error("failed to update cart", zap.Error(err))
		}
		errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart updated", "data": cart})
}

// RemoveFromCart drops a line item. Removing an id that is not in the cart
// leaves the cart unchanged.
func RemoveFromCart(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	lineItemID, ok := objectIDParam(c, "lineItemId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := mutateCart(ctx, userID, func(cart *models.Cart) error {
		cart.RemoveItem(lineItemID)
		return nil
	})
	if err != nil {
		if errs.KindOf(err) == errs.KindInternal {
			logger.L.Error("failed to update cart", zap.Error(err))
		}
		errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed", "data": cart})
}

// ClearCart empties the cart. The cart document itself is kept.
func ClearCart(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := mutateCart(ctx, userID, func(cart *models.Cart) error {
		cart.Clear()
		return nil
	})
	if err != nil {
		if errs.KindOf(err) == errs.KindInternal {
			logger.L.Error("failed to clear cart", zap.Error(err))
		}
		errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared", "data": cart})
}
