package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/database"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/errs"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/logger"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/mailer"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/models"
)

// CreateOrder turns the user's cart into a pending order. Stock decrements,
// the order insert, and the cart clear commit in one transaction, so a
// failure anywhere leaves both cart and stock untouched. Pricing is
// recomputed server-side from the cart; client-supplied pricing fields are
// ignored.
func CreateOrder(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var body struct {
		ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
		PaymentMethod   models.PaymentMethod   `json:"paymentMethod" binding:"required"`
		// Accepted for client compatibility, never trusted.
		OrderItems    []models.OrderItem `json:"orderItems"`
		ItemsPrice    float64            `json:"itemsPrice"`
		TaxPrice      float64            `json:"taxPrice"`
		ShippingPrice float64            `json:"shippingPrice"`
		TotalPrice    float64            `json:"totalPrice"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	if !body.PaymentMethod.IsValid() {
		errs.Respond(c, errs.Validation("invalid payment method %q", body.PaymentMethod))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		cart, found, err := findCart(sc, userID)
		if err != nil {
			return nil, err
		}
		if !found || cart.IsEmpty() {
			return nil, errs.Validation("cart is empty")
		}

		for _, line := range cart.Items {
			res, err := database.ProductCollection.UpdateOne(sc,
				bson.M{"_id": line.ProductID, "stock": bson.M{"$gte": line.Quantity}},
				bson.M{"$inc": bson.M{"stock": -line.Quantity}},
			)
			if err != nil {
				return nil, err
			}
			if res.ModifiedCount == 0 {
				return nil, errs.Conflict("not enough stock for %s", line.Name)
			}
		}

		pricing := models.ComputePricing(cart.TotalPrice, cfg.Pricing)
		order := models.NewOrderFromCart(cart, body.ShippingAddress, body.PaymentMethod, pricing)

		if _, err := database.OrderCollection.InsertOne(sc, order); err != nil {
			return nil, err
		}

		_, err = database.CartCollection.UpdateOne(sc,
			bson.M{"_id": cart.ID},
			bson.M{
				"$set": bson.M{"items": []models.CartItem{}, "totalPrice": 0.0, "updatedAt": time.Now()},
				"$inc": bson.M{"version": 1},
			},
		)
		if err != nil {
			return nil, err
		}
		return order, nil
	})
	if err != nil {
		if errs.KindOf(err) == errs.KindInternal {
			logger.L.Error("checkout failed", zap.Error(err))
		}
		errs.Respond(c, err)
		return
	}
	order := result.(models.Order)

	// Confirmation mail is best-effort and never fails the checkout.
	if mailer.Enabled() {
		var owner models.User
		if err := database.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&owner); err == nil {
			if err := mailer.SendOrderConfirmation(owner.Email, order); err != nil {
				logger.L.Warn("order confirmation mail failed",
					zap.String("orderId", order.ID.Hex()), zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "order created", "data": order})
}

func findOrder(ctx context.Context, orderID primitive.ObjectID) (models.Order, error) {
	var order models.Order
	err := database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, errs.NotFound("order not found")
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// GetOrderByID returns an order with its owner's name and email populated.
// Only the owner and admins may read it.
func GetOrderByID(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := findOrder(ctx, orderID)
	if err != nil {
		errs.Respond(c, err)
		return
	}
	if !order.AccessibleBy(userID, role) {
		errs.Respond(c, errs.Forbidden("not allowed to view this order"))
		return
	}

	var owner models.User
	ownerInfo := gin.H{}
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&owner); err == nil {
		ownerInfo = gin.H{"name": owner.Name, "email": owner.Email}
	}

	c.JSON(http.StatusOK, gin.H{"message": "fetch success", "data": order, "user": ownerInfo})
}

// PayOrder applies a client-reported payment confirmation. The Stripe
// webhook applies the same transition independently, so this is the fast
// path, not the only path.
func PayOrder(c *gin.Context) {
	if _, _, ok := currentUser(c); !ok {
		return
	}
	orderID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		UpdateTime string `json:"update_time"`
		Payer      struct {
			EmailAddress string `json:"email_address"`
		} `json:"payer"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := applyPayment(ctx, orderID, models.PaymentResult{
		TransactionID: body.ID,
		Status:        body.Status,
		UpdateTime:    body.UpdateTime,
		PayerEmail:    body.Payer.EmailAddress,
	})
	if err != nil {
		if errs.KindOf(err) == errs.KindInternal {
			logger.L.Error("failed to mark order paid", zap.Error(err))
		}
		errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order paid", "data": order})
}

// applyPayment stamps the payment result and advances the order into
// Processing. Shared by the client pay path and the gateway webhook.
func applyPayment(ctx context.Context, orderID primitive.ObjectID, result models.PaymentResult) (models.Order, error) {
	order, err := findOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}

	order.MarkPaid(result, time.Now())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = database.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{
			"isPaid":        order.IsPaid,
			"paidAt":        order.PaidAt,
			"paymentResult": order.PaymentResult,
			"status":        order.Status,
		}},
		opts,
	).Decode(&order)
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// CancelOrder cancels an order on behalf of its owner or an admin.
// Delivered orders cannot be cancelled.
func CancelOrder(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := findOrder(ctx, orderID)
	if err != nil {
		errs.Respond(c, err)
		return
	}
	if !order.AccessibleBy(userID, role) {
		errs.Respond(c, errs.Forbidden("not allowed to cancel this order"))
		return
	}
	if err := order.Cancel(); err != nil {
		errs.Respond(c, err)
		return
	}

	_, err = database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": order.Status}},
	)
	if err != nil {
		logger.L.Error("failed to cancel order", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to cancel order", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order cancelled", "data": order})
}

// GetMyOrders lists the authenticated user's orders, newest first.
func GetMyOrders(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		logger.L.Error("failed to list orders", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to list orders", err))
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		logger.L.Error("failed to decode orders", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to list orders", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fetch success", "data": orders})
}
