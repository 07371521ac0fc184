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

// GetOrdersAdmin lists every order with the owner's name attached.
func GetOrdersAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.OrderCollection.Find(ctx, bson.M{})
	if err != nil {
		logger.L.Error("failed to list orders", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to list orders", err))
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		logger.L.Error("failed to decode orders", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to list orders", err))
		return
	}

	resp := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		ownerName := ""
		var owner models.User
		if err := database.UserCollection.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&owner); err == nil {
			ownerName = owner.Name
		}
		resp = append(resp, gin.H{"order": order, "userName": ownerName})
	}

	c.JSON(http.StatusOK, gin.H{"message": "fetch success", "data": resp})
}

// DeliverOrder marks an order delivered, stamping the delivery flags and
// forcing the status to Delivered.
func DeliverOrder(c *gin.Context) {
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

	order.MarkDelivered(time.Now())

	_, err = database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{
			"isDelivered": order.IsDelivered,
			"deliveredAt": order.DeliveredAt,
			"status":      order.Status,
		}},
	)
	if err != nil {
		logger.L.Error("failed to mark order delivered", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to mark order delivered", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order delivered", "data": order})
}

// UpdateOrderStatus sets an order's status to any of the enumerated values.
// Setting Delivered through here also stamps the delivery flags.
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := findOrder(ctx, orderID)
	if err != nil {
		errs.Respond(c, err)
		return
	}

	if err := order.SetStatus(body.Status, time.Now()); err != nil {
		errs.Respond(c, err)
		return
	}

	_, err = database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{
			"status":      order.Status,
			"isDelivered": order.IsDelivered,
			"deliveredAt": order.DeliveredAt,
		}},
	)
	if err != nil {
		logger.L.Error("failed to update order status", zap.Error(err))
		errs.Respond(c, errs.Internal("failed to update order status", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order status updated", "data": order})
}
