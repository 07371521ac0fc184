package controllers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/errs"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/logger"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/models"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/payment"
)

// CreatePaymentIntent obtains a client-confirmable payment handle from
// Stripe for an amount in minor currency units.
func CreatePaymentIntent(c *gin.Context) {
	if _, _, ok := currentUser(c); !ok {
		return
	}

	var body struct {
		Amount  int64  `json:"amount"`
		OrderID string `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	clientSecret, err := payment.CreateIntent(body.Amount, body.OrderID)
	if err != nil {
		if errs.KindOf(err) == errs.KindPaymentGateway {
			logger.L.Warn("payment intent failed", zap.Error(err))
		}
		errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// StripeWebhook is the gateway-driven payment confirmation path. It applies
// the same paid transition the client PUT /pay path does, so an order still
// reaches its paid state when the client disconnects right after paying.
// Authenticated by the Stripe signature header, not a bearer token.
func StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unreadable payload"})
		return
	}

	intent, err := payment.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		errs.Respond(c, err)
		return
	}
	if intent == nil {
		// Event type we don't act on; acknowledge it.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	orderHex := intent.Metadata["orderId"]
	orderID, err := primitive.ObjectIDFromHex(orderHex)
	if err != nil {
		logger.L.Warn("webhook payment intent without order metadata",
			zap.String("paymentIntent", intent.ID))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = applyPayment(ctx, orderID, models.PaymentResult{
		TransactionID: intent.ID,
		Status:        string(intent.Status),
		UpdateTime:    time.Now().UTC().Format(time.RFC3339),
		PayerEmail:    intent.ReceiptEmail,
	})
	if err != nil {
		logger.L.Error("webhook failed to mark order paid",
			zap.String("orderId", orderHex), zap.Error(err))
		errs.Respond(c, err)
		return
	}

	logger.L.Info("order paid via webhook",
		zap.String("orderId", orderHex), zap.String("paymentIntent", intent.ID))
	c.JSON(http.StatusOK, gin.H{"received": true})
}
