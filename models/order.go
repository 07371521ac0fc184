package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/config"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/errs"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentOnlineCard     PaymentMethod = "online-card"
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentOnlineCard || m == PaymentCashOnDelivery
}

type ShippingAddress struct {
	Street     string `bson:"street" json:"street" binding:"required"`
	City       string `bson:"city" json:"city" binding:"required"`
	PostalCode string `bson:"postalCode" json:"postalCode" binding:"required"`
	Country    string `bson:"country" json:"country" binding:"required"`
}

// PaymentResult is the opaque confirmation the gateway (or our webhook)
// reports back. Stored as-is; never interpreted beyond display.
type PaymentResult struct {
	TransactionID string `bson:"transactionId" json:"id"`
	Status        string `bson:"status" json:"status"`
	UpdateTime    string `bson:"updateTime" json:"update_time"`
	PayerEmail    string `bson:"payerEmail" json:"payer_email"`
}

// OrderItem has the same shape as CartItem but is immutable once written.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Pricing is an order's monetary breakdown, computed once at creation and
// never recomputed afterward.
type Pricing struct {
	ItemsPrice    float64 `bson:"itemsPrice" json:"itemsPrice"`
	ShippingPrice float64 `bson:"shippingPrice" json:"shippingPrice"`
	TaxPrice      float64 `bson:"taxPrice" json:"taxPrice"`
	TotalPrice    float64 `bson:"totalPrice" json:"totalPrice"`
}

// NewPricing fixes the total as items + shipping + tax.
func NewPricing(items, shipping, tax float64) Pricing {
	return Pricing{
		ItemsPrice:    Round2(items),
		ShippingPrice: Round2(shipping),
		TaxPrice:      Round2(tax),
		TotalPrice:    Round2(items + shipping + tax),
	}
}

// ComputePricing applies the server-held tax and shipping policy to a cart
// total. Orders above the free-shipping threshold ship free.
func ComputePricing(itemsPrice float64, policy config.PricingPolicy) Pricing {
	shipping := policy.ShippingFlat
	if policy.FreeShippingAbove > 0 && itemsPrice >= policy.FreeShippingAbove {
		shipping = 0
	}
	tax := Round2(itemsPrice * policy.TaxRate)
	return NewPricing(itemsPrice, shipping, tax)
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	OrderItems      []OrderItem        `bson:"orderItems" json:"orderItems"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentResult   *PaymentResult     `bson:"paymentResult,omitempty" json:"paymentResult,omitempty"`
	Pricing         `bson:",inline"`
	IsPaid          bool        `bson:"isPaid" json:"isPaid"`
	PaidAt          *time.Time  `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsDelivered     bool        `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt     *time.Time  `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	Status          OrderStatus `bson:"status" json:"status"`
	CreatedAt       time.Time   `bson:"createdAt" json:"createdAt"`
}

// NewOrderFromCart freezes a cart's lines into a pending order. The caller
// validates the cart is non-empty and supplies the computed pricing.
func NewOrderFromCart(cart Cart, addr ShippingAddress, method PaymentMethod, pricing Pricing) Order {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Image:     line.Image,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return Order{
		ID:              primitive.NewObjectID(),
		UserID:          cart.UserID,
		OrderItems:      items,
		ShippingAddress: addr,
		PaymentMethod:   method,
		Pricing:         pricing,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
	}
}

// MarkPaid records a payment confirmation and moves the order into
// Processing regardless of its prior status. Calling it twice re-stamps
// PaidAt with the later confirmation.
func (o *Order) MarkPaid(result PaymentResult, now time.Time) {
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
	o.Status = StatusProcessing
}

// MarkDelivered stamps delivery and forces the status to Delivered.
func (o *Order) MarkDelivered(now time.Time) {
	o.IsDelivered = true
	o.DeliveredAt = &now
	o.Status = StatusDelivered
}

// SetStatus applies an admin status override. Setting Delivered through
// this path also stamps the delivery flags so IsDelivered stays consistent
// with the status.
func (o *Order) SetStatus(status OrderStatus, now time.Time) error {
	if !status.IsValid() {
		return errs.Validation("invalid order status %q", status)
	}
	o.Status = status
	if status == StatusDelivered {
		o.IsDelivered = true
		o.DeliveredAt = &now
	}
	return nil
}

// Cancel marks the order cancelled. Delivered orders cannot be cancelled;
// cancelling an already-cancelled order is accepted and changes nothing.
func (o *Order) Cancel() error {
	if o.IsDelivered {
		return errs.Conflict("cannot cancel delivered order")
	}
	o.Status = StatusCancelled
	return nil
}

// AccessibleBy reports whether userID may read or cancel this order: the
// owner and admins only.
func (o Order) AccessibleBy(userID primitive.ObjectID, role string) bool {
	return role == RoleAdmin || o.UserID == userID
}
