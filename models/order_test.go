package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/config"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/errs"
)

func testCartWithItems(t *testing.T) Cart {
	t.Helper()
	cart := EmptyCart(primitive.NewObjectID())
	cart.AddItem(testProduct("apples", 10), 2)
	cart.AddItem(testProduct("bread", 10), 1)
	return cart
}

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status OrderStatus
		valid  bool
	}{
		{StatusPending, true},
		{StatusProcessing, true},
		{StatusShipped, true},
		{StatusDelivered, true},
		{StatusCancelled, true},
		{OrderStatus("Refunded"), false},
		{OrderStatus("pending"), false},
		{OrderStatus(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.IsValid())
		})
	}
}

func TestNewPricing_TotalIsSum(t *testing.T) {
	p := NewPricing(30, 10, 4.5)

	assert.Equal(t, 30.0, p.ItemsPrice)
	assert.Equal(t, 10.0, p.ShippingPrice)
	assert.Equal(t, 4.5, p.TaxPrice)
	assert.Equal(t, 44.5, p.TotalPrice)
}

func TestComputePricing_Policy(t *testing.T) {
	policy := config.PricingPolicy{TaxRate: 0.15, ShippingFlat: 10, FreeShippingAbove: 100}

	below := ComputePricing(30, policy)
	assert.Equal(t, 30.0, below.ItemsPrice)
	assert.Equal(t, 10.0, below.ShippingPrice)
	assert.Equal(t, 4.5, below.TaxPrice)
	assert.Equal(t, 44.5, below.TotalPrice)

	above := ComputePricing(120, policy)
	assert.Equal(t, 0.0, above.ShippingPrice, "orders above the threshold ship free")
	assert.Equal(t, 18.0, above.TaxPrice)
	assert.Equal(t, 138.0, above.TotalPrice)
}

func TestNewOrderFromCart_Snapshot(t *testing.T) {
	cart := testCartWithItems(t)
	addr := ShippingAddress{Street: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"}

	order := NewOrderFromCart(cart, addr, PaymentOnlineCard, NewPricing(30, 10, 4.5))

	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, cart.UserID, order.UserID)
	assert.Equal(t, StatusPending, order.Status)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)
	assert.Nil(t, order.PaidAt)
	assert.Nil(t, order.DeliveredAt)
	assert.Equal(t, addr, order.ShippingAddress)
	assert.Equal(t, 44.5, order.TotalPrice)

	// Items are independent copies of the cart lines.
	for i, line := range cart.Items {
		assert.Equal(t, line.ProductID, order.OrderItems[i].ProductID)
		assert.Equal(t, line.Name, order.OrderItems[i].Name)
		assert.Equal(t, line.Price, order.OrderItems[i].Price)
		assert.Equal(t, line.Quantity, order.OrderItems[i].Quantity)
	}
}

func TestOrder_PriceFreeze(t *testing.T) {
	cart := testCartWithItems(t)
	order := NewOrderFromCart(cart, ShippingAddress{}, PaymentOnlineCard, NewPricing(30, 10, 4.5))

	// A later cart (or catalog) change must not reach the order.
	cart.Items[0].Price = 999
	cart.RecomputeTotal()

	assert.Equal(t, 10.0, order.OrderItems[0].Price)
	assert.Equal(t, 44.5, order.TotalPrice)
}

func TestOrder_MarkPaid(t *testing.T) {
	order := NewOrderFromCart(testCartWithItems(t), ShippingAddress{}, PaymentOnlineCard, NewPricing(30, 10, 4.5))
	now := time.Now()
	result := PaymentResult{TransactionID: "pi_123", Status: "succeeded", PayerEmail: "a@example.com"}

	order.MarkPaid(result, now)

	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, now, *order.PaidAt)
	require.NotNil(t, order.PaymentResult)
	assert.Equal(t, "pi_123", order.PaymentResult.TransactionID)
	assert.Equal(t, StatusProcessing, order.Status, "payment moves the order out of Pending")
}

func TestOrder_MarkPaid_ThenDelivered(t *testing.T) {
	order := NewOrderFromCart(testCartWithItems(t), ShippingAddress{}, PaymentOnlineCard, NewPricing(30, 10, 4.5))

	order.MarkPaid(PaymentResult{TransactionID: "pi_123"}, time.Now())
	order.MarkDelivered(time.Now())

	assert.True(t, order.IsPaid)
	assert.True(t, order.IsDelivered)
	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, StatusDelivered, order.Status)
}

func TestOrder_SetStatus(t *testing.T) {
	order := NewOrderFromCart(testCartWithItems(t), ShippingAddress{}, PaymentOnlineCard, NewPricing(30, 10, 4.5))

	require.NoError(t, order.SetStatus(StatusShipped, time.Now()))
	assert.Equal(t, StatusShipped, order.Status)
	assert.False(t, order.IsDelivered)

	err := order.SetStatus(OrderStatus("Lost"), time.Now())
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, StatusShipped, order.Status, "invalid status leaves the order unchanged")
}

func TestOrder_SetStatus_DeliveredStampsFlags(t *testing.T) {
	order := NewOrderFromCart(testCartWithItems(t), ShippingAddress{}, PaymentOnlineCard, NewPricing(30, 10, 4.5))
	now := time.Now()

	require.NoError(t, order.SetStatus(StatusDelivered, now))

	assert.True(t, order.IsDelivered, "Delivered via setStatus must stamp isDelivered")
	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, now, *order.DeliveredAt)
	assert.Equal(t, StatusDelivered, order.Status)
}

func TestOrder_Cancel(t *testing.T) {
	order := NewOrderFromCart(testCartWithItems(t), ShippingAddress{}, PaymentOnlineCard, NewPricing(30, 10, 4.5))

	require.NoError(t, order.Cancel())
	assert.Equal(t, StatusCancelled, order.Status)

	// Re-cancelling is accepted and changes nothing.
	require.NoError(t, order.Cancel())
	assert.Equal(t, StatusCancelled, order.Status)
}

func TestOrder_Cancel_DeliveredGuard(t *testing.T) {
	order := NewOrderFromCart(testCartWithItems(t), ShippingAddress{}, PaymentOnlineCard, NewPricing(30, 10, 4.5))
	order.MarkDelivered(time.Now())

	err := order.Cancel()

	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, StatusDelivered, order.Status, "failed cancel leaves status unchanged")
}

func TestOrder_AccessibleBy(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	order := Order{UserID: owner}

	assert.True(t, order.AccessibleBy(owner, RoleCustomer))
	assert.True(t, order.AccessibleBy(stranger, RoleAdmin))
	assert.False(t, order.AccessibleBy(stranger, RoleCustomer))
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, PaymentOnlineCard.IsValid())
	assert.True(t, PaymentCashOnDelivery.IsValid())
	assert.False(t, PaymentMethod("paypal").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}
