package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testProduct(name string, price float64) Product {
	return Product{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Image: "https://img.example.com/" + name + ".jpg",
		Price: price,
		Stock: 100,
	}
}

func cartTotal(c Cart) float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return Round2(total)
}

func TestCart_AddItem_Snapshot(t *testing.T) {
	apples := testProduct("apples", 5)
	cart := EmptyCart(primitive.NewObjectID())

	cart.AddItem(apples, 2)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, apples.ID, cart.Items[0].ProductID)
	assert.Equal(t, "apples", cart.Items[0].Name)
	assert.Equal(t, 5.0, cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 10.0, cart.TotalPrice)
}

func TestCart_AddItem_AccumulatesQuantity(t *testing.T) {
	apples := testProduct("apples", 5)
	cart := EmptyCart(primitive.NewObjectID())

	cart.AddItem(apples, 2)
	cart.AddItem(apples, 3)

	require.Len(t, cart.Items, 1, "same product must not create a duplicate line")
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 25.0, cart.TotalPrice)
}

func TestCart_AddItem_DiscountedPriceSnapshot(t *testing.T) {
	bananas := testProduct("bananas", 10)
	bananas.Discount = 20

	cart := EmptyCart(primitive.NewObjectID())
	cart.AddItem(bananas, 1)

	assert.Equal(t, 8.0, cart.Items[0].Price)
}

func TestCart_TotalInvariant(t *testing.T) {
	apples := testProduct("apples", 2.5)
	bread := testProduct("bread", 3.2)
	milk := testProduct("milk", 1.15)

	cart := EmptyCart(primitive.NewObjectID())

	steps := []func(){
		func() { cart.AddItem(apples, 3) },
		func() { cart.AddItem(bread, 1) },
		func() { cart.AddItem(milk, 6) },
		func() { cart.AddItem(apples, 2) },
		func() { cart.SetQuantity(cart.Items[1].ID, 4) },
		func() { cart.RemoveItem(cart.Items[0].ID) },
		func() { cart.SetQuantity(cart.Items[0].ID, 1) },
	}
	for i, step := range steps {
		step()
		assert.Equal(t, cartTotal(cart), cart.TotalPrice, "total stale after step %d", i)
	}
}

func TestCart_SetQuantity_Absolute(t *testing.T) {
	apples := testProduct("apples", 5)
	cart := EmptyCart(primitive.NewObjectID())
	cart.AddItem(apples, 2)

	found := cart.SetQuantity(cart.Items[0].ID, 7)

	require.True(t, found)
	assert.Equal(t, 7, cart.Items[0].Quantity, "set is absolute, not a delta")
	assert.Equal(t, 35.0, cart.TotalPrice)
}

func TestCart_SetQuantity_ZeroRemovesLine(t *testing.T) {
	apples := testProduct("apples", 5)
	bread := testProduct("bread", 3)
	cart := EmptyCart(primitive.NewObjectID())
	cart.AddItem(apples, 2)
	cart.AddItem(bread, 1)

	found := cart.SetQuantity(cart.Items[0].ID, 0)

	require.True(t, found)
	require.Len(t, cart.Items, 1, "zero quantity must remove the line, not store it")
	assert.Equal(t, bread.ID, cart.Items[0].ProductID)
	assert.Equal(t, 3.0, cart.TotalPrice)
}

func TestCart_SetQuantity_NegativeRemovesLine(t *testing.T) {
	apples := testProduct("apples", 5)
	cart := EmptyCart(primitive.NewObjectID())
	cart.AddItem(apples, 2)

	found := cart.SetQuantity(cart.Items[0].ID, -3)

	require.True(t, found)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCart_SetQuantity_UnknownLine(t *testing.T) {
	cart := EmptyCart(primitive.NewObjectID())
	cart.AddItem(testProduct("apples", 5), 2)

	found := cart.SetQuantity(primitive.NewObjectID(), 3)

	assert.False(t, found)
}

func TestCart_RemoveItem_Idempotent(t *testing.T) {
	apples := testProduct("apples", 5)
	cart := EmptyCart(primitive.NewObjectID())
	cart.AddItem(apples, 2)

	before := cart.TotalPrice
	cart.RemoveItem(primitive.NewObjectID())

	assert.Len(t, cart.Items, 1, "removing an absent line must leave the cart unchanged")
	assert.Equal(t, before, cart.TotalPrice)

	cart.RemoveItem(cart.Items[0].ID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCart_Clear(t *testing.T) {
	cart := EmptyCart(primitive.NewObjectID())
	cart.AddItem(testProduct("apples", 5), 2)
	cart.AddItem(testProduct("bread", 3), 1)

	cart.Clear()

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
	assert.True(t, cart.IsEmpty())
}
