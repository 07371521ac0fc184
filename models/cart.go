package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a line in a user's cart. Name, image and price are snapshots
// taken from the product at add time; a later catalog change never touches
// lines already in a cart.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart is the single mutable cart document a user owns. Version backs
// optimistic concurrency: every persisted mutation increments it and writes
// are conditional on the version read.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Items      []CartItem         `bson:"items" json:"items"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Version    int64              `bson:"version" json:"-"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EmptyCart is what callers get for a user who never added anything.
func EmptyCart(userID primitive.ObjectID) Cart {
	return Cart{UserID: userID, Items: []CartItem{}, TotalPrice: 0}
}

// RecomputeTotal derives the cart total from its lines. Every mutating
// method calls it, so TotalPrice is never stale.
func (c *Cart) RecomputeTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.TotalPrice = Round2(total)
}

// AddItem merges quantity into an existing line for the same product, or
// appends a new line snapshotted from p.
func (c *Cart) AddItem(p Product, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity += quantity
			c.RecomputeTotal()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ID:        primitive.NewObjectID(),
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Price:     p.EffectivePrice(),
		Quantity:  quantity,
	})
	c.RecomputeTotal()
}

// SetQuantity sets a line's quantity to an absolute value. A quantity of
// zero or less removes the line, keeping the quantity >= 1 invariant.
// Returns false when no line matches.
func (c *Cart) SetQuantity(lineItemID primitive.ObjectID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ID == lineItemID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.RecomputeTotal()
			return true
		}
	}
	return false
}

// RemoveItem drops the matching line. Removing an absent line is a no-op.
func (c *Cart) RemoveItem(lineItemID primitive.ObjectID) {
	filtered := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != lineItemID {
			filtered = append(filtered, item)
		}
	}
	c.Items = filtered
	c.RecomputeTotal()
}

// Clear empties the cart. The document stays; only its contents go.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.TotalPrice = 0
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
