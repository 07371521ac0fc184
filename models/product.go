package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" binding:"required"`
	Description string             `bson:"description" json:"description" binding:"required"`
	Image       string             `bson:"image" json:"image"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price" binding:"required"`
	Discount    float64            `bson:"discount" json:"discount"`
	Stock       int                `bson:"stock" json:"stock" binding:"required"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	Rating      float64            `bson:"rating" json:"rating"`
	NumReviews  int                `bson:"numReviews" json:"numReviews"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EffectivePrice is the unit price after discount, rounded to cents. This
// is the price snapshotted into cart lines.
func (p Product) EffectivePrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return Round2(p.Price * (1 - p.Discount/100))
}

// AddReview appends r and refreshes the aggregate rating.
func (p *Product) AddReview(r Review) {
	p.Reviews = append(p.Reviews, r)
	p.NumReviews = len(p.Reviews)

	sum := 0
	for _, rev := range p.Reviews {
		sum += rev.Rating
	}
	p.Rating = Round2(float64(sum) / float64(p.NumReviews))
}

// HasReviewBy reports whether userID already reviewed this product.
func (p Product) HasReviewBy(userID primitive.ObjectID) bool {
	for _, rev := range p.Reviews {
		if rev.UserID == userID {
			return true
		}
	}
	return false
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
