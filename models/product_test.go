package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProduct_EffectivePrice(t *testing.T) {
	p := testProduct("rice", 20)
	assert.Equal(t, 20.0, p.EffectivePrice())

	p.Discount = 25
	assert.Equal(t, 15.0, p.EffectivePrice())

	p.Discount = 33
	assert.Equal(t, 13.4, p.EffectivePrice())
}

func TestProduct_AddReview_AggregateRating(t *testing.T) {
	p := testProduct("rice", 20)
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	p.AddReview(Review{UserID: alice, Rating: 5})
	assert.Equal(t, 1, p.NumReviews)
	assert.Equal(t, 5.0, p.Rating)

	p.AddReview(Review{UserID: bob, Rating: 2})
	assert.Equal(t, 2, p.NumReviews)
	assert.Equal(t, 3.5, p.Rating)

	assert.True(t, p.HasReviewBy(alice))
	assert.False(t, p.HasReviewBy(primitive.NewObjectID()))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 10.0, Round2(10))
}
