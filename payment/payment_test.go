package payment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/errs"
)

func TestCreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []int64{0, -1, -500} {
		_, err := CreateIntent(amount, "")
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	}
}

func TestWrapErr_StripeError(t *testing.T) {
	stripeErr := &stripe.Error{
		Code: stripe.ErrorCodeCardDeclined,
		Msg:  "Your card was declined.",
		Type: stripe.ErrorTypeCard,
	}

	err := WrapErr(stripeErr)

	require.Equal(t, errs.KindPaymentGateway, errs.KindOf(err))
	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "card_declined", appErr.Code)
	assert.Equal(t, "Your card was declined.", appErr.Message)
	assert.ErrorIs(t, err, stripeErr)
}

func TestWrapErr_FallsBackToErrorType(t *testing.T) {
	stripeErr := &stripe.Error{
		Msg:  "An error occurred with our API.",
		Type: stripe.ErrorTypeAPI,
	}

	err := WrapErr(stripeErr)

	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, string(stripe.ErrorTypeAPI), appErr.Code)
}

func TestWrapErr_NonStripeError(t *testing.T) {
	cause := errors.New("connection refused")

	err := WrapErr(cause)

	require.Equal(t, errs.KindPaymentGateway, errs.KindOf(err))
	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr))
	assert.Empty(t, appErr.Code)
	assert.ErrorIs(t, err, cause)
}
