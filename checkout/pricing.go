package checkout

import (
	"math"

	"gofurn.io/storefront/models"
	"gofurn.io/storefront/models/enum"
)

const (
	// TaxRate applies to the merchandise subtotal only, not the delivery fee.
	TaxRate = 0.15

	// MonthlyInterestRate is the flat monthly rate for installment credit.
	MonthlyInterestRate = 0.02

	MinTermMonths = 1
	MaxTermMonths = 36
)

var deliveryFees = map[enum.DeliveryOption]float64{
	enum.DeliveryOptionStandard: 10,
	enum.DeliveryOptionExpress:  20,
	enum.DeliveryOptionPickup:   0,
}

// DeliveryFee returns the flat fee for the option.
func DeliveryFee(option enum.DeliveryOption) float64 {
	return deliveryFees[option]
}

// Pricing is the order total breakdown, always derived, never stored.
type Pricing struct {
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	Total       float64

	// MonthlyPayment is zero unless the payment type is credit.
	MonthlyPayment float64
}

// Price computes the breakdown for the given cart subtotal and checkout
// state.
func Price(subtotal float64, state models.CheckoutState) Pricing {
	p := Pricing{
		Subtotal:    subtotal,
		DeliveryFee: DeliveryFee(state.DeliveryOption),
		Tax:         subtotal * TaxRate,
	}
	p.Total = p.Subtotal + p.DeliveryFee + p.Tax

	if state.PaymentType == enum.PaymentTypeCredit {
		p.MonthlyPayment = Amortize(p.Total, state.TermMonths, MonthlyInterestRate)
	}
	return p
}

// Amortize computes the fixed installment for total spread over termMonths
// at monthly rate r. At r = 0 the formula is undefined and the limit is the
// equal split, so that is returned directly.
func Amortize(total float64, termMonths uint64, r float64) float64 {
	if termMonths == 0 {
		return 0
	}
	if r == 0 {
		return total / float64(termMonths)
	}

	factor := math.Pow(1+r, float64(termMonths))
	return total * (r * factor) / (factor - 1)
}
