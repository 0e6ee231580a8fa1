package checkout

import (
	"gofurn.io/storefront/models"
	"gofurn.io/storefront/models/enum"
)

// Action is one member of the closed set of checkout field updates. Apply
// consumes an action and returns a new state; no action is rejected at the
// field level, validation happens at submission.
type Action interface {
	apply(state models.CheckoutState) models.CheckoutState
}

type SetDeliveryOption struct {
	Option enum.DeliveryOption
}

func (a SetDeliveryOption) apply(state models.CheckoutState) models.CheckoutState {
	state.DeliveryOption = a.Option
	return state
}

type SetPaymentType struct {
	Type enum.PaymentType
}

func (a SetPaymentType) apply(state models.CheckoutState) models.CheckoutState {
	state.PaymentType = a.Type
	return state
}

type SetTermMonths struct {
	Months uint64
}

func (a SetTermMonths) apply(state models.CheckoutState) models.CheckoutState {
	state.TermMonths = a.Months
	return state
}

type SetAgreedToTerms struct {
	Agreed bool
}

func (a SetAgreedToTerms) apply(state models.CheckoutState) models.CheckoutState {
	state.AgreedToTerms = a.Agreed
	return state
}

type SetBillingAddress struct {
	Address models.Address
}

func (a SetBillingAddress) apply(state models.CheckoutState) models.CheckoutState {
	state.BillingAddress = a.Address
	return state
}

// Apply is the pure transition function over checkout field updates. The
// input state is never mutated.
func Apply(state models.CheckoutState, action Action) models.CheckoutState {
	return action.apply(state)
}
