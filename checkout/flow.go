package checkout

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"gofurn.io/storefront/api"
	"gofurn.io/storefront/cart"
	"gofurn.io/storefront/models"
	"gofurn.io/storefront/models/enum"
)

// CheckoutAPI is the slice of the backend the flow needs.
type CheckoutAPI interface {
	SubmitOrder(ctx context.Context, req models.OrderRequest) (string, error)
	ConfirmPayment(ctx context.Context, orderID, transactionID string) error
}

var _ CheckoutAPI = (*api.Client)(nil)

// ValidationError is a pre-submission rule failure. It never reaches the
// network and its message is shown to the shopper verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Flow drives one checkout session from editing through submission to
// payment confirmation. It owns an immutable CheckoutState snapshot and
// replaces it on every transition.
//
// Editing → Submitting → {AwaitingPayment | Confirmed | Failed→Editing}
//
// The idempotency key is minted once per flow and sent on every submit, so
// retries after a failure cannot create a second order server-side.
type Flow struct {
	state          models.CheckoutState
	store          *cart.Store
	api            CheckoutAPI
	idempotencyKey string

	email     string
	publicKey string
	currency  stripe.Currency
	orderID   string

	logger *zap.Logger
}

func NewFlow(store *cart.Store, checkoutAPI CheckoutAPI, email, publicKey string, currency stripe.Currency, logger *zap.Logger) *Flow {
	return &Flow{
		state: models.CheckoutState{
			Status:         enum.CheckoutStatusEditing,
			DeliveryOption: enum.DeliveryOptionStandard,
			PaymentType:    enum.PaymentTypeFull,
			TermMonths:     12,
		},
		store:          store,
		api:            checkoutAPI,
		idempotencyKey: uuid.NewString(),
		email:          email,
		publicKey:      publicKey,
		currency:       currency,
		logger:         logger,
	}
}

// State returns the current snapshot.
func (f *Flow) State() models.CheckoutState {
	return f.state
}

// OrderID is the server-assigned id of the created order, empty until the
// submission succeeded.
func (f *Flow) OrderID() string {
	return f.orderID
}

// Dispatch applies a field update. Updates are ignored once the flow left
// editing; the form is no longer on screen at that point.
func (f *Flow) Dispatch(action Action) models.CheckoutState {
	if f.state.Status != enum.CheckoutStatusEditing {
		return f.state
	}
	f.state = Apply(f.state, action)
	return f.state
}

// Pricing derives the current total breakdown from the cart and the state.
func (f *Flow) Pricing() Pricing {
	return Price(f.store.Total(), f.state)
}

// validate checks the submission rules in order; the first failure wins.
func (f *Flow) validate() error {
	if !f.state.AgreedToTerms {
		return &ValidationError{Message: "You must accept the terms and conditions before placing an order."}
	}
	if f.store.Empty() {
		return &ValidationError{Message: "Your cart is empty."}
	}
	if f.state.PaymentType == enum.PaymentTypeCredit {
		if f.state.TermMonths < MinTermMonths || f.state.TermMonths > MaxTermMonths {
			return &ValidationError{Message: fmt.Sprintf("Credit term must be between %d and %d months.", MinTermMonths, MaxTermMonths)}
		}
	}
	addr := f.state.BillingAddress
	for _, field := range []string{addr.FullName, addr.AddressLine1, addr.City, addr.PostalCode} {
		if strings.TrimSpace(field) == "" {
			return &ValidationError{Message: "Please fill in your full name, address, city and postal code."}
		}
	}
	return nil
}

// Submit validates and posts the order. On validation failure no call is
// made and the flow stays in editing. On submission failure the cart is
// untouched and the flow returns to editing with a user-facing message.
func (f *Flow) Submit(ctx context.Context) (models.CheckoutState, error) {
	if f.state.Status != enum.CheckoutStatusEditing {
		return f.state, fmt.Errorf("checkout already %s", f.state.Status)
	}

	if err := f.validate(); err != nil {
		f.state.FailureMessage = err.Error()
		return f.state, err
	}
	f.state.FailureMessage = ""
	f.state.Status = enum.CheckoutStatusSubmitting

	pricing := f.Pricing()
	req := f.buildRequest()

	orderID, err := f.api.SubmitOrder(ctx, req)
	if err != nil {
		f.logger.Warn("Order submission failed", zap.Error(err))
		f.state.Status = enum.CheckoutStatusEditing
		f.state.FailureMessage = api.UserMessage(err)
		return f.state, err
	}
	f.orderID = orderID

	if f.state.PaymentType == enum.PaymentTypeCredit {
		// Credit orders need no card session; the order is complete.
		f.store.Clear(ctx)
		f.state.Status = enum.CheckoutStatusConfirmed
		f.logger.Info("Credit order confirmed", zap.String("order_id", orderID))
		return f.state, nil
	}

	f.state.Status = enum.CheckoutStatusAwaitingPayment
	f.state.Widget = &models.WidgetConfig{
		Reference:        orderID,
		Email:            f.email,
		AmountMinorUnits: int64(math.Round(pricing.Total * 100)),
		PublicKey:        f.publicKey,
	}
	return f.state, nil
}

// CompletePayment reports the widget's transaction reference. The order
// already exists server-side, so a confirmation failure keeps the cart and
// stays in awaiting-payment for retry rather than dropping the session.
func (f *Flow) CompletePayment(ctx context.Context, transactionID string) (models.CheckoutState, error) {
	if f.state.Status != enum.CheckoutStatusAwaitingPayment {
		return f.state, fmt.Errorf("no payment pending, checkout is %s", f.state.Status)
	}

	if err := f.api.ConfirmPayment(ctx, f.orderID, transactionID); err != nil {
		f.logger.Error("Payment confirmation failed",
			zap.String("order_id", f.orderID),
			zap.Error(err))
		f.state.FailureMessage = api.UserMessage(err)
		return f.state, err
	}

	f.store.Clear(ctx)
	f.state.Status = enum.CheckoutStatusConfirmed
	f.state.Widget = nil
	f.state.FailureMessage = ""
	f.logger.Info("Order payment confirmed", zap.String("order_id", f.orderID))
	return f.state, nil
}

// CancelPayment handles the widget being closed without paying. The flow
// drops back to editing; the server-side order stays pending.
func (f *Flow) CancelPayment() models.CheckoutState {
	if f.state.Status != enum.CheckoutStatusAwaitingPayment {
		return f.state
	}
	f.state.Status = enum.CheckoutStatusEditing
	f.state.Widget = nil
	return f.state
}

func (f *Flow) buildRequest() models.OrderRequest {
	lines := f.store.Lines()
	items := make([]models.OrderRequestItem, len(lines))
	for i, line := range lines {
		items[i] = models.OrderRequestItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	req := models.OrderRequest{
		IdempotencyKey: f.idempotencyKey,
		Items:          items,
		DeliveryOption: f.state.DeliveryOption,
		PaymentType:    f.state.PaymentType,
		BillingAddress: f.state.BillingAddress,
		Currency:       f.currency,
	}
	if f.state.PaymentType == enum.PaymentTypeCredit {
		term := f.state.TermMonths
		req.TermMonths = &term
	}
	return req
}
