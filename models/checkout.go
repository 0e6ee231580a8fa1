package models

import (
	"gofurn.io/storefront/models/enum"
)

// Address 代表帳單地址
type Address struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
}

// CheckoutState is one immutable snapshot of the checkout form. Field
// updates go through checkout.Apply, which returns a new snapshot.
type CheckoutState struct {
	Status         enum.CheckoutStatus `json:"status"`
	DeliveryOption enum.DeliveryOption `json:"delivery_option"`
	PaymentType    enum.PaymentType    `json:"payment_type"`
	TermMonths     uint64              `json:"term_months"`
	AgreedToTerms  bool                `json:"agreed_to_terms"`
	BillingAddress Address             `json:"billing_address"`

	// Set only after the server accepted a full-payment order and the
	// hosted card widget must be rendered.
	Widget *WidgetConfig `json:"widget,omitempty"`

	// Surfaced user-facing message for the last failed submission.
	FailureMessage string `json:"failure_message,omitempty"`
}

// WidgetConfig carries everything the hosted payment widget needs to start
// a card session for an accepted order.
type WidgetConfig struct {
	Reference        string `json:"reference"` // created order id
	Email            string `json:"email"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	PublicKey        string `json:"public_key"`
}
