package enum

// CheckoutStatus 表示結帳流程的狀態
type CheckoutStatus string

const (
	CheckoutStatusEditing         CheckoutStatus = "editing"
	CheckoutStatusSubmitting      CheckoutStatus = "submitting"
	CheckoutStatusAwaitingPayment CheckoutStatus = "awaiting_payment"
	CheckoutStatusConfirmed       CheckoutStatus = "confirmed"
	CheckoutStatusFailed          CheckoutStatus = "failed"
)

// IsTerminal reports whether the flow can still make progress. Failed is not
// terminal: a failed submission drops the flow back to editing for retry.
func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusConfirmed
}

func (s CheckoutStatus) String() string {
	return string(s)
}
