package enum

// PaymentType selects how an order is settled. The integer values are the
// wire discriminants expected by the checkout API.
type PaymentType int

const (
	PaymentTypeFull   PaymentType = 0
	PaymentTypeCredit PaymentType = 1
)

func (p PaymentType) String() string {
	switch p {
	case PaymentTypeFull:
		return "full"
	case PaymentTypeCredit:
		return "credit"
	}
	return "unknown"
}

func (p PaymentType) Valid() bool {
	return p == PaymentTypeFull || p == PaymentTypeCredit
}
