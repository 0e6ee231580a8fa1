package enum

// DeliveryOption is one of the fixed shipping/pickup choices, each with a flat fee.
type DeliveryOption string

const (
	DeliveryOptionStandard DeliveryOption = "standard"
	DeliveryOptionExpress  DeliveryOption = "express"
	DeliveryOptionPickup   DeliveryOption = "pickup"
)

func (d DeliveryOption) Valid() bool {
	switch d {
	case DeliveryOptionStandard, DeliveryOptionExpress, DeliveryOptionPickup:
		return true
	}
	return false
}
