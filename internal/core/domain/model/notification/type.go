package notification

import (
	"marketplace/internal/pkg/errs"
)

// Type is the closed enumeration of notification kinds the system emits.
type Type int

const (
	// TypeUnknown represents an invalid or undefined type.
	TypeUnknown Type = iota

	// TypeNewOrder is sent to each seller and to the admin when an order
	// is created.
	TypeNewOrder

	// TypeOrderStatusUpdated is sent to the buyer when the overall status
	// of their order changes.
	TypeOrderStatusUpdated

	// TypeDeliveryAssigned is sent to a courier when an order is assigned
	// to them.
	TypeDeliveryAssigned

	// TypeOrderDelivered is sent to the buyer on delivery completion.
	TypeOrderDelivered

	// TypeLowStock is sent to a seller when an order drops one of their
	// products below the low-stock threshold.
	TypeLowStock
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:            "Unknown",
		TypeNewOrder:           "NewOrder",
		TypeOrderStatusUpdated: "OrderStatusUpdated",
		TypeDeliveryAssigned:   "DeliveryAssigned",
		TypeOrderDelivered:     "OrderDelivered",
		TypeLowStock:           "LowStock",
	}
}

// Validate checks if the Type value is one of the defined kinds.
func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok || t == TypeUnknown {
		return errs.NewValueIsInvalidError("notification type is invalid")
	}
	return nil
}

// String returns the name of the type. Implements fmt.Stringer.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// Priority indicates how prominently a notification should surface.
type Priority int

const (
	// PriorityLow marks informational notifications.
	PriorityLow Priority = iota

	// PriorityNormal is the default.
	PriorityNormal

	// PriorityHigh marks notifications that need prompt attention,
	// e.g. low stock.
	PriorityHigh
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityLow:    "Low",
		PriorityNormal: "Normal",
		PriorityHigh:   "High",
	}
}

// Validate checks if the Priority value is defined.
func (p Priority) Validate() error {
	if _, ok := getPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidError("priority is invalid")
	}
	return nil
}

// String returns the name of the priority. Implements fmt.Stringer.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
