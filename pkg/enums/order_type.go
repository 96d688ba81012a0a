package enums

import "fmt"

// OrderType records which side of the catalog an order was cut from.
type OrderType string

const (
	OrderTypeMenu  OrderType = "menu"
	OrderTypeArt   OrderType = "art"
	OrderTypeMixed OrderType = "mixed"
)

var validOrderTypes = []OrderType{
	OrderTypeMenu,
	OrderTypeArt,
	OrderTypeMixed,
}

// String implements fmt.Stringer.
func (o OrderType) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderType.
func (o OrderType) IsValid() bool {
	for _, candidate := range validOrderTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderType converts raw input into an OrderType.
func ParseOrderType(value string) (OrderType, error) {
	for _, candidate := range validOrderTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order type %q", value)
}
