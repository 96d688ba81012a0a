package types

import "strings"

// Address is the delivery address snapshot stored on an order.
type Address struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// IsZero reports whether no field carries a value.
func (a Address) IsZero() bool {
	return strings.TrimSpace(a.Name) == "" &&
		strings.TrimSpace(a.Phone) == "" &&
		strings.TrimSpace(a.Street) == "" &&
		strings.TrimSpace(a.City) == "" &&
		strings.TrimSpace(a.State) == "" &&
		strings.TrimSpace(a.Pincode) == ""
}
