package enums

import "fmt"

// ItemKind classifies a catalog entry as a menu item or a one-of-a-kind
// artwork. It is fixed when the catalog record is created and copied onto
// every line item at add time; nothing downstream re-derives it.
type ItemKind string

const (
	ItemKindMenu ItemKind = "menu"
	ItemKindArt  ItemKind = "art"
)

var validItemKinds = []ItemKind{
	ItemKindMenu,
	ItemKindArt,
}

// String implements fmt.Stringer.
func (k ItemKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ItemKind.
func (k ItemKind) IsValid() bool {
	for _, candidate := range validItemKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseItemKind converts raw input into an ItemKind.
func ParseItemKind(value string) (ItemKind, error) {
	for _, candidate := range validItemKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item kind %q", value)
}
