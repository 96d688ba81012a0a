package enums

import "fmt"

// MenuCategory partitions the drinks/food side of the catalog.
type MenuCategory string

const (
	MenuCategoryCold       MenuCategory = "cold"
	MenuCategoryHot        MenuCategory = "hot"
	MenuCategoryManualBrew MenuCategory = "manual-brew"
	MenuCategoryShakesTea  MenuCategory = "shakes-tea"
	MenuCategoryFood       MenuCategory = "food"
)

var validMenuCategories = []MenuCategory{
	MenuCategoryCold,
	MenuCategoryHot,
	MenuCategoryManualBrew,
	MenuCategoryShakesTea,
	MenuCategoryFood,
}

// String implements fmt.Stringer.
func (m MenuCategory) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MenuCategory.
func (m MenuCategory) IsValid() bool {
	for _, candidate := range validMenuCategories {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMenuCategory converts raw input into a MenuCategory.
func ParseMenuCategory(value string) (MenuCategory, error) {
	for _, candidate := range validMenuCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu category %q", value)
}
