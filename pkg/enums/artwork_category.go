package enums

import "fmt"

// ArtworkCategory partitions the gallery side of the catalog.
type ArtworkCategory string

const (
	ArtworkCategoryPainting    ArtworkCategory = "painting"
	ArtworkCategoryPhotography ArtworkCategory = "photography"
	ArtworkCategorySculpture   ArtworkCategory = "sculpture"
	ArtworkCategoryDigital     ArtworkCategory = "digital"
)

var validArtworkCategories = []ArtworkCategory{
	ArtworkCategoryPainting,
	ArtworkCategoryPhotography,
	ArtworkCategorySculpture,
	ArtworkCategoryDigital,
}

// String implements fmt.Stringer.
func (a ArtworkCategory) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ArtworkCategory.
func (a ArtworkCategory) IsValid() bool {
	for _, candidate := range validArtworkCategories {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseArtworkCategory converts raw input into an ArtworkCategory.
func ParseArtworkCategory(value string) (ArtworkCategory, error) {
	for _, candidate := range validArtworkCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid artwork category %q", value)
}
