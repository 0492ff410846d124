package enums

import "fmt"

// CatalogSection is the top-level storefront grouping a category belongs to.
type CatalogSection string

const (
	CatalogSectionMen         CatalogSection = "men"
	CatalogSectionWomen       CatalogSection = "women"
	CatalogSectionKids        CatalogSection = "kids"
	CatalogSectionAccessories CatalogSection = "accessories"
)

var validCatalogSections = []CatalogSection{
	CatalogSectionMen,
	CatalogSectionWomen,
	CatalogSectionKids,
	CatalogSectionAccessories,
}

// String implements fmt.Stringer.
func (c CatalogSection) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CatalogSection.
func (c CatalogSection) IsValid() bool {
	for _, candidate := range validCatalogSections {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCatalogSection converts raw input into a CatalogSection.
func ParseCatalogSection(value string) (CatalogSection, error) {
	for _, candidate := range validCatalogSections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog section %q", value)
}
