package domain

import "github.com/shopspring/decimal"

type (
	Product struct {
		ProductID      string
		Title          string
		Slug           string
		Description    string
		Price          decimal.Decimal
		CompareAtPrice *decimal.Decimal
		Images         []ProductImage
		Featured       bool
		Options        []ProductOption
		Variants       []Variant
	}

	ProductImage struct {
		URL string
		Alt string
	}

	// A ProductOption is one named axis of variation.
	// Values keep the catalog order, Swatches is optional.
	ProductOption struct {
		Name     string
		Values   []string
		Swatches map[string]string
	}

	Variant struct {
		ProductID      string
		VariantID      string
		Title          string
		Price          decimal.Decimal
		CompareAtPrice *decimal.Decimal
		Image          string
		Assignment     map[string]string
		Stock          int
	}
)

func (p Product) HasVariants() bool {
	return len(p.Options) > 0 && len(p.Variants) > 0
}

// FirstImage returns the leading catalog image URL or an empty string.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

func (v Variant) InStock() bool {
	return v.Stock > 0
}

// Matches reports whether the variant assigns exactly the given value
// for every selected option. Unknown options in the selection never match.
func (v Variant) Matches(selection OptionSelection) bool {
	for name, value := range selection {
		if v.Assignment[name] != value {
			return false
		}
	}
	return true
}

// OptionSelection maps option name to the chosen value.
// It may be partial while the shopper is still browsing.
type OptionSelection map[string]string

func (s OptionSelection) Covers(options []ProductOption) bool {
	for _, opt := range options {
		if _, ok := s[opt.Name]; !ok {
			return false
		}
	}
	return true
}

// Sanitize drops entries referencing an option or a value the product
// does not define. Malformed input is tolerated, not fatal.
func (s OptionSelection) Sanitize(options []ProductOption) OptionSelection {
	clean := make(OptionSelection, len(s))
	for _, opt := range options {
		value, ok := s[opt.Name]
		if !ok {
			continue
		}
		for _, v := range opt.Values {
			if v == value {
				clean[opt.Name] = value
				break
			}
		}
	}
	return clean
}
