package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

type (
	// A ResolvedVariant is derived from a product and the current
	// selection. It is never stored.
	ResolvedVariant struct {
		Variant            *Variant
		Availability       map[string]map[string]bool
		CurrentPrice       decimal.Decimal
		CurrentCompareAt   *decimal.Decimal
		DiscountPercentage *int
		InStock            bool
		CanAddToCart       bool
	}
)

// Resolve maps a product and a partial option selection to pricing,
// availability and the matched variant. Pure, safe to re-run on every
// selection change. Entries referencing unknown options or values are
// ignored.
func Resolve(p Product, selection OptionSelection) ResolvedVariant {
	selection = selection.Sanitize(p.Options)

	if len(p.Options) == 0 {
		return resolveWithoutOptions(p)
	}

	rv := ResolvedVariant{
		Availability:     availability(p, selection),
		CurrentPrice:     p.Price,
		CurrentCompareAt: p.CompareAtPrice,
	}

	if selection.Covers(p.Options) {
		if v, ok := singleMatch(p.Variants, selection); ok {
			rv.Variant = v
			rv.CurrentPrice = v.Price
			rv.CurrentCompareAt = v.CompareAtPrice
			rv.InStock = v.InStock()
			rv.CanAddToCart = v.InStock()
		}
	}

	rv.CurrentCompareAt = effectiveCompareAt(rv.CurrentPrice, rv.CurrentCompareAt)
	rv.DiscountPercentage = discountPercentage(
		rv.CurrentPrice, rv.CurrentCompareAt,
	)
	return rv
}

func resolveWithoutOptions(p Product) ResolvedVariant {
	inStock := len(p.Variants) == 0 || p.Variants[0].InStock()
	compareAt := effectiveCompareAt(p.Price, p.CompareAtPrice)
	return ResolvedVariant{
		Availability:       map[string]map[string]bool{},
		CurrentPrice:       p.Price,
		CurrentCompareAt:   compareAt,
		DiscountPercentage: discountPercentage(p.Price, compareAt),
		InStock:            inStock,
		CanAddToCart:       inStock,
	}
}

// effectiveCompareAt keeps the compare-at price only when it is strictly
// greater than the current price.
func effectiveCompareAt(price decimal.Decimal, compareAt *decimal.Decimal) *decimal.Decimal {
	if compareAt == nil || !compareAt.GreaterThan(price) {
		return nil
	}
	return compareAt
}

// availability computes the per-value flags for every option. The probed
// option's own selection is excluded from the filter, so a previously
// chosen value stays selectable even when a sibling choice made it
// globally incompatible.
func availability(p Product, selection OptionSelection) map[string]map[string]bool {
	avail := make(map[string]map[string]bool, len(p.Options))
	for _, opt := range p.Options {
		others := make(OptionSelection, len(selection))
		for name, value := range selection {
			if name != opt.Name {
				others[name] = value
			}
		}

		flags := make(map[string]bool, len(opt.Values))
		for _, value := range opt.Values {
			flags[value] = anyVariantFits(p.Variants, others, opt.Name, value)
		}
		avail[opt.Name] = flags
	}
	return avail
}

func anyVariantFits(
	vs []Variant, others OptionSelection, option, value string,
) bool {
	for i := range vs {
		v := &vs[i]
		if v.Assignment[option] == value && v.InStock() && v.Matches(others) {
			return true
		}
	}
	return false
}

func singleMatch(vs []Variant, selection OptionSelection) (*Variant, bool) {
	var found *Variant
	for i := range vs {
		if vs[i].Matches(selection) {
			if found != nil {
				return nil, false
			}
			found = &vs[i]
		}
	}
	return found, found != nil
}

// discountPercentage is present only for a valid compare-at price,
// absent otherwise, never zero.
func discountPercentage(price decimal.Decimal, compareAt *decimal.Decimal) *int {
	if compareAt == nil || !compareAt.GreaterThan(price) {
		return nil
	}
	ratio, _ := compareAt.Sub(price).Div(*compareAt).Float64()
	pct := int(math.Round(ratio * 100))
	return &pct
}
