package uniteconomics

import (
	"github.com/shopspring/decimal"
)

// Products is the static product reference shared by the factory and the
// allocator so both resolve SKUs through one consistent view. It is passed
// explicitly, never held as package state.
//
// A product can be listed under more than one SKU (re-listings, advertising
// campaigns reporting the listing SKU). canonicalByAlias folds every known
// spelling onto one canonical SKU so orders and advertising spend land in
// the same allocation bucket.
type Products struct {
	costBySKU        map[string]decimal.Decimal
	canonicalByAlias map[string]string
}

// DefaultProducts returns the current seller catalog: purchase cost per SKU
// and the alias pairs of re-listed products.
func DefaultProducts() *Products {
	costs := map[string]int64{
		"1828048543": 771,
		"1828048513": 771,
		"1828048540": 771,
		"1927603466": 524,
		"1763835247": 151,
		"2586085325": 151,
		"2586059276": 151,
	}

	costBySKU := make(map[string]decimal.Decimal, len(costs))
	for sku, cost := range costs {
		costBySKU[sku] = decimal.NewFromInt(cost)
	}

	return &Products{
		costBySKU: costBySKU,
		canonicalByAlias: map[string]string{
			"1828048513": "1828048543",
			"1828048540": "1828048543",
			"2586085325": "1763835247",
			"2586059276": "1763835247",
		},
	}
}

// NewProducts builds a catalog from explicit tables; used by tests.
func NewProducts(costBySKU map[string]decimal.Decimal, canonicalByAlias map[string]string) *Products {
	if costBySKU == nil {
		costBySKU = map[string]decimal.Decimal{}
	}
	if canonicalByAlias == nil {
		canonicalByAlias = map[string]string{}
	}
	return &Products{costBySKU: costBySKU, canonicalByAlias: canonicalByAlias}
}

// CostPrice returns the purchase cost for a SKU, falling back to the
// canonical SKU's cost for aliases. Unknown SKUs cost zero.
func (p *Products) CostPrice(sku string) decimal.Decimal {
	if cost, ok := p.costBySKU[sku]; ok {
		return cost
	}
	if cost, ok := p.costBySKU[p.CanonicalSKU(sku)]; ok {
		return cost
	}
	return decimal.Zero
}

// CanonicalSKU resolves an alias to its canonical SKU. SKUs without an alias
// entry are their own canonical form.
func (p *Products) CanonicalSKU(sku string) string {
	if canonical, ok := p.canonicalByAlias[sku]; ok {
		return canonical
	}
	return sku
}

// KnownForms returns every spelling the catalog knows for a SKU: the SKU
// itself, its canonical form and all aliases pointing at that canonical
// form. Used to widen advertising store lookups.
func (p *Products) KnownForms(sku string) []string {
	canonical := p.CanonicalSKU(sku)

	forms := []string{canonical}
	if sku != canonical {
		forms = append(forms, sku)
	}
	for alias, c := range p.canonicalByAlias {
		if c == canonical && alias != sku {
			forms = append(forms, alias)
		}
	}
	return forms
}
