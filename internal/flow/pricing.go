package flow

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

// DeliveryFee is flat and always shown apart from totalPrice.
const DeliveryFee = 100

const (
	estimatePredesigned = "7-10 days"
	estimateCustom      = "10-14 days"
)

// Price derives the order totals. totalPrice covers the style, every chosen
// custom design aspect and the fabric; the delivery fee is added only to the
// grand total. The legacy boutique cloth is priced when no material was chosen.
func Price(o domain.OrderDetails) domain.Pricing {
	var lines []domain.PriceLine
	total := decimal.Zero
	add := func(label string, amount float64) {
		lines = append(lines, domain.PriceLine{Label: label, Amount: amount})
		total = total.Add(decimal.NewFromFloat(amount))
	}

	if o.DesignTypeIs(domain.DesignPredesigned) && o.PredesignedStyle != nil {
		add("Style: "+o.PredesignedStyle.Name, o.PredesignedStyle.Price)
	}
	for _, a := range aspectOrder(o.CustomDesign) {
		c := o.CustomDesign[a]
		if c.ID == "" {
			continue
		}
		add(aspectTitle(a)+": "+c.Name, c.Price)
	}

	switch {
	case o.MaterialSelection != nil:
		if o.MaterialSelection.BuyFromUs && o.MaterialSelection.Fabric != nil {
			add("Fabric: "+o.MaterialSelection.Fabric.Name, o.MaterialSelection.Fabric.Price)
		}
	case o.ClothOption != nil && *o.ClothOption == domain.ClothBoutique && o.BoutiqueCloth != nil:
		add("Cloth: "+o.BoutiqueCloth.Name, o.BoutiqueCloth.Price)
	}

	fee := decimal.NewFromInt(DeliveryFee)
	estimate := estimatePredesigned
	if o.DesignTypeIs(domain.DesignCustom) {
		estimate = estimateCustom
	}
	return domain.Pricing{
		Lines:            lines,
		TotalPrice:       total.Round(2).InexactFloat64(),
		DeliveryFee:      fee.InexactFloat64(),
		GrandTotal:       total.Add(fee).Round(2).InexactFloat64(),
		DeliveryEstimate: estimate,
	}
}

// aspectOrder lists the fixed aspects first, then any other keys alphabetically.
func aspectOrder(m map[domain.Aspect]domain.DesignChoice) []domain.Aspect {
	out := make([]domain.Aspect, 0, len(m))
	known := map[domain.Aspect]bool{}
	for _, a := range domain.DesignAspects {
		known[a] = true
		if _, ok := m[a]; ok {
			out = append(out, a)
		}
	}
	var rest []domain.Aspect
	for a := range m {
		if !known[a] {
			rest = append(rest, a)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

func aspectTitle(a domain.Aspect) string {
	switch a {
	case domain.AspectEmbroidery:
		return "Embroidery"
	case domain.AspectNeckFront:
		return "Front neck"
	case domain.AspectNeckBack:
		return "Back neck"
	case domain.AspectBlouseType:
		return "Blouse type"
	}
	return string(a)
}
