package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		params RouteParams
		step   Step
		want   string
	}{
		{"nested", RouteParams{BoutiqueID: "b1", ServiceID: "s1"}, StepMeasurement, "/boutique/b1/service/s1/measurements"},
		{"flat", RouteParams{}, StepMeasurement, "/measurements"},
		{"only boutique", RouteParams{BoutiqueID: "b1"}, StepSummary, "/order-summary"},
		{"only service", RouteParams{ServiceID: "s1"}, StepSummary, "/order-summary"},
		{"blank ids", RouteParams{BoutiqueID: " ", ServiceID: "s1"}, StepMaterial, "/material"},
		{"escaped", RouteParams{BoutiqueID: "b 1", ServiceID: "s/1"}, StepDesign, "/boutique/b%201/service/s%2F1/design-options"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.params, tt.step))
		})
	}
}

func TestEveryContinueKeepsRouteShape(t *testing.T) {
	nested := RouteParams{BoutiqueID: "b1", ServiceID: "s1"}
	o := domain.OrderDetails{DesignType: domain.Ptr(domain.DesignCustom)}

	for s := range graph {
		next, ok := Next(s, o)
		if !ok {
			continue
		}
		assert.Equal(t, "/boutique/b1/service/s1/"+string(next), Resolve(nested, next), "from %s", s)
		assert.Equal(t, "/"+string(next), Resolve(RouteParams{}, next), "from %s", s)
	}
}

func TestParamsOf(t *testing.T) {
	o := domain.OrderDetails{
		Boutique: &domain.EntityRef{ID: "b1"},
		Service:  &domain.EntityRef{ID: "s1"},
	}
	assert.Equal(t, RouteParams{BoutiqueID: "b1", ServiceID: "s1"}, ParamsOf(o))
	assert.Equal(t, RouteParams{}, ParamsOf(domain.OrderDetails{}))
}
