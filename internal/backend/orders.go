package backend

import (
	"context"
	"net/http"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

type submitResponse struct {
	ids
	OrderID   flexString `json:"orderId"`
	Reference flexString `json:"reference"`
	OrderNo   flexString `json:"orderNumber"`
}

// SubmitOrder posts a placed order and returns the backend's reference for it.
func (c *Client) SubmitOrder(ctx context.Context, token string, po domain.PlacedOrder) (string, error) {
	body := struct {
		ClientOrderID string              `json:"clientOrderId"`
		Order         domain.OrderDetails `json:"order"`
		Pricing       domain.Pricing      `json:"pricing"`
	}{po.ID.String(), po.Order, po.Pricing}

	var res submitResponse
	if err := c.do(ctx, http.MethodPost, "/orders", nil, token, body, &res); err != nil {
		return "", err
	}
	for _, ref := range []flexString{res.Reference, res.OrderNo, res.OrderID, flexString(res.value())} {
		if ref != "" {
			return string(ref), nil
		}
	}
	return "", nil
}
