package application

import (
	"context"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

// Catalog is the read side of the marketplace API.
type Catalog interface {
	Boutiques(ctx context.Context, pincode string) ([]domain.Boutique, error)
	Boutique(ctx context.Context, id string) (domain.Boutique, error)
	Services(ctx context.Context) ([]domain.Service, error)
	PredesignedStyles(ctx context.Context, serviceID string) ([]domain.Style, error)
	Materials(ctx context.Context, serviceID string) ([]domain.Material, error)
}

type AddressAPI interface {
	Addresses(ctx context.Context, token string) ([]domain.Address, error)
	CreateAddress(ctx context.Context, token string, a domain.Address) (domain.Address, error)
	UpdateAddress(ctx context.Context, token string, a domain.Address) (domain.Address, error)
	DeleteAddress(ctx context.Context, token, id string) error
	SetDefaultAddress(ctx context.Context, token, id string) error
}

type AccountAPI interface {
	Verify(ctx context.Context, idToken string) (domain.User, string, error)
	UpdateProfile(ctx context.Context, token string, p domain.ProfileUpdate) (domain.User, error)
}

type OrderAPI interface {
	SubmitOrder(ctx context.Context, token string, po domain.PlacedOrder) (string, error)
}

// Publisher hands a placed order to the archive pipeline.
type Publisher interface {
	PublishOrder(ctx context.Context, po domain.PlacedOrder) error
}
