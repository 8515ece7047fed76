package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RaikyD/stitch-storefront/internal/domain"
	"github.com/RaikyD/stitch-storefront/internal/flow"
)

// StepInput is the body of a step submission. Each step reads only the
// fields it owns; everything else is ignored.
type StepInput struct {
	Pincode   string `json:"pincode,omitempty"`
	AddressID string `json:"addressId,omitempty"`

	BoutiqueID string `json:"boutiqueId,omitempty"`
	ServiceID  string `json:"serviceId,omitempty"`

	DesignType domain.DesignType `json:"designType,omitempty"`
	StyleID    string            `json:"styleId,omitempty"`

	CustomDesign  map[domain.Aspect]domain.DesignChoice `json:"customDesign,omitempty"`
	CustomUploads map[domain.Aspect]string              `json:"customUploads,omitempty"`

	BuyFromUs *bool  `json:"buyFromUs,omitempty"`
	FabricID  string `json:"fabricId,omitempty"`

	ClothOption     domain.ClothSource `json:"clothOption,omitempty"`
	OwnClothDetails *domain.OwnCloth   `json:"ownClothDetails,omitempty"`
	BoutiqueClothID string             `json:"boutiqueClothId,omitempty"`

	MeasurementOption domain.MeasurementMethod `json:"measurementOption,omitempty"`
	Measurements      *domain.Measurements     `json:"measurements,omitempty"`

	Date string `json:"date,omitempty"`
	Slot string `json:"slot,omitempty"`

	TermsAccepted bool `json:"termsAccepted,omitempty"`
}

// patchFor turns in into the patch for step. Input problems come back as
// flow.FieldErrors; remote failures as plain errors.
func (c *Checkout) patchFor(ctx context.Context, step flow.Step, in StepInput, o domain.OrderDetails, token string, route flow.RouteParams) (domain.Patch, error) {
	switch step {
	case flow.StepAddress:
		if id := strings.TrimSpace(in.AddressID); id != "" {
			a, err := c.savedAddress(ctx, token, id)
			if err != nil {
				return domain.Patch{}, err
			}
			if len(flow.CheckPincode(a.Pincode)) > 0 {
				return domain.Patch{}, flow.FieldErrors{"addressId": "This address has no valid pincode"}
			}
			return flow.AddressPatch(a), nil
		}
		if errs := flow.CheckPincode(in.Pincode); len(errs) > 0 {
			return domain.Patch{}, errs
		}
		return flow.PincodePatch(in.Pincode), nil

	case flow.StepBoutique:
		return c.boutiquePatch(ctx, in, route)

	case flow.StepDesign:
		if !in.DesignType.Valid() {
			return domain.Patch{}, flow.FieldErrors{"designType": "must be one of: predesigned, custom"}
		}
		return domain.Patch{OrderDetails: domain.OrderDetails{DesignType: domain.Ptr(in.DesignType)}}, nil

	case flow.StepPredesigned:
		serviceID, err := serviceOf(o, route)
		if err != nil {
			return domain.Patch{}, err
		}
		styles, err := c.catalog.PredesignedStyles(ctx, serviceID)
		if err != nil {
			return domain.Patch{}, fmt.Errorf("load styles: %w", err)
		}
		st, ok := domain.FindStyle(styles, in.StyleID)
		if !ok {
			return domain.Patch{}, flow.FieldErrors{"styleId": "Pick one of the listed styles"}
		}
		return domain.Patch{OrderDetails: domain.OrderDetails{
			PredesignedStyle: &domain.StyleChoice{ID: st.ID, Name: st.Name, Price: st.Price, Image: st.Image},
		}}, nil

	case flow.StepCustomDesign:
		var errs flow.FieldErrors
		for a := range in.CustomDesign {
			if !knownAspect(a) {
				errs = mergeErrs(errs, flow.FieldErrors{string(a): "unknown design aspect"})
			}
		}
		for a := range in.CustomUploads {
			if !knownAspect(a) && a != domain.AspectReference {
				errs = mergeErrs(errs, flow.FieldErrors{string(a): "unknown design aspect"})
			}
		}
		if len(errs) > 0 {
			return domain.Patch{}, errs
		}
		p := domain.Patch{OrderDetails: domain.OrderDetails{
			CustomDesign:  in.CustomDesign,
			CustomUploads: in.CustomUploads,
		}}
		if in.CustomDesign == nil {
			p.Clear = append(p.Clear, domain.FieldCustomDesign)
		}
		if in.CustomUploads == nil {
			p.Clear = append(p.Clear, domain.FieldCustomUploads)
		}
		return p, nil

	case flow.StepMaterial:
		if in.BuyFromUs == nil {
			return domain.Patch{}, flow.FieldErrors{"buyFromUs": "is required"}
		}
		ms := domain.MaterialSelection{BuyFromUs: *in.BuyFromUs}
		if ms.BuyFromUs {
			m, err := c.material(ctx, o, route, in.FabricID, "fabricId")
			if err != nil {
				return domain.Patch{}, err
			}
			ms.Fabric = &domain.Fabric{ID: m.ID, Name: m.Name, Price: m.Price}
		}
		return domain.Patch{OrderDetails: domain.OrderDetails{MaterialSelection: &ms}}, nil

	case flow.StepCloth:
		switch in.ClothOption {
		case domain.ClothOwn:
			if in.OwnClothDetails == nil {
				return domain.Patch{}, flow.CheckOwnCloth(domain.OwnCloth{})
			}
			if errs := flow.CheckOwnCloth(*in.OwnClothDetails); len(errs) > 0 {
				return domain.Patch{}, errs
			}
			return domain.Patch{
				OrderDetails: domain.OrderDetails{ClothOption: domain.Ptr(domain.ClothOwn), OwnClothDetails: in.OwnClothDetails},
				Clear:        []domain.Field{domain.FieldBoutiqueCloth},
			}, nil
		case domain.ClothBoutique:
			m, err := c.material(ctx, o, route, in.BoutiqueClothID, "boutiqueClothId")
			if err != nil {
				return domain.Patch{}, err
			}
			return domain.Patch{
				OrderDetails: domain.OrderDetails{
					ClothOption:   domain.Ptr(domain.ClothBoutique),
					BoutiqueCloth: &domain.ClothOption{ID: m.ID, Name: m.Name, Type: m.Type, Price: m.Price},
				},
				Clear: []domain.Field{domain.FieldOwnClothDetails},
			}, nil
		}
		return domain.Patch{}, flow.FieldErrors{"clothOption": "must be one of: own, boutique"}

	case flow.StepMeasurement:
		return c.measurementPatch(ctx, in, o, token)

	case flow.StepSummary:
		if !in.TermsAccepted {
			return domain.Patch{}, flow.FieldErrors{"termsAccepted": "Accept the terms and conditions to continue"}
		}
		return flow.SummaryPatch(o), nil

	case flow.StepSchedule:
		if errs := flow.CheckSchedule(in.Date, in.Slot, c.now()); len(errs) > 0 {
			return domain.Patch{}, errs
		}
		pd := domain.PickupDetails{Date: in.Date, Slot: in.Slot, Address: o.DeliveryAddress}
		if id := strings.TrimSpace(in.AddressID); id != "" {
			a, err := c.savedAddress(ctx, token, id)
			if err != nil {
				return domain.Patch{}, err
			}
			pd.Address = &a
		} else if o.PickupDetails != nil && o.PickupDetails.Address != nil {
			pd.Address = o.PickupDetails.Address
		}
		return domain.Patch{OrderDetails: domain.OrderDetails{PickupDetails: &pd}}, nil
	}
	return domain.Patch{}, flow.FieldErrors{"step": "this step takes no input"}
}

func (c *Checkout) boutiquePatch(ctx context.Context, in StepInput, route flow.RouteParams) (domain.Patch, error) {
	id := strings.TrimSpace(in.BoutiqueID)
	if id == "" {
		id = route.BoutiqueID
	}
	if id == "" {
		return domain.Patch{}, flow.FieldErrors{"boutiqueId": "Select a boutique"}
	}
	b, err := c.catalog.Boutique(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Patch{}, flow.FieldErrors{"boutiqueId": "This boutique is no longer available"}
	}
	if err != nil {
		return domain.Patch{}, fmt.Errorf("load boutique: %w", err)
	}
	if !b.IsOpen {
		return domain.Patch{}, flow.FieldErrors{"boutiqueId": "This boutique is closed right now"}
	}

	p := domain.Patch{OrderDetails: domain.OrderDetails{Boutique: &domain.EntityRef{ID: b.ID, Name: b.Name}}}

	sid := strings.TrimSpace(in.ServiceID)
	if sid == "" {
		sid = route.ServiceID
	}
	if sid == "" {
		// a different boutique invalidates the previous service choice
		p.Clear = []domain.Field{domain.FieldService}
		return p, nil
	}
	svc, ok := b.Service(sid)
	if !ok {
		services, err := c.catalog.Services(ctx)
		if err != nil {
			return domain.Patch{}, fmt.Errorf("load services: %w", err)
		}
		if svc, ok = domain.FindService(services, sid); !ok {
			return domain.Patch{}, flow.FieldErrors{"serviceId": "Unknown service"}
		}
	}
	p.Service = &domain.EntityRef{ID: svc.ID, Name: svc.Name}
	return p, nil
}

func (c *Checkout) measurementPatch(ctx context.Context, in StepInput, o domain.OrderDetails, token string) (domain.Patch, error) {
	opt := domain.Ptr(in.MeasurementOption)
	switch in.MeasurementOption {
	case domain.MeasureManual:
		var m domain.Measurements
		if in.Measurements != nil {
			m = *in.Measurements
		}
		if errs := flow.CheckManual(m); len(errs) > 0 {
			return domain.Patch{}, errs
		}
		return domain.Patch{OrderDetails: domain.OrderDetails{MeasurementOption: opt, Measurements: &m}}, nil

	case domain.MeasureHomeService:
		p := domain.Patch{OrderDetails: domain.OrderDetails{MeasurementOption: opt}}
		if id := strings.TrimSpace(in.AddressID); id != "" {
			a, err := c.savedAddress(ctx, token, id)
			if err != nil {
				return domain.Patch{}, err
			}
			p = p.Then(flow.AddressPatch(a))
		} else if !o.HasAddress() && token != "" {
			// the visit goes to the default address unless another one is picked
			list, err := c.book.List(ctx, token)
			if err != nil {
				return domain.Patch{}, err
			}
			if a, ok := domain.DefaultAddress(list); ok {
				p = p.Then(flow.AddressPatch(a))
			}
		}
		date, slot := in.Date, in.Slot
		if date == "" && slot == "" {
			date, slot = domain.Deref(o.ScheduledDate), domain.Deref(o.ScheduledTime)
		}
		errs := flow.CheckSchedule(date, slot, c.now())
		if !o.Merge(p).HasAddress() {
			errs = mergeErrs(errs, flow.FieldErrors{"address": "Select the address for the home visit"})
		}
		if len(errs) > 0 {
			return domain.Patch{}, renameKey(errs, "slot", "time")
		}
		return p.Then(flow.HomeServiceDatePatch(date)).Then(flow.HomeServiceSlotPatch(slot)), nil

	case domain.MeasureOldGarment:
		return domain.Patch{OrderDetails: domain.OrderDetails{MeasurementOption: opt}}, nil
	}
	return domain.Patch{}, flow.FieldErrors{"measurementOption": "must be one of: manual, homeService, oldGarment"}
}

func (c *Checkout) material(ctx context.Context, o domain.OrderDetails, route flow.RouteParams, id, key string) (domain.Material, error) {
	serviceID, err := serviceOf(o, route)
	if err != nil {
		return domain.Material{}, err
	}
	list, err := c.catalog.Materials(ctx, serviceID)
	if err != nil {
		return domain.Material{}, fmt.Errorf("load materials: %w", err)
	}
	m, ok := domain.FindMaterial(list, strings.TrimSpace(id))
	if !ok {
		return domain.Material{}, flow.FieldErrors{key: "Select one of the listed fabrics"}
	}
	return m, nil
}

func (c *Checkout) savedAddress(ctx context.Context, token, id string) (domain.Address, error) {
	if token == "" {
		return domain.Address{}, ErrUnauthenticated
	}
	a, err := c.book.Get(ctx, token, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Address{}, flow.FieldErrors{"addressId": "Unknown address"}
	}
	return a, err
}

func serviceOf(o domain.OrderDetails, route flow.RouteParams) (string, error) {
	if o.Service != nil && o.Service.ID != "" {
		return o.Service.ID, nil
	}
	if route.ServiceID != "" {
		return route.ServiceID, nil
	}
	return "", flow.FieldErrors{"serviceId": "Select a service first"}
}

func knownAspect(a domain.Aspect) bool {
	for _, x := range domain.DesignAspects {
		if x == a {
			return true
		}
	}
	return false
}

func mergeErrs(a, b flow.FieldErrors) flow.FieldErrors {
	if a == nil {
		a = flow.FieldErrors{}
	}
	for k, v := range b {
		if _, ok := a[k]; !ok {
			a[k] = v
		}
	}
	return a
}

func renameKey(errs flow.FieldErrors, from, to string) flow.FieldErrors {
	if v, ok := errs[from]; ok {
		delete(errs, from)
		errs[to] = v
	}
	return errs
}
