package flow

import (
	"strings"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

// CheckPincode applies the same pincode rule as saved addresses.
func CheckPincode(pin string) FieldErrors {
	if err := validate.Var(strings.TrimSpace(pin), "required,pincode"); err != nil {
		return FieldErrors{"pincode": "Enter a valid 6 digit pincode"}
	}
	return nil
}

// PincodePatch sets a manually entered or geolocated pincode. Any previously
// selected address stops being authoritative in the same update.
func PincodePatch(pin string) domain.Patch {
	return domain.Patch{
		OrderDetails: domain.OrderDetails{DeliveryPincode: domain.Ptr(strings.TrimSpace(pin))},
		Clear:        []domain.Field{domain.FieldSelectedAddressID, domain.FieldDeliveryAddress},
	}
}

// AddressPatch selects a saved address; its pincode becomes the delivery pincode.
func AddressPatch(a domain.Address) domain.Patch {
	return domain.Patch{OrderDetails: domain.OrderDetails{
		DeliveryAddress:   &a,
		SelectedAddressID: domain.Ptr(a.ID),
		DeliveryPincode:   domain.Ptr(a.Pincode),
	}}
}

// HomeServiceDatePatch picks the home visit date and drops the chosen slot.
func HomeServiceDatePatch(date string) domain.Patch {
	return domain.Patch{
		OrderDetails: domain.OrderDetails{ScheduledDate: domain.Ptr(date)},
		Clear:        []domain.Field{domain.FieldScheduledTime},
	}
}

func HomeServiceSlotPatch(slot string) domain.Patch {
	return domain.Patch{OrderDetails: domain.OrderDetails{ScheduledTime: domain.Ptr(slot)}}
}

// PickupDatePatch rewrites pickupDetails with the new date and no slot.
// pickupDetails is replaced as a whole, so the current address is carried over.
func PickupDatePatch(o domain.OrderDetails, date string) domain.Patch {
	pd := domain.PickupDetails{Date: date}
	if o.PickupDetails != nil {
		pd.Address = o.PickupDetails.Address
	}
	return domain.Patch{OrderDetails: domain.OrderDetails{PickupDetails: &pd}}
}

func PickupSlotPatch(o domain.OrderDetails, slot string) domain.Patch {
	var pd domain.PickupDetails
	if o.PickupDetails != nil {
		pd = *o.PickupDetails
	}
	pd.Slot = slot
	return domain.Patch{OrderDetails: domain.OrderDetails{PickupDetails: &pd}}
}

// SummaryPatch records terms acceptance together with the derived totals.
func SummaryPatch(o domain.OrderDetails) domain.Patch {
	pr := Price(o)
	return domain.Patch{OrderDetails: domain.OrderDetails{
		TermsAccepted:    domain.Ptr(true),
		TotalPrice:       domain.Ptr(pr.TotalPrice),
		DeliveryEstimate: domain.Ptr(pr.DeliveryEstimate),
	}}
}
