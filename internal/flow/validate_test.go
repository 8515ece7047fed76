package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

func TestValidateAddress(t *testing.T) {
	ok := domain.Address{
		FullName: "Asha Rao", Phone: "9876543210", DoorNo: "12",
		AddressLine1: "MG Road", Area: "Indiranagar", Pincode: "560038", Type: domain.AddressHome,
	}
	assert.Empty(t, ValidateStruct(ok))

	bad := ok
	bad.Phone = "98765"
	bad.Pincode = "56003a"
	bad.Type = "villa"
	bad.FullName = ""
	errs := ValidateStruct(bad)

	assert.Equal(t, "must be 10 characters", errs["phone"])
	assert.Equal(t, "must be a valid 6 digit pincode", errs["pincode"])
	assert.Equal(t, "must be one of: home, work, office", errs["type"])
	assert.Equal(t, "is required", errs["fullName"])
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{"waist": "is required", "bust": "is required"}
	assert.Equal(t, "validation failed: bust: is required; waist: is required", errs.Error())
}

func TestPincodeRuleIsShared(t *testing.T) {
	a := domain.Address{
		FullName: "Asha Rao", Phone: "9876543210", DoorNo: "12",
		AddressLine1: "MG Road", Area: "Indiranagar",
	}
	for _, pin := range []string{"560001", "012345", "56000", "56000a", ""} {
		a.Pincode = pin
		addrOK := len(ValidateStruct(a)) == 0
		typedOK := len(CheckPincode(pin)) == 0
		assert.Equal(t, addrOK, typedOK, pin)
	}
	a.Pincode = "012345"
	assert.NotEmpty(t, ValidateStruct(a)["pincode"])
}
