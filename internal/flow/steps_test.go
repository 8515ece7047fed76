package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

func fullManual() domain.Measurements {
	return domain.Measurements{
		Bust: "34", Waist: "28", Hips: "36", ShoulderToWaist: "15", ArmLength: "22",
		ArmHole: "16", ArmCircumference: "11", NeckDepthFront: "7", NeckDepthBack: "8",
	}
}

func TestCheckManualBlocksIffAnyRequiredEmpty(t *testing.T) {
	require.Empty(t, CheckManual(fullManual()))

	withAdditional := fullManual()
	withAdditional.Additional = "loose fit around the arms"
	assert.Empty(t, CheckManual(withAdditional))

	blank := []func(*domain.Measurements){
		func(m *domain.Measurements) { m.Bust = "" },
		func(m *domain.Measurements) { m.Waist = "" },
		func(m *domain.Measurements) { m.Hips = "  " },
		func(m *domain.Measurements) { m.ShoulderToWaist = "" },
		func(m *domain.Measurements) { m.ArmLength = "" },
		func(m *domain.Measurements) { m.ArmHole = "" },
		func(m *domain.Measurements) { m.ArmCircumference = "" },
		func(m *domain.Measurements) { m.NeckDepthFront = "" },
		func(m *domain.Measurements) { m.NeckDepthBack = "" },
	}
	for i, clear := range blank {
		m := fullManual()
		clear(&m)
		errs := CheckManual(m)
		assert.Len(t, errs, 1, "case %d", i)
	}

	errs := CheckManual(domain.Measurements{Additional: "x"})
	assert.Len(t, errs, 9)
	assert.Equal(t, "is required", errs["neckDepthBack"])
}

func TestCheckCustomDesign(t *testing.T) {
	all := map[domain.Aspect]domain.DesignChoice{
		domain.AspectEmbroidery: {ID: "e1"},
		domain.AspectNeckFront:  {ID: "nf1"},
		domain.AspectNeckBack:   {ID: "nb1"},
		domain.AspectBlouseType: {ID: "bt1"},
	}
	image := map[domain.Aspect]string{domain.AspectReference: "uploads/ref.jpg"}

	assert.Empty(t, CheckCustomDesign(all, nil), "all four selected")
	assert.Empty(t, CheckCustomDesign(nil, image), "image only shortcut")
	assert.Empty(t, CheckCustomDesign(all, image))

	errs := CheckCustomDesign(nil, nil)
	assert.Contains(t, errs, "customDesign")

	partial := map[domain.Aspect]domain.DesignChoice{domain.AspectEmbroidery: {ID: "e1"}}
	errs = CheckCustomDesign(partial, image)
	assert.Len(t, errs, 3, "partial selection is blocked even with an image")
	assert.NotContains(t, errs, "embroidery")

	three := map[domain.Aspect]domain.DesignChoice{
		domain.AspectEmbroidery: {ID: "e1"},
		domain.AspectNeckFront:  {ID: "nf1"},
		domain.AspectNeckBack:   {ID: "nb1"},
	}
	assert.Equal(t, FieldErrors{"blouseType": "Select a blouse type"}, CheckCustomDesign(three, nil))

	assert.Contains(t, CheckCustomDesign(nil, map[domain.Aspect]string{domain.AspectReference: " "}), "customDesign")
}

func TestHomeServiceGate(t *testing.T) {
	o := domain.OrderDetails{MeasurementOption: domain.Ptr(domain.MeasureHomeService)}
	assert.Len(t, Check(StepMeasurement, o), 3)

	o = o.Merge(AddressPatch(domain.Address{ID: "a1", Pincode: "560001"}))
	o = o.Merge(HomeServiceDatePatch("2026-10-20"))
	assert.Equal(t, FieldErrors{"time": "Select a time slot"}, Check(StepMeasurement, o))

	o = o.Merge(HomeServiceSlotPatch("09:00 AM - 11:00 AM"))
	assert.True(t, IsStepComplete(StepMeasurement, o))
}

func TestSelectingDateClearsSlot(t *testing.T) {
	var o domain.OrderDetails
	o = o.Merge(HomeServiceDatePatch("2026-10-20"))
	o = o.Merge(HomeServiceSlotPatch("09:00 AM - 11:00 AM"))
	o = o.Merge(HomeServiceDatePatch("2026-10-21"))

	assert.Equal(t, "2026-10-21", domain.Deref(o.ScheduledDate))
	assert.Nil(t, o.ScheduledTime)

	o = o.Merge(PickupDatePatch(o, "2026-10-22"))
	o = o.Merge(PickupSlotPatch(o, "11:00 AM - 01:00 PM"))
	o = o.Merge(PickupDatePatch(o, "2026-10-23"))
	require.NotNil(t, o.PickupDetails)
	assert.Equal(t, "2026-10-23", o.PickupDetails.Date)
	assert.Empty(t, o.PickupDetails.Slot)
}

func TestPincodePatchClearsAddress(t *testing.T) {
	o := domain.OrderDetails{}.Merge(AddressPatch(domain.Address{ID: "a1", Pincode: "560001"}))
	require.True(t, o.HasAddress())

	o = o.Merge(PincodePatch("560002"))
	assert.Nil(t, o.SelectedAddressID)
	assert.Nil(t, o.DeliveryAddress)
	assert.Equal(t, "560002", domain.Deref(o.DeliveryPincode))
}

func TestCheckPincode(t *testing.T) {
	assert.Empty(t, CheckPincode("560001"))
	assert.NotEmpty(t, CheckPincode("060001"))
	assert.NotEmpty(t, CheckPincode("5600"))
	assert.NotEmpty(t, CheckPincode("56000a"))
}

func TestReadyChain(t *testing.T) {
	var o domain.OrderDetails
	assert.True(t, Ready(StepAddress, o))
	assert.False(t, Ready(StepBoutique, o))

	o = o.Merge(PincodePatch("560001"))
	assert.True(t, Ready(StepBoutique, o))
	assert.False(t, Ready(StepDesign, o))

	o.Boutique = &domain.EntityRef{ID: "b1"}
	assert.True(t, Ready(StepDesign, o))
	assert.False(t, Ready(StepMaterial, o))

	o.DesignType = domain.Ptr(domain.DesignCustom)
	assert.True(t, Ready(StepCustomDesign, o))
	assert.False(t, Ready(StepPredesigned, o), "branch follows design type")
	assert.True(t, Ready(StepMaterial, o))
	assert.True(t, Ready(StepCloth, o))
	assert.False(t, Ready(StepMeasurement, o))

	o.ClothOption = domain.Ptr(domain.ClothOwn)
	o.OwnClothDetails = &domain.OwnCloth{Material: "silk", Color: "red", Quantity: "2m"}
	assert.True(t, Ready(StepMeasurement, o), "legacy cloth path also unlocks measurements")

	o.MeasurementOption = domain.Ptr(domain.MeasureOldGarment)
	assert.True(t, Ready(StepSummary, o))
	assert.False(t, Ready(StepSchedule, o))

	o.TermsAccepted = domain.Ptr(true)
	assert.True(t, Ready(StepSchedule, o))
	assert.False(t, Ready(StepConfirmation, o))

	o.PickupDetails = &domain.PickupDetails{Date: "2026-10-20", Slot: "09:00 AM - 11:00 AM"}
	assert.True(t, Ready(StepConfirmation, o))
}

func TestNextBranchesOnDesignType(t *testing.T) {
	o := domain.OrderDetails{DesignType: domain.Ptr(domain.DesignPredesigned)}
	next, ok := Next(StepDesign, o)
	assert.True(t, ok)
	assert.Equal(t, StepPredesigned, next)

	o.DesignType = domain.Ptr(domain.DesignCustom)
	next, _ = Next(StepDesign, o)
	assert.Equal(t, StepCustomDesign, next)

	_, ok = Next(StepConfirmation, o)
	assert.False(t, ok)
}

func TestResume(t *testing.T) {
	assert.Equal(t, StepAddress, Resume(domain.OrderDetails{}))

	o := domain.OrderDetails{
		DeliveryPincode: domain.Ptr("560001"),
		Boutique:        &domain.EntityRef{ID: "b1"},
		DesignType:      domain.Ptr(domain.DesignCustom),
		CustomUploads:   map[domain.Aspect]string{domain.AspectReference: "ref.png"},
	}
	assert.Equal(t, StepMaterial, Resume(o))

	o.ClothOption = domain.Ptr(domain.ClothBoutique)
	assert.Equal(t, StepCloth, Resume(o))

	o.BoutiqueCloth = &domain.ClothOption{ID: "c1"}
	assert.Equal(t, StepMeasurement, Resume(o))
}

func TestParseStep(t *testing.T) {
	s, ok := ParseStep("/order-summary")
	assert.True(t, ok)
	assert.Equal(t, StepSummary, s)

	_, ok = ParseStep("checkout")
	assert.False(t, ok)
}
