package flow

import (
	"strings"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

// Step is one decision point of the order flow, named by its route slug.
type Step string

const (
	StepAddress      Step = "address"
	StepBoutique     Step = "boutiques"
	StepDesign       Step = "design-options"
	StepPredesigned  Step = "predesigned-styles"
	StepCustomDesign Step = "custom-design"
	StepMaterial     Step = "material"
	StepCloth        Step = "cloth-options"
	StepMeasurement  Step = "measurements"
	StepSummary      Step = "order-summary"
	StepSchedule     Step = "schedule-pickup"
	StepConfirmation Step = "order-confirmation"
)

type node struct {
	// requires lists steps of which at least one must be reachable and complete.
	requires []Step
	// enter is an extra entry condition on top of requires.
	enter func(o domain.OrderDetails) bool
	check func(o domain.OrderDetails) FieldErrors
	next  func(o domain.OrderDetails) Step
}

var graph map[Step]node

func init() {
	graph = map[Step]node{
		StepAddress: {
			check: checkLocation,
			next:  always(StepBoutique),
		},
		StepBoutique: {
			requires: []Step{StepAddress},
			check: func(o domain.OrderDetails) FieldErrors {
				if o.Boutique == nil || o.Boutique.ID == "" {
					return FieldErrors{"boutique": "Select a boutique"}
				}
				return nil
			},
			next: always(StepDesign),
		},
		StepDesign: {
			requires: []Step{StepBoutique},
			check: func(o domain.OrderDetails) FieldErrors {
				if o.DesignType == nil || !o.DesignType.Valid() {
					return FieldErrors{"designType": "Choose predesigned or custom"}
				}
				return nil
			},
			next: func(o domain.OrderDetails) Step {
				if o.DesignTypeIs(domain.DesignCustom) {
					return StepCustomDesign
				}
				return StepPredesigned
			},
		},
		StepPredesigned: {
			requires: []Step{StepDesign},
			enter:    func(o domain.OrderDetails) bool { return o.DesignTypeIs(domain.DesignPredesigned) },
			check: func(o domain.OrderDetails) FieldErrors {
				if o.PredesignedStyle == nil || o.PredesignedStyle.ID == "" {
					return FieldErrors{"predesignedStyle": "Pick a style"}
				}
				return nil
			},
			next: always(StepMaterial),
		},
		StepCustomDesign: {
			requires: []Step{StepDesign},
			enter:    func(o domain.OrderDetails) bool { return o.DesignTypeIs(domain.DesignCustom) },
			check: func(o domain.OrderDetails) FieldErrors {
				return CheckCustomDesign(o.CustomDesign, o.CustomUploads)
			},
			next: always(StepMaterial),
		},
		StepMaterial: {
			requires: []Step{StepDesign},
			check:    checkMaterial,
			next:     always(StepMeasurement),
		},
		StepCloth: {
			requires: []Step{StepDesign},
			check:    checkCloth,
			next:     always(StepMeasurement),
		},
		StepMeasurement: {
			requires: []Step{StepMaterial, StepCloth},
			check:    checkMeasurement,
			next:     always(StepSummary),
		},
		StepSummary: {
			requires: []Step{StepMeasurement},
			check: func(o domain.OrderDetails) FieldErrors {
				if !domain.Deref(o.TermsAccepted) {
					return FieldErrors{"termsAccepted": "Accept the terms and conditions to continue"}
				}
				return nil
			},
			next: always(StepSchedule),
		},
		StepSchedule: {
			requires: []Step{StepSummary},
			check: func(o domain.OrderDetails) FieldErrors {
				var errs FieldErrors
				if o.PickupDetails == nil || o.PickupDetails.Date == "" {
					errs = errs.add("date", "Select a pickup date")
				}
				if o.PickupDetails == nil || o.PickupDetails.Slot == "" {
					errs = errs.add("slot", "Select a time slot")
				}
				return errs
			},
			next: always(StepConfirmation),
		},
		StepConfirmation: {
			requires: []Step{StepSchedule},
			check:    func(domain.OrderDetails) FieldErrors { return nil },
		},
	}
}

func always(s Step) func(domain.OrderDetails) Step {
	return func(domain.OrderDetails) Step { return s }
}

func ParseStep(s string) (Step, bool) {
	st := Step(strings.Trim(s, "/"))
	_, ok := graph[st]
	return st, ok
}

// Check reports why step is not complete for o. The same result drives both
// the disabled continue action and the inline errors.
func Check(step Step, o domain.OrderDetails) FieldErrors {
	n, ok := graph[step]
	if !ok {
		return FieldErrors{"step": "unknown step"}
	}
	return n.check(o)
}

// IsStepComplete is the named completion predicate of a step.
func IsStepComplete(step Step, o domain.OrderDetails) bool {
	return len(Check(step, o)) == 0
}

// Ready reports whether step's entry preconditions hold for o.
func Ready(step Step, o domain.OrderDetails) bool {
	n, ok := graph[step]
	if !ok {
		return false
	}
	if n.enter != nil && !n.enter(o) {
		return false
	}
	if len(n.requires) == 0 {
		return true
	}
	for _, r := range n.requires {
		if Ready(r, o) && IsStepComplete(r, o) {
			return true
		}
	}
	return false
}

// Next returns the step that follows step once it is complete.
func Next(step Step, o domain.OrderDetails) (Step, bool) {
	n, ok := graph[step]
	if !ok || n.next == nil {
		return "", false
	}
	return n.next(o), true
}

// Resume walks the main path and returns the first step that still needs input.
func Resume(o domain.OrderDetails) Step {
	step := StepAddress
	for i := 0; i < len(graph); i++ {
		if step == StepMaterial && o.MaterialSelection == nil && o.ClothOption != nil {
			step = StepCloth
		}
		if !IsStepComplete(step, o) {
			return step
		}
		next, ok := Next(step, o)
		if !ok {
			return step
		}
		step = next
	}
	return step
}

func checkLocation(o domain.OrderDetails) FieldErrors {
	if o.DeliveryAddress != nil || domain.Deref(o.DeliveryPincode) != "" {
		return nil
	}
	return FieldErrors{"pincode": "Enter a delivery pincode or choose a saved address"}
}

// CheckCustomDesign is complete when every aspect is chosen, or when a
// reference image was uploaded and nothing was chosen yet.
func CheckCustomDesign(sel map[domain.Aspect]domain.DesignChoice, uploads map[domain.Aspect]string) FieldErrors {
	selected := 0
	for _, a := range domain.DesignAspects {
		if sel[a].ID != "" {
			selected++
		}
	}
	if selected == len(domain.DesignAspects) {
		return nil
	}
	if selected == 0 && HasReferenceImage(uploads) {
		return nil
	}
	var errs FieldErrors
	if selected == 0 {
		errs = errs.add("customDesign", "Select every design option or upload a reference image")
	}
	for _, a := range domain.DesignAspects {
		if sel[a].ID == "" {
			errs = errs.add(string(a), "Select "+aspectLabel(a))
		}
	}
	return errs
}

func HasReferenceImage(uploads map[domain.Aspect]string) bool {
	for _, ref := range uploads {
		if strings.TrimSpace(ref) != "" {
			return true
		}
	}
	return false
}

func aspectLabel(a domain.Aspect) string {
	switch a {
	case domain.AspectEmbroidery:
		return "an embroidery style"
	case domain.AspectNeckFront:
		return "a front neck design"
	case domain.AspectNeckBack:
		return "a back neck design"
	case domain.AspectBlouseType:
		return "a blouse type"
	}
	return string(a)
}

func checkMaterial(o domain.OrderDetails) FieldErrors {
	ms := o.MaterialSelection
	if ms == nil {
		return FieldErrors{"materialSelection": "Tell us whether you want to buy fabric from the boutique"}
	}
	if ms.BuyFromUs && (ms.Fabric == nil || ms.Fabric.ID == "") {
		return FieldErrors{"fabric": "Select a fabric"}
	}
	return nil
}

func checkCloth(o domain.OrderDetails) FieldErrors {
	if o.ClothOption == nil {
		return FieldErrors{"clothOption": "Choose how the cloth will be sourced"}
	}
	switch *o.ClothOption {
	case domain.ClothOwn:
		if o.OwnClothDetails == nil {
			return FieldErrors{"ownClothDetails": "Describe the cloth you will provide"}
		}
		return CheckOwnCloth(*o.OwnClothDetails)
	case domain.ClothBoutique:
		if o.BoutiqueCloth == nil || o.BoutiqueCloth.ID == "" {
			return FieldErrors{"boutiqueCloth": "Select a cloth from the boutique"}
		}
		return nil
	}
	return FieldErrors{"clothOption": "must be one of: own, boutique"}
}

func CheckOwnCloth(c domain.OwnCloth) FieldErrors {
	c.Material = strings.TrimSpace(c.Material)
	c.Color = strings.TrimSpace(c.Color)
	c.Quantity = strings.TrimSpace(c.Quantity)
	return ValidateStruct(c)
}

func checkMeasurement(o domain.OrderDetails) FieldErrors {
	if o.MeasurementOption == nil {
		return FieldErrors{"measurementOption": "Choose how we should take your measurements"}
	}
	switch *o.MeasurementOption {
	case domain.MeasureManual:
		if o.Measurements == nil {
			return CheckManual(domain.Measurements{})
		}
		return CheckManual(*o.Measurements)
	case domain.MeasureHomeService:
		return CheckHomeService(o)
	case domain.MeasureOldGarment:
		return nil
	}
	return FieldErrors{"measurementOption": "must be one of: manual, homeService, oldGarment"}
}

// CheckManual blocks exactly when one of the nine required fields is blank.
func CheckManual(m domain.Measurements) FieldErrors {
	m.Bust = strings.TrimSpace(m.Bust)
	m.Waist = strings.TrimSpace(m.Waist)
	m.Hips = strings.TrimSpace(m.Hips)
	m.ShoulderToWaist = strings.TrimSpace(m.ShoulderToWaist)
	m.ArmLength = strings.TrimSpace(m.ArmLength)
	m.ArmHole = strings.TrimSpace(m.ArmHole)
	m.ArmCircumference = strings.TrimSpace(m.ArmCircumference)
	m.NeckDepthFront = strings.TrimSpace(m.NeckDepthFront)
	m.NeckDepthBack = strings.TrimSpace(m.NeckDepthBack)
	return ValidateStruct(m)
}

// CheckHomeService needs an address, a date and a time slot.
func CheckHomeService(o domain.OrderDetails) FieldErrors {
	var errs FieldErrors
	if !o.HasAddress() {
		errs = errs.add("address", "Select the address for the home visit")
	}
	if domain.Deref(o.ScheduledDate) == "" {
		errs = errs.add("date", "Select a date")
	}
	if domain.Deref(o.ScheduledTime) == "" {
		errs = errs.add("time", "Select a time slot")
	}
	return errs
}
