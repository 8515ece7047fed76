package domain

import (
	"reflect"
	"sort"
)

type DesignType string

const (
	DesignPredesigned DesignType = "predesigned"
	DesignCustom      DesignType = "custom"
)

func (d DesignType) Valid() bool {
	return d == DesignPredesigned || d == DesignCustom
}

// ClothSource is the legacy cloth sourcing choice that predates MaterialSelection.
type ClothSource string

const (
	ClothOwn      ClothSource = "own"
	ClothBoutique ClothSource = "boutique"
)

type MeasurementMethod string

const (
	MeasureManual      MeasurementMethod = "manual"
	MeasureHomeService MeasurementMethod = "homeService"
	MeasureOldGarment  MeasurementMethod = "oldGarment"
)

// Aspect keys a custom design decision (and its optional upload).
type Aspect string

const (
	AspectEmbroidery Aspect = "embroidery"
	AspectNeckFront  Aspect = "neckFront"
	AspectNeckBack   Aspect = "neckBack"
	AspectBlouseType Aspect = "blouseType"

	// AspectReference holds a whole-garment reference image.
	AspectReference Aspect = "reference"
)

// DesignAspects are the fixed sections of the custom design builder, in display order.
var DesignAspects = []Aspect{AspectEmbroidery, AspectNeckFront, AspectNeckBack, AspectBlouseType}

type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StyleChoice struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

type DesignChoice struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Fabric struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type MaterialSelection struct {
	BuyFromUs bool    `json:"buyFromUs"`
	Fabric    *Fabric `json:"fabric,omitempty"`
}

type OwnCloth struct {
	Material string `json:"material" validate:"required"`
	Color    string `json:"color" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
}

type ClothOption struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// Measurements are kept as entered; the nine tagged fields gate the manual path.
type Measurements struct {
	Bust             string `json:"bust" validate:"required"`
	Waist            string `json:"waist" validate:"required"`
	Hips             string `json:"hips" validate:"required"`
	ShoulderToWaist  string `json:"shoulderToWaist" validate:"required"`
	ArmLength        string `json:"armLength" validate:"required"`
	ArmHole          string `json:"armHole" validate:"required"`
	ArmCircumference string `json:"armCircumference" validate:"required"`
	NeckDepthFront   string `json:"neckDepthFront" validate:"required"`
	NeckDepthBack    string `json:"neckDepthBack" validate:"required"`
	Additional       string `json:"additional,omitempty"`
}

type PickupDetails struct {
	Date    string   `json:"date"`
	Slot    string   `json:"slot"`
	Address *Address `json:"address,omitempty"`
}

// OrderDetails is the order being composed across the checkout steps.
// Every field is optional; a nil field has not been chosen yet.
type OrderDetails struct {
	Boutique *EntityRef `json:"boutique,omitempty"`
	Service  *EntityRef `json:"service,omitempty"`

	DeliveryPincode   *string  `json:"deliveryPincode,omitempty"`
	DeliveryAddress   *Address `json:"deliveryAddress,omitempty"`
	SelectedAddressID *string  `json:"selectedAddressId,omitempty"`

	DesignType       *DesignType             `json:"designType,omitempty"`
	PredesignedStyle *StyleChoice            `json:"predesignedStyle,omitempty"`
	CustomDesign     map[Aspect]DesignChoice `json:"customDesign,omitempty"`
	CustomUploads    map[Aspect]string       `json:"customUploads,omitempty"`

	MaterialSelection *MaterialSelection `json:"materialSelection,omitempty"`

	ClothOption     *ClothSource `json:"clothOption,omitempty"`
	OwnClothDetails *OwnCloth    `json:"ownClothDetails,omitempty"`
	BoutiqueCloth   *ClothOption `json:"boutiqueCloth,omitempty"`

	MeasurementOption *MeasurementMethod `json:"measurementOption,omitempty"`
	Measurements      *Measurements      `json:"measurements,omitempty"`
	ScheduledDate     *string            `json:"scheduledDate,omitempty"`
	ScheduledTime     *string            `json:"scheduledTime,omitempty"`

	PickupDetails *PickupDetails `json:"pickupDetails,omitempty"`
	TermsAccepted *bool          `json:"termsAccepted,omitempty"`

	TotalPrice       *float64 `json:"totalPrice,omitempty"`
	DeliveryEstimate *string  `json:"deliveryEstimate,omitempty"`
}

// Field names an OrderDetails key by its JSON name.
type Field string

const (
	FieldBoutique          Field = "boutique"
	FieldService           Field = "service"
	FieldDeliveryPincode   Field = "deliveryPincode"
	FieldDeliveryAddress   Field = "deliveryAddress"
	FieldSelectedAddressID Field = "selectedAddressId"
	FieldDesignType        Field = "designType"
	FieldPredesignedStyle  Field = "predesignedStyle"
	FieldCustomDesign      Field = "customDesign"
	FieldCustomUploads     Field = "customUploads"
	FieldMaterialSelection Field = "materialSelection"
	FieldClothOption       Field = "clothOption"
	FieldOwnClothDetails   Field = "ownClothDetails"
	FieldBoutiqueCloth     Field = "boutiqueCloth"
	FieldMeasurementOption Field = "measurementOption"
	FieldMeasurements      Field = "measurements"
	FieldScheduledDate     Field = "scheduledDate"
	FieldScheduledTime     Field = "scheduledTime"
	FieldPickupDetails     Field = "pickupDetails"
	FieldTermsAccepted     Field = "termsAccepted"
	FieldTotalPrice        Field = "totalPrice"
	FieldDeliveryEstimate  Field = "deliveryEstimate"
)

// fieldIndex maps JSON names to struct positions of OrderDetails.
var fieldIndex = func() map[Field]int {
	t := reflect.TypeOf(OrderDetails{})
	idx := make(map[Field]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("json")
		for j := 0; j < len(name); j++ {
			if name[j] == ',' {
				name = name[:j]
				break
			}
		}
		idx[Field(name)] = i
	}
	return idx
}()

func (f Field) Known() bool {
	_, ok := fieldIndex[f]
	return ok
}

// Patch is a partial OrderDetails. Set fields overwrite, Clear unsets.
type Patch struct {
	OrderDetails
	Clear []Field `json:"clear,omitempty"`
}

// Merge returns o with p applied shallowly: clears first, then every set
// field of p replaces the field of o as a whole. Nested values are never
// merged key by key.
func (o OrderDetails) Merge(p Patch) OrderDetails {
	out := o.Clone()
	dst := reflect.ValueOf(&out).Elem()
	for _, f := range p.Clear {
		if i, ok := fieldIndex[f]; ok {
			dst.Field(i).SetZero()
		}
	}
	src := reflect.ValueOf(p.OrderDetails.Clone())
	for i := 0; i < src.NumField(); i++ {
		if !src.Field(i).IsNil() {
			dst.Field(i).Set(src.Field(i))
		}
	}
	return out
}

// Then composes two patches so that applying the result equals applying p then q.
func (p Patch) Then(q Patch) Patch {
	out := Patch{OrderDetails: p.OrderDetails.Merge(q)}
	set := q.SetFields()
	seen := map[Field]bool{}
	for _, f := range append(append([]Field{}, p.Clear...), q.Clear...) {
		if seen[f] {
			continue
		}
		seen[f] = true
		if containsField(set, f) {
			continue
		}
		out.Clear = append(out.Clear, f)
	}
	return out
}

// SetFields lists the fields p assigns, sorted by name.
func (p Patch) SetFields() []Field {
	v := reflect.ValueOf(p.OrderDetails)
	var out []Field
	for f, i := range fieldIndex {
		if !v.Field(i).IsNil() {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (o OrderDetails) IsZero() bool {
	return reflect.ValueOf(o).IsZero()
}

// Clone copies o so that no pointer or map is shared with the result.
func (o OrderDetails) Clone() OrderDetails {
	c := OrderDetails{
		Boutique:          clonePtr(o.Boutique),
		Service:           clonePtr(o.Service),
		DeliveryPincode:   clonePtr(o.DeliveryPincode),
		DeliveryAddress:   clonePtr(o.DeliveryAddress),
		SelectedAddressID: clonePtr(o.SelectedAddressID),
		DesignType:        clonePtr(o.DesignType),
		PredesignedStyle:  clonePtr(o.PredesignedStyle),
		CustomDesign:      cloneMap(o.CustomDesign),
		CustomUploads:     cloneMap(o.CustomUploads),
		ClothOption:       clonePtr(o.ClothOption),
		OwnClothDetails:   clonePtr(o.OwnClothDetails),
		BoutiqueCloth:     clonePtr(o.BoutiqueCloth),
		MeasurementOption: clonePtr(o.MeasurementOption),
		Measurements:      clonePtr(o.Measurements),
		ScheduledDate:     clonePtr(o.ScheduledDate),
		ScheduledTime:     clonePtr(o.ScheduledTime),
		TermsAccepted:     clonePtr(o.TermsAccepted),
		TotalPrice:        clonePtr(o.TotalPrice),
		DeliveryEstimate:  clonePtr(o.DeliveryEstimate),
	}
	if o.MaterialSelection != nil {
		ms := *o.MaterialSelection
		ms.Fabric = clonePtr(ms.Fabric)
		c.MaterialSelection = &ms
	}
	if o.PickupDetails != nil {
		pd := *o.PickupDetails
		pd.Address = clonePtr(pd.Address)
		c.PickupDetails = &pd
	}
	return c
}

// HasAddress reports whether a concrete delivery address is chosen.
func (o OrderDetails) HasAddress() bool {
	return o.DeliveryAddress != nil || (o.SelectedAddressID != nil && *o.SelectedAddressID != "")
}

func (o OrderDetails) DesignTypeIs(d DesignType) bool {
	return o.DesignType != nil && *o.DesignType == d
}

func (o OrderDetails) MeasurementIs(m MeasurementMethod) bool {
	return o.MeasurementOption != nil && *o.MeasurementOption == m
}

func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the pointee or the zero value.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func containsField(list []Field, f Field) bool {
	for _, x := range list {
		if x == f {
			return true
		}
	}
	return false
}
