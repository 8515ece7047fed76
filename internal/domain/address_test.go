package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkDefaultKeepsSingleDefault(t *testing.T) {
	list := []Address{
		{ID: "a1", IsDefault: true},
		{ID: "a2"},
		{ID: "a3", IsDefault: true},
	}

	out := MarkDefault(list, "a2")

	var defaults []string
	for _, a := range out {
		if a.IsDefault {
			defaults = append(defaults, a.ID)
		}
	}
	assert.Equal(t, []string{"a2"}, defaults)
	assert.True(t, list[0].IsDefault, "input is not modified")
}

func TestNormalizeDefaults(t *testing.T) {
	out := NormalizeDefaults([]Address{{ID: "a1"}, {ID: "a2", IsDefault: true}, {ID: "a3", IsDefault: true}})

	d, ok := DefaultAddress(out)
	assert.True(t, ok)
	assert.Equal(t, "a2", d.ID)
	assert.False(t, out[2].IsDefault)
}

func TestAddressOneLine(t *testing.T) {
	a := Address{DoorNo: "12", AddressLine1: "MG Road", Area: "Indiranagar", Landmark: "Metro", Pincode: "560038"}
	assert.Equal(t, "12, MG Road, Indiranagar, near Metro - 560038", a.OneLine())
}
