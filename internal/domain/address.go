package domain

import "strings"

type AddressType string

const (
	AddressHome   AddressType = "home"
	AddressWork   AddressType = "work"
	AddressOffice AddressType = "office"
)

// Address is a saved delivery address owned by the user profile.
type Address struct {
	ID           string      `json:"id"`
	FullName     string      `json:"fullName" validate:"required,min=2"`
	Phone        string      `json:"phone" validate:"required,len=10,numeric"`
	DoorNo       string      `json:"doorNo" validate:"required"`
	AddressLine1 string      `json:"addressLine1" validate:"required"`
	Area         string      `json:"area" validate:"required"`
	Landmark     string      `json:"landmark,omitempty"`
	Pincode      string      `json:"pincode" validate:"required,pincode"`
	IsDefault    bool        `json:"isDefault,omitempty"`
	Type         AddressType `json:"type,omitempty" validate:"omitempty,oneof=home work office"`
}

// OneLine renders the address the way summaries show it.
func (a Address) OneLine() string {
	parts := []string{a.DoorNo, a.AddressLine1, a.Area}
	if a.Landmark != "" {
		parts = append(parts, "near "+a.Landmark)
	}
	out := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	s := strings.Join(out, ", ")
	if a.Pincode != "" {
		s += " - " + a.Pincode
	}
	return s
}

// MarkDefault returns a copy of list where only the address with id is default.
// An unknown id leaves no default at all.
func MarkDefault(list []Address, id string) []Address {
	out := make([]Address, len(list))
	for i, a := range list {
		a.IsDefault = a.ID == id
		out[i] = a
	}
	return out
}

// NormalizeDefaults keeps the first default and unmarks the rest.
func NormalizeDefaults(list []Address) []Address {
	for _, a := range list {
		if a.IsDefault {
			return MarkDefault(list, a.ID)
		}
	}
	out := make([]Address, len(list))
	copy(out, list)
	return out
}

func FindAddress(list []Address, id string) (Address, bool) {
	for _, a := range list {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

func DefaultAddress(list []Address) (Address, bool) {
	for _, a := range list {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}
