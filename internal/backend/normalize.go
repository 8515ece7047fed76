package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/RaikyD/stitch-storefront/internal/domain"
)

// The API is not consistent about shapes: ids come as id or _id, image lists
// as a string or an array, numbers sometimes as strings. Everything below is
// decoded leniently once and converted to the canonical domain types.

type flexStrings []string

func (f *flexStrings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*f = nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s = strings.TrimSpace(s); s != "" {
			*f = flexStrings{s}
		}
	case b[0] == '[':
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		out := make(flexStrings, 0, len(list))
		for _, s := range list {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*f = out
	}
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		// arrays or objects (e.g. a ratings breakdown) carry no single value
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(string(b))
	return nil
}

// flexAddress accepts a plain string or an address object.
type flexAddress string

func (f *flexAddress) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexAddress(s)
		return nil
	}
	var obj struct {
		Street       string     `json:"street"`
		AddressLine1 string     `json:"addressLine1"`
		Area         string     `json:"area"`
		City         string     `json:"city"`
		Pincode      flexString `json:"pincode"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	parts := []string{}
	for _, p := range []string{obj.Street, obj.AddressLine1, obj.Area, obj.City, string(obj.Pincode)} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	*f = flexAddress(strings.Join(parts, ", "))
	return nil
}

type ids struct {
	ID    flexString `json:"id"`
	Mongo flexString `json:"_id"`
}

func (i ids) value() string {
	if i.ID != "" {
		return string(i.ID)
	}
	return string(i.Mongo)
}

type rawBoutique struct {
	ids
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Address     flexAddress  `json:"address"`
	Location    flexAddress  `json:"location"`
	Pincode     flexString   `json:"pincode"`
	ImageURLs   flexStrings  `json:"imageUrls"`
	Images      flexStrings  `json:"images"`
	Image       flexStrings  `json:"image"`
	Rating      *flexFloat   `json:"rating"`
	Ratings     *flexFloat   `json:"ratings"`
	IsOpen      *bool        `json:"isOpen"`
	IsActive    *bool        `json:"isActive"`
	Services    []rawService `json:"services"`
}

func (r rawBoutique) canonical() domain.Boutique {
	b := domain.Boutique{
		ID:          r.value(),
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Address:     string(r.Address),
		Pincode:     string(r.Pincode),
		ImageURLs:   firstNonEmpty(r.ImageURLs, r.Images, r.Image),
		IsOpen:      true,
	}
	if b.Address == "" {
		b.Address = string(r.Location)
	}
	if b.ImageURLs == nil {
		b.ImageURLs = []string{}
	}
	switch {
	case r.Rating != nil:
		b.Rating = float64(*r.Rating)
	case r.Ratings != nil:
		b.Rating = float64(*r.Ratings)
	}
	switch {
	case r.IsOpen != nil:
		b.IsOpen = *r.IsOpen
	case r.IsActive != nil:
		b.IsOpen = *r.IsActive
	}
	for _, s := range r.Services {
		b.Services = append(b.Services, s.canonical())
	}
	return b
}

type rawService struct {
	ids
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       flexStrings `json:"image"`
	ImageURLs   flexStrings `json:"imageUrls"`
	Price       *flexFloat  `json:"price"`
	BasePrice   *flexFloat  `json:"basePrice"`
}

func (r rawService) canonical() domain.Service {
	s := domain.Service{
		ID:          r.value(),
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
	}
	if imgs := firstNonEmpty(r.Image, r.ImageURLs); len(imgs) > 0 {
		s.Image = imgs[0]
	}
	s.BasePrice = firstFloat(r.BasePrice, r.Price)
	return s
}

type rawStyle struct {
	ids
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       *flexFloat  `json:"price"`
	Image       flexStrings `json:"image"`
	ImageURL    flexStrings `json:"imageUrl"`
	ImageURLs   flexStrings `json:"imageUrls"`
}

func (r rawStyle) canonical() domain.Style {
	s := domain.Style{
		ID:          r.value(),
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Price:       firstFloat(r.Price),
	}
	if s.Name == "" {
		s.Name = strings.TrimSpace(r.Title)
	}
	if imgs := firstNonEmpty(r.Image, r.ImageURL, r.ImageURLs); len(imgs) > 0 {
		s.Image = imgs[0]
	}
	return s
}

type rawMaterial struct {
	ids
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Category  string      `json:"category"`
	Price     *flexFloat  `json:"price"`
	PricePerM *flexFloat  `json:"pricePerMeter"`
	Image     flexStrings `json:"image"`
	ImageURLs flexStrings `json:"imageUrls"`
}

func (r rawMaterial) canonical() domain.Material {
	m := domain.Material{
		ID:    r.value(),
		Name:  strings.TrimSpace(r.Name),
		Type:  r.Type,
		Price: firstFloat(r.Price, r.PricePerM),
	}
	if m.Type == "" {
		m.Type = r.Category
	}
	if imgs := firstNonEmpty(r.Image, r.ImageURLs); len(imgs) > 0 {
		m.Image = imgs[0]
	}
	return m
}

type rawAddress struct {
	ids
	FullName     string     `json:"fullName"`
	Phone        flexString `json:"phone"`
	DoorNo       string     `json:"doorNo"`
	AddressLine1 string     `json:"addressLine1"`
	Area         string     `json:"area"`
	Landmark     string     `json:"landmark"`
	Pincode      flexString `json:"pincode"`
	IsDefault    bool       `json:"isDefault"`
	Type         string     `json:"type"`
}

func (r rawAddress) canonical() domain.Address {
	return domain.Address{
		ID:           r.value(),
		FullName:     r.FullName,
		Phone:        string(r.Phone),
		DoorNo:       r.DoorNo,
		AddressLine1: r.AddressLine1,
		Area:         r.Area,
		Landmark:     r.Landmark,
		Pincode:      string(r.Pincode),
		IsDefault:    r.IsDefault,
		Type:         domain.AddressType(strings.ToLower(r.Type)),
	}
}

type rawUser struct {
	ids
	Phone       flexString `json:"phone"`
	PhoneNumber flexString `json:"phoneNumber"`
	Name        string     `json:"name"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
}

func (r rawUser) canonical() domain.User {
	u := domain.User{ID: r.value(), Phone: string(r.Phone), Name: r.Name, Email: r.Email}
	if u.Phone == "" {
		u.Phone = string(r.PhoneNumber)
	}
	if u.Name == "" {
		u.Name = r.FullName
	}
	return u
}

func firstNonEmpty(lists ...flexStrings) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return []string(l)
		}
	}
	return nil
}

func firstFloat(vals ...*flexFloat) float64 {
	for _, v := range vals {
		if v != nil {
			return float64(*v)
		}
	}
	return 0
}
