package domain

import "errors"

var ErrNotFound = errors.New("not found")

type Boutique struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	Pincode     string    `json:"pincode,omitempty"`
	ImageURLs   []string  `json:"imageUrls"`
	Rating      float64   `json:"rating"`
	IsOpen      bool      `json:"isOpen"`
	Services    []Service `json:"services,omitempty"`
}

func (b Boutique) Service(id string) (Service, bool) {
	for _, s := range b.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	BasePrice   float64 `json:"basePrice,omitempty"`
}

// Style is a predesigned garment style offered for a service.
type Style struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
}

// Material is a fabric the boutique sells for a service.
type Material struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type,omitempty"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

func FindStyle(list []Style, id string) (Style, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return Style{}, false
}

func FindMaterial(list []Material, id string) (Material, bool) {
	for _, m := range list {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

func FindService(list []Service, id string) (Service, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

type User struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type ProfileUpdate struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}
