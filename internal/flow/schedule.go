package flow

import (
	"time"
)

const DateLayout = "2006-01-02"

// BookingWindow is how many days ahead a visit or pickup can be booked.
const BookingWindow = 7

type TimeSlot struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

var dailySlots = []struct {
	label string
	hour  int
}{
	{"09:00 AM - 11:00 AM", 9},
	{"11:00 AM - 01:00 PM", 11},
	{"02:00 PM - 04:00 PM", 14},
	{"04:00 PM - 06:00 PM", 16},
	{"06:00 PM - 08:00 PM", 18},
}

// SlotsFor lists the day's slots; a slot that has already started is unavailable.
func SlotsFor(date string, now time.Time) ([]TimeSlot, error) {
	day, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return nil, err
	}
	out := make([]TimeSlot, 0, len(dailySlots))
	for _, s := range dailySlots {
		start := day.Add(time.Duration(s.hour) * time.Hour)
		out = append(out, TimeSlot{Slot: s.label, Available: start.After(now)})
	}
	return out, nil
}

// AvailableSlots is SlotsFor filtered to bookable slots.
func AvailableSlots(date string, now time.Time) ([]TimeSlot, error) {
	all, err := SlotsFor(date, now)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, s := range all {
		if s.Available {
			out = append(out, s)
		}
	}
	return out, nil
}

// SelectableDates returns the booking window starting tomorrow.
func SelectableDates(now time.Time) []string {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	out := make([]string, 0, BookingWindow)
	for i := 1; i <= BookingWindow; i++ {
		out = append(out, today.AddDate(0, 0, i).Format(DateLayout))
	}
	return out
}

// CheckSchedule validates a date and slot pair against the slots offered for that date.
func CheckSchedule(date, slot string, now time.Time) FieldErrors {
	var errs FieldErrors
	if date == "" {
		errs = errs.add("date", "Select a date")
	}
	if slot == "" {
		errs = errs.add("slot", "Select a time slot")
	}
	if errs != nil {
		return errs
	}
	if !dateSelectable(date, now) {
		return errs.add("date", "Choose one of the next 7 days")
	}
	slots, err := AvailableSlots(date, now)
	if err != nil {
		return errs.add("date", "Invalid date")
	}
	for _, s := range slots {
		if s.Slot == slot {
			return nil
		}
	}
	return errs.add("slot", "This slot is not available")
}

func dateSelectable(date string, now time.Time) bool {
	for _, d := range SelectableDates(now) {
		if d == date {
			return true
		}
	}
	return false
}
