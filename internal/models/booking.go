package models

import (
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusWaiting   BookingStatus = "waiting for pickup"
	BookingStatusOngoing   BookingStatus = "ongoing"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// BookingCategory names one of the five booking stores. It is distinct from
// RideType: the type is what the caller asks for, the category is where the
// record lands.
type BookingCategory string

const (
	CategoryAirport    BookingCategory = "airport"
	CategoryRider      BookingCategory = "rider"
	CategoryCity       BookingCategory = "city"
	CategoryOutStation BookingCategory = "outstation"
	CategoryRental     BookingCategory = "rental"
)

var categoryTables = map[BookingCategory]string{
	CategoryAirport:    "airport_bookings",
	CategoryRider:      "rider_bookings",
	CategoryCity:       "city_bookings",
	CategoryOutStation: "outstation_bookings",
	CategoryRental:     "rental_bookings",
}

// Table returns the table backing this booking category.
func (c BookingCategory) Table() string {
	return categoryTables[c]
}

// AllCategories returns the five categories in their fixed read order.
// getBookings output order depends on this order staying stable.
func AllCategories() []BookingCategory {
	return []BookingCategory{CategoryAirport, CategoryRider, CategoryCity, CategoryOutStation, CategoryRental}
}

// CategoryForRideType maps a ride type to the category store its bookings are
// written to. The mapping is partial on purpose: airport and outstation are
// never written by booking confirmation, and cycle lands in rental. This
// mirrors the upstream product behavior and must not be "fixed" here without
// a product decision.
func CategoryForRideType(t RideType) (BookingCategory, bool) {
	switch t {
	case RideTypeCar, RideTypeTaxi:
		return CategoryCity, true
	case RideTypeBike:
		return CategoryRider, true
	case RideTypeCycle:
		return CategoryRental, true
	}
	return "", false
}

// StatusFilter translates a caller-facing status into the set of stored
// booking statuses it covers. ok is false for unknown statuses.
func StatusFilter(status string) (statuses []BookingStatus, ok bool) {
	switch status {
	case "upcoming":
		return []BookingStatus{BookingStatusWaiting, BookingStatusOngoing}, true
	case "completed":
		return []BookingStatus{BookingStatusCompleted}, true
	case "canceled":
		return []BookingStatus{BookingStatusCanceled}, true
	}
	return nil, false
}

// Booking is the row shape shared by all five booking tables.
type Booking struct {
	gorm.Model
	RideCategory        RideType      `json:"rideCategory" gorm:"column:ride_category;not null"`
	PickupLocation      string        `json:"pickupLocation" gorm:"column:pickup_location;not null"`
	DestinationLocation string        `json:"destinationLocation" gorm:"column:destination_location;not null"`
	Distance            float64       `json:"distance" gorm:"column:distance"`
	Duration            string        `json:"duration" gorm:"column:duration"`
	BookingDate         string        `json:"bookingDate" gorm:"column:booking_date"`
	BookingTime         string        `json:"bookingTime" gorm:"column:booking_time"`
	PassengerID         uint          `json:"passengerId" gorm:"column:passenger_id;not null;index"`
	BookingStatus       BookingStatus `json:"bookingStatus" gorm:"column:booking_status;not null"`
	VehicleID           uint          `json:"carId" gorm:"column:vehicle_id;not null"`
	PayableAmount       float64       `json:"payableAmount" gorm:"column:payable_amount"`

	// Filled on reads by expanding the vehicle reference; never stored.
	Vehicle *VehicleInfo `json:"vehicle,omitempty" gorm:"-"`
}
