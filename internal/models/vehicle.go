package models

import (
	"gorm.io/gorm"
)

type RideType string

const (
	RideTypeCar   RideType = "car"
	RideTypeBike  RideType = "bike"
	RideTypeCycle RideType = "cycle"
	RideTypeTaxi  RideType = "taxi"
)

const (
	AvailabilityAvailable = "Available"
	AvailabilityBooked    = "Booked"
)

// Vehicle is the row shape shared by all four vehicle tables.
// The table is selected per ride type, never hardcoded in queries.
type Vehicle struct {
	gorm.Model
	Manufacturer    string  `json:"manufacturer" gorm:"column:manufacturer;not null"`
	VehicleModel    string  `json:"model" gorm:"column:model;not null"`
	CarNo           string  `json:"carNo" gorm:"column:car_no;not null"`
	ImgURL          string  `json:"imgUrl" gorm:"column:img_url"`
	SeatingCapacity int     `json:"seatingCapacity" gorm:"column:seating_capacity"`
	LuggageCapacity int     `json:"luggageCapacity" gorm:"column:luggage_capacity"`
	DailyRate       float64 `json:"dailyRate" gorm:"column:daily_rate;not null"`
	MonthlyRate     float64 `json:"monthlyRate" gorm:"column:monthly_rate"`
	Availability    string  `json:"availability" gorm:"column:availability;not null;default:'Available'"`
}

// VehicleInfo is the projection of a vehicle attached to fetched bookings:
// exactly the nine fields clients see on a booking's vehicle.
type VehicleInfo struct {
	ID              uint    `json:"id" gorm:"column:id"`
	Manufacturer    string  `json:"manufacturer" gorm:"column:manufacturer"`
	VehicleModel    string  `json:"model" gorm:"column:model"`
	CarNo           string  `json:"carNo" gorm:"column:car_no"`
	ImgURL          string  `json:"imgUrl" gorm:"column:img_url"`
	SeatingCapacity int     `json:"seatingCapacity" gorm:"column:seating_capacity"`
	LuggageCapacity int     `json:"luggageCapacity" gorm:"column:luggage_capacity"`
	DailyRate       float64 `json:"dailyRate" gorm:"column:daily_rate"`
	MonthlyRate     float64 `json:"monthlyRate" gorm:"column:monthly_rate"`
	Availability    string  `json:"availability" gorm:"column:availability"`
}

// VehicleInfoColumns are the columns selected when expanding a booking's vehicle.
const VehicleInfoColumns = "id, manufacturer, model, car_no, img_url, seating_capacity, luggage_capacity, daily_rate, monthly_rate, availability"

var vehicleTables = map[RideType]string{
	RideTypeCar:   "cars",
	RideTypeBike:  "bikes",
	RideTypeCycle: "cycles",
	RideTypeTaxi:  "taxis",
}

// VehicleTableNames lists all vehicle tables, used by migrations.
func VehicleTableNames() []string {
	return []string{"cars", "bikes", "cycles", "taxis"}
}

// Valid reports whether t is one of the four supported ride types.
func (t RideType) Valid() bool {
	_, ok := vehicleTables[t]
	return ok
}

// VehicleTable returns the vehicle table backing this ride type.
// Callers must check Valid() first; an unknown type returns "".
func (t RideType) VehicleTable() string {
	return vehicleTables[t]
}
