//go:build integration

package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/ridelink/ridelink-backend/internal/database"
	"github.com/ridelink/ridelink-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5433"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "ridelink_test"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	dropAllTables()
	if err := database.RunMigrations(testDB); err != nil {
		log.Fatalf("failed to migrate test database: %v", err)
	}

	code := m.Run()

	dropAllTables()
	os.Exit(code)
}

func dropAllTables() {
	for _, table := range models.VehicleTableNames() {
		testDB.Exec("DROP TABLE IF EXISTS " + table)
	}
	for _, category := range models.AllCategories() {
		testDB.Exec("DROP TABLE IF EXISTS " + category.Table())
	}
	testDB.Exec("DROP TABLE IF EXISTS users")
}

func cleanTables(t *testing.T) {
	t.Helper()
	for _, table := range models.VehicleTableNames() {
		require.NoError(t, testDB.Exec("DELETE FROM "+table).Error)
	}
	for _, category := range models.AllCategories() {
		require.NoError(t, testDB.Exec("DELETE FROM "+category.Table()).Error)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func createVehicle(t *testing.T, rideType models.RideType, dailyRate float64) models.Vehicle {
	t.Helper()
	vehicle := models.Vehicle{
		Manufacturer:    "Toyota",
		VehicleModel:    "Corolla",
		CarNo:           "KDA 123X",
		ImgURL:          "https://cdn.example.com/corolla.jpg",
		SeatingCapacity: 4,
		LuggageCapacity: 2,
		DailyRate:       dailyRate,
		MonthlyRate:     dailyRate * 24,
		Availability:    models.AvailabilityAvailable,
	}
	require.NoError(t, testDB.Table(rideType.VehicleTable()).Create(&vehicle).Error)
	return vehicle
}

func confirmBody(rideType string, vehicleID uint, promoCode string) string {
	body := map[string]interface{}{
		"currentLocation": "Central Station",
		"destination":     "Harbor View",
		"rideType":        rideType,
		"vehicleId":       vehicleID,
		"bookingDate":     "2026-09-01",
		"bookingTime":     "10:30",
		"duration":        "45 min",
		"distance":        100.0,
	}
	if promoCode != "" {
		body["promoCode"] = promoCode
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func countRows(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, testDB.Table(table).Count(&n).Error)
	return n
}

func TestConfirmBooking_VehicleNotFound(t *testing.T) {
	cleanTables(t)

	w := postJSON(t, ConfirmBooking(testDB, nil), "/api/bookings/confirm", confirmBody("car", 9999, ""))

	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "Vehicle not found.", errorMessage(t, w))
	for _, category := range models.AllCategories() {
		assert.Zero(t, countRows(t, category.Table()))
	}
}

func TestConfirmBooking_CarPricedAndStoredInCity(t *testing.T) {
	cleanTables(t)
	vehicle := createVehicle(t, models.RideTypeCar, 50)

	w := postJSON(t, ConfirmBooking(testDB, nil), "/api/bookings/confirm", confirmBody("car", vehicle.ID, ""))
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp struct {
		Message        string         `json:"message"`
		BookingDetails models.Booking `json:"bookingDetails"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Booking confirmed successfully.", resp.Message)
	assert.Equal(t, 50.0, resp.BookingDetails.PayableAmount) // 100 * 50 / 100
	assert.Equal(t, models.BookingStatusWaiting, resp.BookingDetails.BookingStatus)
	assert.Equal(t, uint(42), resp.BookingDetails.PassengerID)

	assert.EqualValues(t, 1, countRows(t, "city_bookings"))
	assert.Zero(t, countRows(t, "airport_bookings"))
	assert.Zero(t, countRows(t, "rider_bookings"))

	var updated models.Vehicle
	require.NoError(t, testDB.Table("cars").First(&updated, vehicle.ID).Error)
	assert.Equal(t, models.AvailabilityBooked, updated.Availability)
}

func TestConfirmBooking_PromoCodeTakesTenPercentOff(t *testing.T) {
	cleanTables(t)
	vehicle := createVehicle(t, models.RideTypeCar, 50)

	w := postJSON(t, ConfirmBooking(testDB, nil), "/api/bookings/confirm", confirmBody("car", vehicle.ID, "SAVE10"))
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp struct {
		BookingDetails models.Booking `json:"bookingDetails"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 45.0, resp.BookingDetails.PayableAmount)
}

func TestConfirmBooking_CycleLandsInRentalStore(t *testing.T) {
	cleanTables(t)
	vehicle := createVehicle(t, models.RideTypeCycle, 20)

	w := postJSON(t, ConfirmBooking(testDB, nil), "/api/bookings/confirm", confirmBody("cycle", vehicle.ID, ""))
	require.Equal(t, 201, w.Code, w.Body.String())

	assert.EqualValues(t, 1, countRows(t, "rental_bookings"))
	assert.Zero(t, countRows(t, "city_bookings"))
}

func TestConfirmBooking_TaxiSharesCityStore(t *testing.T) {
	cleanTables(t)
	vehicle := createVehicle(t, models.RideTypeTaxi, 60)

	w := postJSON(t, ConfirmBooking(testDB, nil), "/api/bookings/confirm", confirmBody("taxi", vehicle.ID, ""))
	require.Equal(t, 201, w.Code, w.Body.String())

	assert.EqualValues(t, 1, countRows(t, "city_bookings"))
}

func seedBooking(t *testing.T, category models.BookingCategory, rideType models.RideType, passengerID, vehicleID uint, status models.BookingStatus) {
	t.Helper()
	booking := models.Booking{
		RideCategory:        rideType,
		PickupLocation:      "Central Station",
		DestinationLocation: "Harbor View",
		Distance:            10,
		Duration:            "20 min",
		BookingDate:         "2026-09-01",
		BookingTime:         "10:30",
		PassengerID:         passengerID,
		BookingStatus:       status,
		VehicleID:           vehicleID,
		PayableAmount:       5,
	}
	require.NoError(t, testDB.Table(category.Table()).Create(&booking).Error)
}

func TestGetBookings_UpcomingUnionAcrossStores(t *testing.T) {
	cleanTables(t)
	car := createVehicle(t, models.RideTypeCar, 50)
	bike := createVehicle(t, models.RideTypeBike, 30)

	// One matching booking per store, in mixed statuses and owners.
	seedBooking(t, models.CategoryAirport, models.RideTypeCar, 42, car.ID, models.BookingStatusWaiting)
	seedBooking(t, models.CategoryRider, models.RideTypeBike, 42, bike.ID, models.BookingStatusOngoing)
	seedBooking(t, models.CategoryCity, models.RideTypeCar, 42, car.ID, models.BookingStatusWaiting)
	seedBooking(t, models.CategoryOutStation, models.RideTypeCar, 42, car.ID, models.BookingStatusCompleted) // filtered out
	seedBooking(t, models.CategoryRental, models.RideTypeCar, 42, car.ID, models.BookingStatusOngoing)
	seedBooking(t, models.CategoryCity, models.RideTypeCar, 7, car.ID, models.BookingStatusWaiting) // other passenger

	w := getRequest(t, GetBookings(testDB), "/api/bookings?status=upcoming")
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		Message  string           `json:"message"`
		Bookings []models.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "upcoming bookings retrieved successfully.", resp.Message)
	require.Len(t, resp.Bookings, 4)

	// Store iteration order: airport, rider, city, outstation, rental.
	assert.Equal(t, models.RideTypeCar, resp.Bookings[0].RideCategory)
	assert.Equal(t, models.RideTypeBike, resp.Bookings[1].RideCategory)

	for _, b := range resp.Bookings {
		assert.Equal(t, uint(42), b.PassengerID)
		require.NotNil(t, b.Vehicle, "vehicle reference must be expanded")
	}

	expanded := resp.Bookings[0].Vehicle
	assert.Equal(t, "Toyota", expanded.Manufacturer)
	assert.Equal(t, "Corolla", expanded.VehicleModel)
	assert.Equal(t, "KDA 123X", expanded.CarNo)
	assert.Equal(t, "https://cdn.example.com/corolla.jpg", expanded.ImgURL)
	assert.Equal(t, 4, expanded.SeatingCapacity)
	assert.Equal(t, 2, expanded.LuggageCapacity)
	assert.Equal(t, 50.0, expanded.DailyRate)
	assert.Equal(t, 1200.0, expanded.MonthlyRate)
	assert.Equal(t, models.AvailabilityAvailable, expanded.Availability)
}

func TestGetBookings_CanceledFilter(t *testing.T) {
	cleanTables(t)
	car := createVehicle(t, models.RideTypeCar, 50)

	seedBooking(t, models.CategoryCity, models.RideTypeCar, 42, car.ID, models.BookingStatusCanceled)
	seedBooking(t, models.CategoryCity, models.RideTypeCar, 42, car.ID, models.BookingStatusWaiting)

	w := getRequest(t, GetBookings(testDB), "/api/bookings?status=canceled")
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		Bookings []models.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, models.BookingStatusCanceled, resp.Bookings[0].BookingStatus)
}
