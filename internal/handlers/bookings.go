package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ridelink/ridelink-backend/internal/models"
	"github.com/ridelink/ridelink-backend/internal/services"
	"github.com/ridelink/ridelink-backend/pkg/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ConfirmBooking validates the requested ride type, prices the trip and
// persists a booking into the category store mapped from the ride type.
// The booking insert and the vehicle availability update are two separate
// writes with no transaction between them: a failure on the second write
// leaves the booking persisted and the vehicle still available.
func ConfirmBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			CurrentLocation string  `json:"currentLocation" binding:"required"`
			Destination     string  `json:"destination" binding:"required"`
			RideType        string  `json:"rideType" binding:"required"`
			VehicleID       uint    `json:"vehicleId" binding:"required"`
			BookingDate     string  `json:"bookingDate"`
			BookingTime     string  `json:"bookingTime"`
			PromoCode       string  `json:"promoCode"`
			Duration        string  `json:"duration"`
			Distance        float64 `json:"distance"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		rideType := models.RideType(input.RideType)
		if !rideType.Valid() {
			c.JSON(400, gin.H{"error": "Invalid ride type provided."})
			return
		}

		var vehicle models.Vehicle
		if err := db.Table(rideType.VehicleTable()).First(&vehicle, input.VehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(404, gin.H{"error": "Vehicle not found."})
				return
			}
			log.Printf("Error loading %s %d: %v", rideType, input.VehicleID, err)
			c.JSON(500, gin.H{"error": "Something went wrong while booking the ride."})
			return
		}

		fare := utils.CalculateBookingFare(input.Distance, vehicle.DailyRate, input.PromoCode)

		category, ok := models.CategoryForRideType(rideType)
		if !ok {
			// Unreachable while every valid ride type has a category; kept so a
			// future ride type cannot silently report success without a record.
			log.Printf("No booking category mapped for ride type %q", rideType)
			c.JSON(500, gin.H{"error": "Something went wrong while booking the ride."})
			return
		}

		booking := models.Booking{
			RideCategory:        rideType,
			PickupLocation:      input.CurrentLocation,
			DestinationLocation: input.Destination,
			Distance:            input.Distance,
			Duration:            input.Duration,
			BookingDate:         input.BookingDate,
			BookingTime:         input.BookingTime,
			PassengerID:         userId,
			BookingStatus:       models.BookingStatusWaiting,
			VehicleID:           vehicle.ID,
			PayableAmount:       fare.PayableAmount,
		}

		if err := db.Table(category.Table()).Create(&booking).Error; err != nil {
			log.Printf("Error creating %s booking: %v", category, err)
			c.JSON(500, gin.H{"error": "Something went wrong while booking the ride."})
			return
		}

		if err := db.Table(rideType.VehicleTable()).
			Where("id = ?", vehicle.ID).
			Update("availability", models.AvailabilityBooked).Error; err != nil {
			log.Printf("Error marking %s %d booked (booking %d already persisted): %v",
				rideType, vehicle.ID, booking.ID, err)
			c.JSON(500, gin.H{"error": "Something went wrong while booking the ride."})
			return
		}

		// Side channels are best effort and never fail the request.
		go notifyBookingConfirmed(db, hub, rideType, booking)

		c.JSON(201, gin.H{
			"message":        "Booking confirmed successfully.",
			"bookingDetails": booking,
		})
	}
}

// notifyBookingConfirmed fans a confirmed booking out to the cache, the
// pub/sub channel, the passenger's WebSocket connections and their device.
func notifyBookingConfirmed(db *gorm.DB, hub *services.Hub, rideType models.RideType, booking models.Booking) {
	ctx := context.Background()

	if err := services.InvalidateAvailableVehicles(ctx, string(rideType)); err != nil {
		log.Printf("Error invalidating %s availability cache: %v", rideType, err)
	}

	update := services.BookingUpdate{
		BookingID:     booking.ID,
		PassengerID:   booking.PassengerID,
		RideCategory:  string(booking.RideCategory),
		BookingStatus: string(booking.BookingStatus),
		VehicleID:     booking.VehicleID,
		PayableAmount: booking.PayableAmount,
	}

	if err := services.PublishBookingUpdate(ctx, update); err != nil {
		log.Printf("Error publishing booking update: %v", err)
	}

	if hub != nil {
		hub.SendBookingConfirmed(booking.PassengerID, update)
	}

	var user models.User
	if err := db.First(&user, booking.PassengerID).Error; err != nil {
		log.Printf("Error loading passenger %d for push: %v", booking.PassengerID, err)
		return
	}

	payload := services.NotificationPayload{
		Title: "Booking Confirmed",
		Body: fmt.Sprintf("Your %s from %s to %s is booked.",
			booking.RideCategory, booking.PickupLocation, booking.DestinationLocation),
		Data: map[string]string{
			"type":      "booking_confirmed",
			"bookingId": fmt.Sprintf("%d", booking.ID),
		},
	}
	if err := services.SendPushNotification(ctx, user.FCMToken, payload); err != nil {
		log.Printf("Error sending booking push to user %d: %v", user.ID, err)
	}
}

// GetBookings lists the caller's bookings across all five category stores,
// filtered by the requested status. The five queries run concurrently; the
// response order is the fixed store order, not completion order.
func GetBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		status := c.Query("status")

		statuses, ok := models.StatusFilter(status)
		if !ok {
			c.JSON(400, gin.H{"error": "Invalid status provided."})
			return
		}

		categories := models.AllCategories()
		results := make([][]models.Booking, len(categories))

		g, ctx := errgroup.WithContext(c.Request.Context())
		for i, category := range categories {
			g.Go(func() error {
				var out []models.Booking
				if err := db.WithContext(ctx).Table(category.Table()).
					Where("passenger_id = ? AND booking_status IN ?", userId, statuses).
					Find(&out).Error; err != nil {
					return fmt.Errorf("%s bookings: %w", category, err)
				}
				if err := attachVehicles(ctx, db, out); err != nil {
					return fmt.Errorf("%s bookings: %w", category, err)
				}
				results[i] = out
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			log.Printf("Error fetching bookings for user %d: %v", userId, err)
			c.JSON(500, gin.H{"error": "Something went wrong while fetching bookings."})
			return
		}

		bookings := make([]models.Booking, 0)
		for _, batch := range results {
			bookings = append(bookings, batch...)
		}

		c.JSON(200, gin.H{
			"message":  fmt.Sprintf("%s bookings retrieved successfully.", status),
			"bookings": bookings,
		})
	}
}

// attachVehicles expands each booking's vehicle reference to the fixed
// nine-field projection, batching one query per vehicle table.
func attachVehicles(ctx context.Context, db *gorm.DB, bookings []models.Booking) error {
	idsByType := make(map[models.RideType][]uint)
	for _, b := range bookings {
		if b.RideCategory.Valid() {
			idsByType[b.RideCategory] = append(idsByType[b.RideCategory], b.VehicleID)
		}
	}

	infoByRef := make(map[string]*models.VehicleInfo)
	for rideType, ids := range idsByType {
		var infos []models.VehicleInfo
		if err := db.WithContext(ctx).Table(rideType.VehicleTable()).
			Select(models.VehicleInfoColumns).
			Where("id IN ?", ids).
			Find(&infos).Error; err != nil {
			return err
		}
		for i := range infos {
			infoByRef[fmt.Sprintf("%s:%d", rideType, infos[i].ID)] = &infos[i]
		}
	}

	for i := range bookings {
		bookings[i].Vehicle = infoByRef[fmt.Sprintf("%s:%d", bookings[i].RideCategory, bookings[i].VehicleID)]
	}
	return nil
}
