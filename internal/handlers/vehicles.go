package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ridelink/ridelink-backend/internal/models"
	"github.com/ridelink/ridelink-backend/internal/services"
	"github.com/ridelink/ridelink-backend/pkg/selectinput"
	"gorm.io/gorm"
)

// ListVehicles returns the available vehicles of a ride type. The list is
// cached in Redis with a short TTL and invalidated when a booking flips a
// vehicle's availability.
func ListVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideType := models.RideType(c.Query("rideType"))
		if !rideType.Valid() {
			c.JSON(400, gin.H{"error": "Invalid ride type provided."})
			return
		}

		ctx := c.Request.Context()

		if cached, err := services.GetCachedAvailableVehicles(ctx, string(rideType)); err == nil {
			var vehicles []models.Vehicle
			if err := json.Unmarshal(cached, &vehicles); err == nil {
				c.JSON(200, gin.H{"vehicles": vehicles})
				return
			}
		}

		var vehicles []models.Vehicle
		if err := db.Table(rideType.VehicleTable()).
			Where("availability <> ?", models.AvailabilityBooked).
			Find(&vehicles).Error; err != nil {
			log.Printf("Error listing %s vehicles: %v", rideType, err)
			c.JSON(500, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		if data, err := json.Marshal(vehicles); err == nil {
			if err := services.CacheAvailableVehicles(ctx, string(rideType), data); err != nil {
				log.Printf("Error caching %s vehicles: %v", rideType, err)
			}
		}

		c.JSON(200, gin.H{"vehicles": vehicles})
	}
}

// VehicleOptions returns the available vehicles of a ride type shaped as
// select-input options for the booking form.
func VehicleOptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideType := models.RideType(c.Query("rideType"))
		if !rideType.Valid() {
			c.JSON(400, gin.H{"error": "Invalid ride type provided."})
			return
		}

		var vehicles []models.Vehicle
		if err := db.Table(rideType.VehicleTable()).
			Where("availability <> ?", models.AvailabilityBooked).
			Order("id").
			Find(&vehicles).Error; err != nil {
			log.Printf("Error listing %s vehicle options: %v", rideType, err)
			c.JSON(500, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		options := make([]selectinput.Option, 0, len(vehicles))
		for _, v := range vehicles {
			options = append(options, selectinput.Option{
				Value: fmt.Sprintf("%s %s", v.Manufacturer, v.VehicleModel),
				Label: fmt.Sprintf("%s %s (%s)", v.Manufacturer, v.VehicleModel, v.CarNo),
				Icon:  v.ImgURL,
			})
		}

		c.JSON(200, gin.H{"options": options})
	}
}

// UploadVehicleImage stores a vehicle photo (S3 or local fallback) and
// updates the vehicle's image URL.
func UploadVehicleImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rideType := models.RideType(c.Query("rideType"))
		if !rideType.Valid() {
			c.JSON(400, gin.H{"error": "Invalid ride type provided."})
			return
		}

		var vehicle models.Vehicle
		if err := db.Table(rideType.VehicleTable()).First(&vehicle, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(404, gin.H{"error": "Vehicle not found."})
				return
			}
			log.Printf("Error loading %s %s: %v", rideType, c.Param("id"), err)
			c.JSON(500, gin.H{"error": "Failed to load vehicle"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "Image file is required"})
			return
		}

		imgURL, err := services.UploadImage(file, "vehicles")
		if err != nil {
			log.Printf("Error uploading image for %s %d: %v", rideType, vehicle.ID, err)
			c.JSON(500, gin.H{"error": "Failed to upload image"})
			return
		}

		if err := db.Table(rideType.VehicleTable()).
			Where("id = ?", vehicle.ID).
			Update("img_url", imgURL).Error; err != nil {
			log.Printf("Error saving image URL for %s %d: %v", rideType, vehicle.ID, err)
			c.JSON(500, gin.H{"error": "Failed to save image"})
			return
		}

		c.JSON(200, gin.H{"imgUrl": imgURL})
	}
}
