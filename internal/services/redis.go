package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// BookingUpdatesChannel carries booking lifecycle events between API
// instances; the WebSocket hub relays them to connected passengers.
const BookingUpdatesChannel = "booking:updates"

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

func availableVehiclesKey(rideType string) string {
	return fmt.Sprintf("vehicles:available:%s", rideType)
}

// CacheAvailableVehicles stores the serialized available-vehicle list for a
// ride type. Short TTL: bookings flip availability out of band.
func CacheAvailableVehicles(ctx context.Context, rideType string, data []byte) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Set(ctx, availableVehiclesKey(rideType), data, 5*time.Minute).Err()
}

// GetCachedAvailableVehicles reads the cached available-vehicle list
func GetCachedAvailableVehicles(ctx context.Context, rideType string) ([]byte, error) {
	if RedisClient == nil {
		return nil, redis.Nil
	}
	data, err := RedisClient.Get(ctx, availableVehiclesKey(rideType)).Result()
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// InvalidateAvailableVehicles drops the cached list after a booking flips a
// vehicle's availability
func InvalidateAvailableVehicles(ctx context.Context, rideType string) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Del(ctx, availableVehiclesKey(rideType)).Err()
}

// BookingUpdate is the payload published on BookingUpdatesChannel.
type BookingUpdate struct {
	BookingID     uint    `json:"bookingId"`
	PassengerID   uint    `json:"passengerId"`
	RideCategory  string  `json:"rideCategory"`
	BookingStatus string  `json:"bookingStatus"`
	VehicleID     uint    `json:"vehicleId"`
	PayableAmount float64 `json:"payableAmount"`
	Timestamp     int64   `json:"timestamp"`
}

// PublishBookingUpdate publishes a booking event to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, update BookingUpdate) error {
	update.Timestamp = time.Now().Unix()

	if RedisClient == nil {
		return nil
	}

	data, err := json.Marshal(update)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, BookingUpdatesChannel, data).Err()
}

// SubscribeBookingUpdates subscribes to the booking events channel
func SubscribeBookingUpdates(ctx context.Context) *redis.PubSub {
	return RedisClient.Subscribe(ctx, BookingUpdatesChannel)
}
