package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingCreated     EventType = "booking_created"
	EventBookingCancelled   EventType = "booking_cancelled"
	EventAssignmentsUpdated EventType = "assignments_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	StudioID     string      `json:"studio_id"`
	ActorStaffID string      `json:"actor_staff_id"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	BookingID string    `json:"booking_id"`
	RoomName  string    `json:"room_name"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
}

// BookingCancelledPayload payload.
type BookingCancelledPayload struct {
	BookingID string `json:"booking_id"`
	RoomName  string `json:"room_name"`
}

// AssignmentsUpdatedPayload payload.
type AssignmentsUpdatedPayload struct {
	UpdatedCount int `json:"updated_count"`
	SkippedCount int `json:"skipped_count"`
}
