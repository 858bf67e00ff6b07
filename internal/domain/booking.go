package domain

import "time"

// BookingStatus enumerates persisted booking states. A booking is
// confirmed at creation and hard-deleted at cancellation; no other
// state exists.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDeleted   BookingStatus = "deleted"
)

// RoomBooking reserves a physical room for a half-open interval
// [StartAt, EndAt). For a fixed (studio, room) no two confirmed rows may
// overlap; the database enforces this with an exclusion constraint in
// addition to the application-level check.
type RoomBooking struct {
	ID           string
	StudioID     string
	RoomName     string
	BookingDate  time.Time
	StartAt      time.Time
	EndAt        time.Time
	ServiceType  string
	ClientName   string
	Notes        string
	Status       BookingStatus
	OwnerStaffID string

	// OwnerDisplayName is denormalized onto responses; it is not a
	// stored column.
	OwnerDisplayName string

	CreatedAt time.Time
}

// Overlaps reports whether the half-open interval [start, end) collides
// with the booking. Touching boundaries (start == b.EndAt or
// end == b.StartAt) are not conflicts, so back-to-back bookings are
// allowed.
func (b RoomBooking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndAt) && end.After(b.StartAt)
}
