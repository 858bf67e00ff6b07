package dto

import "time"

// CreateBookingRequest payload.
type CreateBookingRequest struct {
	RoomName    string `json:"room_name"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	ServiceType string `json:"service_type,omitempty"`
	ClientName  string `json:"client_name,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// BookingSummary is the booking representation returned to clients,
// with the owner's display name denormalized on.
type BookingSummary struct {
	ID               string    `json:"id"`
	StudioID         string    `json:"studio_id"`
	RoomName         string    `json:"room_name"`
	BookingDate      string    `json:"booking_date"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	ServiceType      string    `json:"service_type,omitempty"`
	ClientName       string    `json:"client_name,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Status           string    `json:"status"`
	OwnerStaffID     string    `json:"owner_staff_id"`
	OwnerDisplayName string    `json:"owner_display_name"`
}

// RouteResponse is the booking router decision for the caller.
type RouteResponse struct {
	Decision          string           `json:"decision"`
	Hint              string           `json:"hint,omitempty"`
	OfferableServices []ServiceSummary `json:"offerable_services,omitempty"`
}
