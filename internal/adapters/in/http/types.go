package http

import "time"

// Error is the uniform error payload returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Location carries geographic coordinates in request and response bodies.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TakeOrderRequest is the body for claiming an order.
type TakeOrderRequest struct {
	OrderID   string   `json:"order_id"`
	CourierID string   `json:"courier_id"`
	Location  Location `json:"location"`
}

// TakeOrderResponse is returned when an order is successfully claimed.
type TakeOrderResponse struct {
	DeliveryID   string `json:"delivery_id"`
	TrackingCode string `json:"tracking_code"`
}

// CourierRequest is the body for courier actions that need no coordinates.
type CourierRequest struct {
	CourierID string `json:"courier_id"`
}

// CourierLocationRequest is the body for courier actions reporting a position.
type CourierLocationRequest struct {
	CourierID string   `json:"courier_id"`
	Location  Location `json:"location"`
}

// DeliveryResponse is the full read model of a delivery.
type DeliveryResponse struct {
	ID           string    `json:"id"`
	TrackingCode string    `json:"tracking_code"`
	CourierID    string    `json:"courier_id"`
	ClientID     string    `json:"client_id"`
	OrderID      string    `json:"order_id"`
	OrderStatus  string    `json:"order_status"`
	Location     *Location `json:"location,omitempty"`
}

// DeliveryLocationResponse is the client-facing tracking view of a delivery.
type DeliveryLocationResponse struct {
	TrackingCode string    `json:"tracking_code"`
	Location     *Location `json:"location,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreditsAmountRequest is the body shared by balance mutation endpoints.
// Amounts travel as strings to keep decimal precision intact.
type CreditsAmountRequest struct {
	OwnerID string `json:"owner_id"`
	Amount  string `json:"amount"`
}

// AdjustCreditsRequest is the body for operator balance corrections.
type AdjustCreditsRequest struct {
	CreditsAmountRequest
	Direction string `json:"direction"`
}

// EnsureBalanceRequest is the body for the balance onboarding endpoint.
type EnsureBalanceRequest struct {
	OwnerID string `json:"owner_id"`
}

// CreditsBalanceResponse is the read model of an owner's balance.
type CreditsBalanceResponse struct {
	OwnerID string `json:"owner_id"`
	Amount  string `json:"amount"`
}
