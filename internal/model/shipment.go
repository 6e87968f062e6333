package model

import "encoding/json"

// NotAvailable is the sentinel substituted for any string field the upstream
// record does not carry. Missing data is never an error at this layer.
const NotAvailable = "N/A"

// StatusInfo is the flattened shipment status: human description plus the
// upstream's machine code (the code is what must be resubmitted when
// appending a note).
type StatusInfo struct {
	Description string `json:"description"`
	Code        string `json:"code"`
}

// Appointment is a stop's scheduled window. Date is nil when the stop or its
// appointment is absent upstream.
type Appointment struct {
	Date       *string `json:"date"`
	Scheduling string  `json:"scheduling"`
	Window     int     `json:"window"`
}

// StopSummary is one end of the route: a "{city}, {state}" location plus the
// appointment window.
type StopSummary struct {
	Location    string      `json:"location"`
	Appointment Appointment `json:"appointment"`
}

// ShipmentSummary is the flat, support-UI-facing view of an upstream shipment
// record. Every field is best-effort: absent upstream data maps to
// NotAvailable, nil or zero.
type ShipmentSummary struct {
	ID                int64             `json:"id"`
	CustomID          string            `json:"customId"`
	URL               string            `json:"url"`
	Customer          string            `json:"customer"`
	BOLNumber         string            `json:"bolNumber"`
	Status            StatusInfo        `json:"status"`
	Mode              string            `json:"mode"`
	PlannedStart      string            `json:"plannedStart"`
	PlannedEnd        string            `json:"plannedEnd"`
	Carrier           string            `json:"carrier"`
	Origin            StopSummary       `json:"origin"`
	Destination       StopSummary       `json:"destination"`
	CurrentLocation   string            `json:"currentLocation"`
	CurrentLocationAt string            `json:"currentLocationAt"`
	ETA               string            `json:"eta"`
	StatusHistory     []json.RawMessage `json:"statusHistory"`
}
