package tms

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Package-level sentinel for the one upstream outcome that is not a failure:
// the shipment genuinely does not exist (direct 404 or empty search result).
var ErrShipmentNotFound = errors.New("shipment not found")

// AuthError reports a failed token acquisition. The cached token is cleared
// before this is returned, so the next call starts from scratch.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("tms auth failed with status %d", e.Status)
}

// UpstreamError reports any non-2xx response from a shipment, document, note
// or attach call. Message carries the upstream's own error text when present.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tms upstream error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("tms upstream error (status %d)", e.Status)
}

// Fixed upstream enumeration codes. The upstream API identifies external
// reference types and document types by numeric lookup keys.
const (
	// ExternalIDTypeBOL is the external-identifier type code for "BOL #".
	ExternalIDTypeBOL = "1012"

	// Document type lookup keys used by the URL-ingestion endpoint.
	DocTypeKeyBOL   = "1005" // Bill of lading
	DocTypeKeyPOD   = "1011" // Proof of delivery
	DocTypeKeyOther = "1016" // Other
)

// KeyValue is the upstream's ubiquitous enumeration pair.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// Status is the shipment status object. The upstream requires the full object
// (including the current code) to be resubmitted when appending a note.
type Status struct {
	Code        *KeyValue `json:"code,omitempty"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// DateValue wraps the upstream's date-with-timezone representation.
type DateValue struct {
	Date     string `json:"date"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Address is the subset of the upstream address block the adapter surfaces.
type Address struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Location is a named place on the route.
type Location struct {
	Name    string   `json:"name,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// StopAppointment is a route stop's scheduled window.
type StopAppointment struct {
	Date       *string   `json:"date"`
	Scheduling *KeyValue `json:"scheduling,omitempty"`
	Window     int       `json:"window,omitempty"`
}

// RouteStop is one entry of the shipment's global route. StopType labels the
// stop ("pickup", "delivery", ...) but is not guaranteed to be present.
type RouteStop struct {
	StopType    string           `json:"stopType,omitempty"`
	Location    *Location        `json:"location,omitempty"`
	Appointment *StopAppointment `json:"appointment,omitempty"`
}

// NamedEntity is an id/name pair (customer, carrier, ...).
type NamedEntity struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ExternalID is one entry of an order's external-identifier list.
type ExternalID struct {
	Type  *KeyValue `json:"type,omitempty"`
	Value string    `json:"value,omitempty"`
}

// CustomerOrder links the shipment to the ordering customer and carries the
// external reference list the BOL number is extracted from.
type CustomerOrder struct {
	Customer    *NamedEntity `json:"customer,omitempty"`
	ExternalIDs []ExternalID `json:"externalIds,omitempty"`
}

// CarrierOrder links the shipment to the hauling carrier.
type CarrierOrder struct {
	Carrier *NamedEntity `json:"carrier,omitempty"`
}

// Transportation holds the transport mode enumeration.
type Transportation struct {
	Mode *KeyValue `json:"mode,omitempty"`
}

// CurrentLocation is the last reported position of the shipment.
type CurrentLocation struct {
	Address   *Address `json:"address,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

// ShipmentDetails is the nested upstream shipment record. Every field is
// optional on the wire; default resolution happens in the service layer, one
// explicit rule per field.
type ShipmentDetails struct {
	ID              int64             `json:"id"`
	CustomID        string            `json:"customId,omitempty"`
	URL             string            `json:"url,omitempty"`
	Status          *Status           `json:"status,omitempty"`
	Transportation  *Transportation   `json:"transportation,omitempty"`
	StartDate       *DateValue        `json:"startDate,omitempty"`
	EndDate         *DateValue        `json:"endDate,omitempty"`
	CustomerOrder   []CustomerOrder   `json:"customerOrder,omitempty"`
	CarrierOrder    []CarrierOrder    `json:"carrierOrder,omitempty"`
	GlobalRoute     []RouteStop       `json:"globalRoute,omitempty"`
	CurrentLocation *CurrentLocation  `json:"currentLocation,omitempty"`
	ETA             *DateValue        `json:"eta,omitempty"`
	StatusHistory   []json.RawMessage `json:"statusHistory,omitempty"`
}

// ShipmentEnvelope is the top-level wrapper of a direct shipment read.
// Details being nil signals a malformed upstream response, which the service
// layer reports distinctly from not-found.
type ShipmentEnvelope struct {
	Details *ShipmentDetails `json:"details"`
}

// SearchHit is one row of a shipment search result. The search endpoint
// returns summaries only; the full record requires a follow-up direct read.
type SearchHit struct {
	ID       int64  `json:"id"`
	CustomID string `json:"customId,omitempty"`
}

// AttachURLRequest describes a document to be ingested by the upstream from
// a caller-supplied URL.
type AttachURLRequest struct {
	ShipmentID string
	Filename   string
	FileURL    string
	TypeKey    string
	TypeLabel  string
}
