package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shipdesk/internal/model"
	"shipdesk/internal/tms"
)

var (
	ErrIdentifierRequired   = errors.New("shipment identifier is required")
	ErrUnknownIDType        = errors.New("identifier type must be shipmentID or bolNumber")
	ErrNoteFieldsRequired   = errors.New("note and statusKey are required")
	ErrAttachFieldsRequired = errors.New("filename and fileUrl are required")
	ErrMalformedShipment    = errors.New("unexpected shipment payload from upstream")
	ErrNotFound             = errors.New("shipment not found")
)

// Identifier kinds accepted by Lookup.
const (
	IDTypeShipment = "shipmentID"
	IDTypeBOL      = "bolNumber"
)

// AttachRequest carries the caller-supplied fields for a URL attachment.
type AttachRequest struct {
	Filename string
	FileURL  string
	FileType string
}

// ShipmentService defines the support-desk use cases against the upstream TMS.
type ShipmentService interface {
	// Lookup finds a shipment by internal id or BOL number and returns the
	// flattened summary. ErrNotFound when the shipment does not exist.
	Lookup(ctx context.Context, identifier, kind string) (*model.ShipmentSummary, error)

	// Documents returns the shipment's document list as an opaque pass-through.
	Documents(ctx context.Context, shipmentID string) ([]json.RawMessage, error)

	// PostNote appends a note by resubmitting the current status code and
	// returns the refreshed status history.
	PostNote(ctx context.Context, shipmentID, note, statusKey string) ([]json.RawMessage, error)

	// AttachDocument classifies the file by MIME type and asks the upstream
	// to ingest it from the given URL.
	AttachDocument(ctx context.Context, shipmentID string, req AttachRequest) (json.RawMessage, error)
}

type shipmentService struct {
	tms tms.Client
}

// NewShipmentService constructs a ShipmentService backed by the given client.
func NewShipmentService(client tms.Client) ShipmentService {
	return &shipmentService{tms: client}
}

func (s *shipmentService) Lookup(ctx context.Context, identifier, kind string) (*model.ShipmentSummary, error) {
	var env *tms.ShipmentEnvelope

	switch kind {
	case IDTypeShipment:
		// Support agents paste formatted load numbers like "SH-1021 02";
		// the upstream wants bare digits.
		id := digitsOnly(identifier)
		if id == "" {
			return nil, ErrIdentifierRequired
		}
		var err error
		env, err = s.tms.GetShipment(ctx, id)
		if err != nil {
			return nil, mapNotFound(err)
		}

	case IDTypeBOL:
		bol := strings.TrimSpace(identifier)
		if bol == "" {
			return nil, ErrIdentifierRequired
		}
		hits, err := s.tms.SearchShipmentsByBOL(ctx, bol)
		if err != nil {
			return nil, mapNotFound(err)
		}
		if len(hits) == 0 {
			return nil, ErrNotFound
		}
		// The search returns summaries only; re-fetch the full nested record.
		env, err = s.tms.GetShipment(ctx, strconv.FormatInt(hits[0].ID, 10))
		if err != nil {
			return nil, mapNotFound(err)
		}

	default:
		return nil, ErrUnknownIDType
	}

	return flattenShipment(env)
}

func (s *shipmentService) Documents(ctx context.Context, shipmentID string) ([]json.RawMessage, error) {
	if shipmentID == "" {
		return nil, ErrIdentifierRequired
	}
	return s.tms.ListDocuments(ctx, shipmentID)
}

func (s *shipmentService) PostNote(ctx context.Context, shipmentID, note, statusKey string) ([]json.RawMessage, error) {
	if shipmentID == "" {
		return nil, ErrIdentifierRequired
	}
	if note == "" || statusKey == "" {
		return nil, ErrNoteFieldsRequired
	}
	return s.tms.UpdateShipmentStatus(ctx, shipmentID, statusKey, note)
}

func (s *shipmentService) AttachDocument(ctx context.Context, shipmentID string, req AttachRequest) (json.RawMessage, error) {
	if shipmentID == "" {
		return nil, ErrIdentifierRequired
	}
	if req.Filename == "" || req.FileURL == "" {
		return nil, ErrAttachFieldsRequired
	}

	key, label := classifyAttachment(req.FileType)
	return s.tms.AttachDocumentURL(ctx, tms.AttachURLRequest{
		ShipmentID: shipmentID,
		Filename:   req.Filename,
		FileURL:    req.FileURL,
		TypeKey:    key,
		TypeLabel:  label,
	})
}

// classifyAttachment maps a MIME type to the upstream's document type
// enumeration: pdf means a bill of lading, an image is treated as proof of
// delivery, anything else files under Other.
func classifyAttachment(fileType string) (key, label string) {
	ft := strings.ToLower(fileType)
	switch {
	case strings.Contains(ft, "pdf"):
		return tms.DocTypeKeyBOL, "Bill of lading"
	case strings.Contains(ft, "image"):
		return tms.DocTypeKeyPOD, "Proof of delivery"
	default:
		return tms.DocTypeKeyOther, "Other"
	}
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func mapNotFound(err error) error {
	if errors.Is(err, tms.ErrShipmentNotFound) {
		return ErrNotFound
	}
	return err
}

// flattenShipment reshapes the upstream's nested record into the flat
// UI-facing summary. A missing details wrapper is a malformed response, not a
// missing shipment; after that every field resolves to an explicit default.
func flattenShipment(env *tms.ShipmentEnvelope) (*model.ShipmentSummary, error) {
	if env == nil || env.Details == nil {
		return nil, ErrMalformedShipment
	}
	d := env.Details

	origin, destination := pickRouteEnds(d.GlobalRoute)

	sum := &model.ShipmentSummary{
		ID:                d.ID,
		CustomID:          stringOr(d.CustomID),
		URL:               stringOr(d.URL),
		Customer:          customerName(d.CustomerOrder),
		BOLNumber:         bolNumber(d.CustomerOrder),
		Status:            statusInfo(d.Status),
		Mode:              transportMode(d.Transportation),
		PlannedStart:      dateOr(d.StartDate),
		PlannedEnd:        dateOr(d.EndDate),
		Carrier:           carrierName(d.CarrierOrder),
		Origin:            stopSummary(origin),
		Destination:       stopSummary(destination),
		CurrentLocation:   currentLocation(d.CurrentLocation),
		CurrentLocationAt: currentTimestamp(d.CurrentLocation),
		ETA:               dateOr(d.ETA),
		StatusHistory:     d.StatusHistory,
	}
	if sum.StatusHistory == nil {
		sum.StatusHistory = []json.RawMessage{}
	}
	return sum, nil
}

// pickRouteEnds selects the origin and destination stops. Stops are chosen by
// their stop-type label (first "pickup", last "delivery"); when no stop
// carries a matching label the positional first/last entries are used
// instead. Route ordering and labels can disagree on multi-stop loads; label
// intent wins here (see DESIGN.md).
func pickRouteEnds(route []tms.RouteStop) (*tms.RouteStop, *tms.RouteStop) {
	if len(route) == 0 {
		return nil, nil
	}

	origin := &route[0]
	for i := range route {
		if strings.EqualFold(route[i].StopType, "pickup") {
			origin = &route[i]
			break
		}
	}

	destination := &route[len(route)-1]
	for i := len(route) - 1; i >= 0; i-- {
		if strings.EqualFold(route[i].StopType, "delivery") {
			destination = &route[i]
			break
		}
	}

	return origin, destination
}

func stopSummary(stop *tms.RouteStop) model.StopSummary {
	sum := model.StopSummary{
		Location: model.NotAvailable,
		Appointment: model.Appointment{
			Date:       nil,
			Scheduling: model.NotAvailable,
			Window:     0,
		},
	}
	if stop == nil {
		return sum
	}

	if stop.Location != nil {
		sum.Location = formatAddress(stop.Location.Address)
	}
	if ap := stop.Appointment; ap != nil {
		sum.Appointment.Date = ap.Date
		if ap.Scheduling != nil && ap.Scheduling.Value != "" {
			sum.Appointment.Scheduling = ap.Scheduling.Value
		}
		sum.Appointment.Window = ap.Window
	}
	return sum
}

func formatAddress(addr *tms.Address) string {
	city, state := model.NotAvailable, model.NotAvailable
	if addr != nil {
		if addr.City != "" {
			city = addr.City
		}
		if addr.State != "" {
			state = addr.State
		}
	}
	return fmt.Sprintf("%s, %s", city, state)
}

func customerName(orders []tms.CustomerOrder) string {
	if len(orders) == 0 || orders[0].Customer == nil || orders[0].Customer.Name == "" {
		return model.NotAvailable
	}
	return orders[0].Customer.Name
}

// bolNumber scans the customer order's external-identifier list for the entry
// whose type code is the upstream's "BOL #" code.
func bolNumber(orders []tms.CustomerOrder) string {
	for _, order := range orders {
		for _, ext := range order.ExternalIDs {
			if ext.Type != nil && ext.Type.Key == tms.ExternalIDTypeBOL && ext.Value != "" {
				return ext.Value
			}
		}
	}
	return model.NotAvailable
}

func carrierName(orders []tms.CarrierOrder) string {
	if len(orders) == 0 || orders[0].Carrier == nil || orders[0].Carrier.Name == "" {
		return model.NotAvailable
	}
	return orders[0].Carrier.Name
}

func statusInfo(st *tms.Status) model.StatusInfo {
	info := model.StatusInfo{
		Description: model.NotAvailable,
		Code:        model.NotAvailable,
	}
	if st == nil {
		return info
	}
	if st.Description != "" {
		info.Description = st.Description
	}
	if st.Code != nil && st.Code.Key != "" {
		info.Code = st.Code.Key
	}
	return info
}

func transportMode(tr *tms.Transportation) string {
	if tr == nil || tr.Mode == nil || tr.Mode.Value == "" {
		return model.NotAvailable
	}
	return tr.Mode.Value
}

func currentLocation(loc *tms.CurrentLocation) string {
	if loc == nil {
		return model.NotAvailable
	}
	return formatAddress(loc.Address)
}

func currentTimestamp(loc *tms.CurrentLocation) string {
	if loc == nil || loc.Timestamp == "" {
		return model.NotAvailable
	}
	return loc.Timestamp
}

func dateOr(dv *tms.DateValue) string {
	if dv == nil || dv.Date == "" {
		return model.NotAvailable
	}
	return dv.Date
}

func stringOr(s string) string {
	if s == "" {
		return model.NotAvailable
	}
	return s
}
