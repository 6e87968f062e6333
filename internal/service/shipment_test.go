package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shipdesk/internal/model"
	"shipdesk/internal/tms"
	tmsMocks "shipdesk/internal/tms/mocks"
)

func strPtr(s string) *string { return &s }

func fullEnvelope() *tms.ShipmentEnvelope {
	return &tms.ShipmentEnvelope{
		Details: &tms.ShipmentDetails{
			ID:       102102,
			CustomID: "SH-102102",
			URL:      "https://tms.test/shipments/102102",
			Status: &tms.Status{
				Description: "En route",
				Code:        &tms.KeyValue{Key: "2103", Value: "En route"},
			},
			Transportation: &tms.Transportation{Mode: &tms.KeyValue{Key: "100", Value: "TL"}},
			StartDate:      &tms.DateValue{Date: "2026-03-02"},
			EndDate:        &tms.DateValue{Date: "2026-03-05"},
			CustomerOrder: []tms.CustomerOrder{{
				Customer: &tms.NamedEntity{ID: 9, Name: "Acme Foods"},
				ExternalIDs: []tms.ExternalID{
					{Type: &tms.KeyValue{Key: "1001"}, Value: "PO-1"},
					{Type: &tms.KeyValue{Key: tms.ExternalIDTypeBOL}, Value: "BOL-9001"},
				},
			}},
			CarrierOrder: []tms.CarrierOrder{{Carrier: &tms.NamedEntity{ID: 4, Name: "Fast Freight"}}},
			GlobalRoute: []tms.RouteStop{
				{
					StopType: "pickup",
					Location: &tms.Location{Address: &tms.Address{City: "Chicago", State: "IL"}},
					Appointment: &tms.StopAppointment{
						Date:       strPtr("2026-03-02T08:00:00Z"),
						Scheduling: &tms.KeyValue{Key: "1", Value: "By appointment"},
						Window:     120,
					},
				},
				{
					StopType: "delivery",
					Location: &tms.Location{Address: &tms.Address{City: "Denver", State: "CO"}},
				},
			},
			CurrentLocation: &tms.CurrentLocation{
				Address:   &tms.Address{City: "Omaha", State: "NE"},
				Timestamp: "2026-03-03T14:20:00Z",
			},
			ETA:           &tms.DateValue{Date: "2026-03-05T09:00:00Z"},
			StatusHistory: []json.RawMessage{json.RawMessage(`{"note":"picked up"}`)},
		},
	}
}

func TestShipmentService_Lookup(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		identifier string
		kind       string
		setupMocks func(m *tmsMocks.MockClient)
		wantErr    error
		checkRes   func(t *testing.T, sum *model.ShipmentSummary)
	}{
		{
			name:       "shipment id is normalized to digits before lookup",
			identifier: "SH-1021 02",
			kind:       IDTypeShipment,
			setupMocks: func(m *tmsMocks.MockClient) {
				m.On("GetShipment", ctx, "102102").Return(fullEnvelope(), nil)
			},
			checkRes: func(t *testing.T, sum *model.ShipmentSummary) {
				assert.Equal(t, int64(102102), sum.ID)
				assert.Equal(t, "Acme Foods", sum.Customer)
				assert.Equal(t, "BOL-9001", sum.BOLNumber)
				assert.Equal(t, "2103", sum.Status.Code)
				assert.Equal(t, "TL", sum.Mode)
				assert.Equal(t, "Fast Freight", sum.Carrier)
				assert.Equal(t, "Chicago, IL", sum.Origin.Location)
				assert.Equal(t, "By appointment", sum.Origin.Appointment.Scheduling)
				assert.Equal(t, 120, sum.Origin.Appointment.Window)
				assert.Equal(t, "Denver, CO", sum.Destination.Location)
				assert.Equal(t, "Omaha, NE", sum.CurrentLocation)
				assert.Equal(t, "2026-03-05T09:00:00Z", sum.ETA)
				assert.Len(t, sum.StatusHistory, 1)
			},
		},
		{
			name:       "bol lookup searches then re-fetches the full record",
			identifier: "  BOL-9001  ",
			kind:       IDTypeBOL,
			setupMocks: func(m *tmsMocks.MockClient) {
				m.On("SearchShipmentsByBOL", ctx, "BOL-9001").
					Return([]tms.SearchHit{{ID: 77}}, nil)
				m.On("GetShipment", ctx, "77").Return(fullEnvelope(), nil)
			},
			checkRes: func(t *testing.T, sum *model.ShipmentSummary) {
				assert.Equal(t, "SH-102102", sum.CustomID)
			},
		},
		{
			name:       "empty bol search is not found, not an error",
			identifier: "BOL-0000",
			kind:       IDTypeBOL,
			setupMocks: func(m *tmsMocks.MockClient) {
				m.On("SearchShipmentsByBOL", ctx, "BOL-0000").
					Return([]tms.SearchHit{}, nil)
			},
			wantErr: ErrNotFound,
		},
		{
			name:       "direct 404 is not found",
			identifier: "999",
			kind:       IDTypeShipment,
			setupMocks: func(m *tmsMocks.MockClient) {
				m.On("GetShipment", ctx, "999").Return(nil, tms.ErrShipmentNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:       "unknown kind rejected before any upstream call",
			identifier: "102102",
			kind:       "trackingNumber",
			setupMocks: func(m *tmsMocks.MockClient) {},
			wantErr:    ErrUnknownIDType,
		},
		{
			name:       "identifier with no digits rejected before any upstream call",
			identifier: "SH--",
			kind:       IDTypeShipment,
			setupMocks: func(m *tmsMocks.MockClient) {},
			wantErr:    ErrIdentifierRequired,
		},
		{
			name:       "missing details wrapper is malformed, not missing",
			identifier: "102102",
			kind:       IDTypeShipment,
			setupMocks: func(m *tmsMocks.MockClient) {
				m.On("GetShipment", ctx, "102102").Return(&tms.ShipmentEnvelope{}, nil)
			},
			wantErr: ErrMalformedShipment,
		},
		{
			name:       "upstream error passes through",
			identifier: "102102",
			kind:       IDTypeShipment,
			setupMocks: func(m *tmsMocks.MockClient) {
				m.On("GetShipment", ctx, "102102").
					Return(nil, &tms.UpstreamError{Status: 502})
			},
			wantErr: &tms.UpstreamError{Status: 502},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mClient := new(tmsMocks.MockClient)
			svc := NewShipmentService(mClient)

			tt.setupMocks(mClient)

			sum, err := svc.Lookup(ctx, tt.identifier, tt.kind)

			if tt.wantErr != nil {
				var upErr *tms.UpstreamError
				if errors.As(tt.wantErr, &upErr) {
					assert.ErrorAs(t, err, &upErr)
				} else {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, sum)
			} else {
				require.NoError(t, err)
				require.NotNil(t, sum)
				if tt.checkRes != nil {
					tt.checkRes(t, sum)
				}
			}
			mClient.AssertExpectations(t)
		})
	}
}

func TestShipmentService_Lookup_Defaults(t *testing.T) {
	ctx := context.Background()
	mClient := new(tmsMocks.MockClient)
	svc := NewShipmentService(mClient)

	// A bare record: only the details wrapper and an id.
	mClient.On("GetShipment", ctx, "5").Return(&tms.ShipmentEnvelope{
		Details: &tms.ShipmentDetails{ID: 5},
	}, nil)

	sum, err := svc.Lookup(ctx, "5", IDTypeShipment)
	require.NoError(t, err)

	assert.Equal(t, model.NotAvailable, sum.Customer)
	assert.Equal(t, model.NotAvailable, sum.BOLNumber)
	assert.Equal(t, model.NotAvailable, sum.Status.Description)
	assert.Equal(t, model.NotAvailable, sum.Status.Code)
	assert.Equal(t, model.NotAvailable, sum.Mode)
	assert.Equal(t, model.NotAvailable, sum.Carrier)
	assert.Equal(t, model.NotAvailable, sum.PlannedStart)
	assert.Equal(t, model.NotAvailable, sum.ETA)
	assert.Equal(t, model.NotAvailable, sum.CurrentLocation)
	assert.Equal(t, "N/A, N/A", sum.Origin.Location)
	assert.Nil(t, sum.Origin.Appointment.Date)
	assert.Equal(t, model.NotAvailable, sum.Origin.Appointment.Scheduling)
	assert.Equal(t, 0, sum.Origin.Appointment.Window)
	assert.NotNil(t, sum.StatusHistory)
	assert.Empty(t, sum.StatusHistory)
}

func TestPickRouteEnds(t *testing.T) {
	t.Run("labels win over position", func(t *testing.T) {
		route := []tms.RouteStop{
			{StopType: "delivery", Location: &tms.Location{Name: "drop-early"}},
			{StopType: "pickup", Location: &tms.Location{Name: "pick"}},
			{StopType: "delivery", Location: &tms.Location{Name: "drop-late"}},
			{StopType: "pickup", Location: &tms.Location{Name: "pick-late"}},
		}
		origin, destination := pickRouteEnds(route)
		assert.Equal(t, "pick", origin.Location.Name)
		assert.Equal(t, "drop-late", destination.Location.Name)
	})

	t.Run("positional fallback when labels absent", func(t *testing.T) {
		route := []tms.RouteStop{
			{Location: &tms.Location{Name: "first"}},
			{Location: &tms.Location{Name: "middle"}},
			{Location: &tms.Location{Name: "last"}},
		}
		origin, destination := pickRouteEnds(route)
		assert.Equal(t, "first", origin.Location.Name)
		assert.Equal(t, "last", destination.Location.Name)
	})

	t.Run("empty route", func(t *testing.T) {
		origin, destination := pickRouteEnds(nil)
		assert.Nil(t, origin)
		assert.Nil(t, destination)
	})
}

func TestShipmentService_Documents(t *testing.T) {
	ctx := context.Background()
	mClient := new(tmsMocks.MockClient)
	svc := NewShipmentService(mClient)

	docs := []json.RawMessage{json.RawMessage(`{"name":"bol.pdf"}`)}
	mClient.On("ListDocuments", ctx, "77").Return(docs, nil)

	got, err := svc.Documents(ctx, "77")
	require.NoError(t, err)
	assert.Equal(t, docs, got)
	mClient.AssertExpectations(t)
}

func TestShipmentService_PostNote(t *testing.T) {
	ctx := context.Background()

	t.Run("requires note and statusKey before any upstream call", func(t *testing.T) {
		mClient := new(tmsMocks.MockClient)
		svc := NewShipmentService(mClient)

		_, err := svc.PostNote(ctx, "77", "late driver", "")
		assert.ErrorIs(t, err, ErrNoteFieldsRequired)

		_, err = svc.PostNote(ctx, "77", "", "2103")
		assert.ErrorIs(t, err, ErrNoteFieldsRequired)

		mClient.AssertExpectations(t)
	})

	t.Run("resubmits current status with the note", func(t *testing.T) {
		mClient := new(tmsMocks.MockClient)
		svc := NewShipmentService(mClient)

		history := []json.RawMessage{json.RawMessage(`{"note":"late driver"}`)}
		mClient.On("UpdateShipmentStatus", ctx, "77", "2103", "late driver").
			Return(history, nil)

		got, err := svc.PostNote(ctx, "77", "late driver", "2103")
		require.NoError(t, err)
		assert.Equal(t, history, got)
		mClient.AssertExpectations(t)
	})
}

func TestClassifyAttachment(t *testing.T) {
	tests := []struct {
		fileType  string
		wantKey   string
		wantLabel string
	}{
		{"application/pdf", tms.DocTypeKeyBOL, "Bill of lading"},
		{"image/png", tms.DocTypeKeyPOD, "Proof of delivery"},
		{"image/jpeg", tms.DocTypeKeyPOD, "Proof of delivery"},
		{"text/plain", tms.DocTypeKeyOther, "Other"},
		{"", tms.DocTypeKeyOther, "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.fileType, func(t *testing.T) {
			key, label := classifyAttachment(tt.fileType)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestShipmentService_AttachDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("requires filename and fileUrl", func(t *testing.T) {
		mClient := new(tmsMocks.MockClient)
		svc := NewShipmentService(mClient)

		_, err := svc.AttachDocument(ctx, "77", AttachRequest{Filename: "bol.pdf"})
		assert.ErrorIs(t, err, ErrAttachFieldsRequired)
		mClient.AssertExpectations(t)
	})

	t.Run("passes classification to the upstream call", func(t *testing.T) {
		mClient := new(tmsMocks.MockClient)
		svc := NewShipmentService(mClient)

		details := json.RawMessage(`{"id":5001}`)
		mClient.On("AttachDocumentURL", ctx, mock.MatchedBy(func(req tms.AttachURLRequest) bool {
			return req.ShipmentID == "77" &&
				req.TypeKey == tms.DocTypeKeyPOD &&
				req.TypeLabel == "Proof of delivery" &&
				req.FileURL == "https://files.test/pod.png"
		})).Return(details, nil)

		got, err := svc.AttachDocument(ctx, "77", AttachRequest{
			Filename: "pod.png",
			FileURL:  "https://files.test/pod.png",
			FileType: "image/png",
		})
		require.NoError(t, err)
		assert.Equal(t, details, got)
		mClient.AssertExpectations(t)
	})
}
