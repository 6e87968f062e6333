package mocks

import (
	"context"
	"encoding/json"

	"shipdesk/internal/model"
	"shipdesk/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockShipmentService struct {
	mock.Mock
}

func (m *MockShipmentService) Lookup(ctx context.Context, identifier, kind string) (*model.ShipmentSummary, error) {
	args := m.Called(ctx, identifier, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShipmentSummary), args.Error(1)
}

func (m *MockShipmentService) Documents(ctx context.Context, shipmentID string) ([]json.RawMessage, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockShipmentService) PostNote(ctx context.Context, shipmentID, note, statusKey string) ([]json.RawMessage, error) {
	args := m.Called(ctx, shipmentID, note, statusKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockShipmentService) AttachDocument(ctx context.Context, shipmentID string, req service.AttachRequest) (json.RawMessage, error) {
	args := m.Called(ctx, shipmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
