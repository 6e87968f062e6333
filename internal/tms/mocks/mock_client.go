package mocks

import (
	"context"
	"encoding/json"

	"shipdesk/internal/tms"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetShipment(ctx context.Context, id string) (*tms.ShipmentEnvelope, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tms.ShipmentEnvelope), args.Error(1)
}

func (m *MockClient) SearchShipmentsByBOL(ctx context.Context, bol string) ([]tms.SearchHit, error) {
	args := m.Called(ctx, bol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tms.SearchHit), args.Error(1)
}

func (m *MockClient) ListDocuments(ctx context.Context, shipmentID string) ([]json.RawMessage, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockClient) UpdateShipmentStatus(ctx context.Context, shipmentID, statusKey, note string) ([]json.RawMessage, error) {
	args := m.Called(ctx, shipmentID, statusKey, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockClient) AttachDocumentURL(ctx context.Context, req tms.AttachURLRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
