package mocks

import (
	"context"

	"snipe-netbox-sync/core/snipe"

	"github.com/stretchr/testify/mock"
)

// Provider is a mock implementation of snipe.Provider
type Provider struct {
	mock.Mock
}

func (m *Provider) Companies(ctx context.Context) ([]snipe.Company, error) {
	args := m.Called(ctx)
	companies, _ := args.Get(0).([]snipe.Company)
	return companies, args.Error(1)
}

func (m *Provider) ModelsWithMAC(ctx context.Context) ([]snipe.Manufacturer, []snipe.Model, error) {
	args := m.Called(ctx)
	manufacturers, _ := args.Get(0).([]snipe.Manufacturer)
	models, _ := args.Get(1).([]snipe.Model)
	return manufacturers, models, args.Error(2)
}

func (m *Provider) Locations(ctx context.Context) ([]snipe.Location, error) {
	args := m.Called(ctx)
	locations, _ := args.Get(0).([]snipe.Location)
	return locations, args.Error(1)
}

func (m *Provider) AssetsWithMAC(ctx context.Context) ([]snipe.Asset, error) {
	args := m.Called(ctx)
	assets, _ := args.Get(0).([]snipe.Asset)
	return assets, args.Error(1)
}
