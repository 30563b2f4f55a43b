package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"zipdrop/internal/service"
)

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Create(ctx context.Context, product service.Product) (string, error) {
	args := m.Called(ctx, product)
	return args.String(0), args.Error(1)
}
