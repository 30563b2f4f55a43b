package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"zipdrop/internal/model"
	"zipdrop/internal/service"
)

type MockCompressService struct {
	mock.Mock
}

func (m *MockCompressService) Process(ctx context.Context, files []model.UploadFile, format string, maxBatchBytes int64) (*service.CompressResult, error) {
	args := m.Called(ctx, files, format, maxBatchBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompressResult), args.Error(1)
}
