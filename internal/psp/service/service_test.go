package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pspcatalog/internal/psp/dispatcher"
	"pspcatalog/internal/psp/models"
	"pspcatalog/internal/psp/ports/mocks"
	dErrors "pspcatalog/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *mocks.MockCatalogReader
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	ctrl := gomock.NewController(s.T())
	s.store = mocks.NewMockCatalogReader(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d, err := dispatcher.New(s.store, dispatcher.WithLogger(logger))
	s.Require().NoError(err)
	s.service, err = New(d, WithLogger(logger))
	s.Require().NoError(err)
}

func amount(v int64) *int64 { return &v }

func (s *ServiceSuite) TestRetrieve() {
	s.Run("codes are upper-cased before dispatch", func() {
		rec := models.PspRecord{Key: models.Key{PspCode: "PSP_A", PaymentType: "CP", Channel: "C0", Language: models.LanguageIT}}
		s.store.EXPECT().FindByAmountPaymentTypeAndLanguage(gomock.Any(), int64(250), "CP", "IT").
			Return([]models.PspRecord{rec}, nil)

		got, err := s.service.Retrieve(s.ctx, amount(250), " it", "cp ")
		s.Require().NoError(err)
		s.Equal([]models.PspRecord{rec}, got)
	})

	s.Run("no criteria reads the whole catalog", func() {
		s.store.EXPECT().FindAll(gomock.Any()).Return(nil, nil)

		got, err := s.service.Retrieve(s.ctx, nil, "", "")
		s.Require().NoError(err)
		s.Empty(got)
	})

	s.Run("negative amount is rejected before dispatch", func() {
		_, err := s.service.Retrieve(s.ctx, amount(-1), "", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("store failures surface as internal errors", func() {
		s.store.EXPECT().FindByLanguage(gomock.Any(), "EN").Return(nil, errors.New("db down"))

		_, err := s.service.Retrieve(s.ctx, nil, "en", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestToResponse() {
	s.Run("empty result encodes as an empty list", func() {
		resp := ToResponse(nil)
		s.NotNil(resp.Psp)
		s.Empty(resp.Psp)
	})

	s.Run("maps every field", func() {
		resp := ToResponse([]models.PspRecord{{
			Key:         models.Key{PspCode: "PSP_A", PaymentType: "PO", Channel: "CHANNEL_0", Language: models.LanguageDE},
			Status:      models.StatusEnabled,
			Name:        "Bank A",
			BrokerName:  "BROKER",
			Description: "postal",
			MinAmount:   10,
			MaxAmount:   20,
			FeeAmount:   3,
		}})
		s.Equal(Psp{
			Code:            "PSP_A",
			PaymentTypeCode: "PO",
			ChannelCode:     "CHANNEL_0",
			Description:     "postal",
			BusinessName:    "Bank A",
			Status:          "ENABLED",
			BrokerName:      "BROKER",
			Language:        "DE",
			MinAmount:       10,
			MaxAmount:       20,
			FixedCost:       3,
		}, resp.Psp[0])
	})
}
