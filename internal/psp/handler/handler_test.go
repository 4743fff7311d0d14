package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"pspcatalog/internal/psp/catalogsync"
	"pspcatalog/internal/psp/handler/mocks"
	"pspcatalog/internal/psp/models"
	dErrors "pspcatalog/pkg/domain-errors"
	"pspcatalog/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	sync    *mocks.MockSyncTrigger
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.sync = mocks.NewMockSyncTrigger(ctrl)

	h := New(s.service, s.sync, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) do(method, target string) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, method, target)
}

func decode(s *HandlerSuite, w *httptest.ResponseRecorder) map[string]any {
	return testutil.DecodeJSON(s.T(), w)
}

func (s *HandlerSuite) TestHandleRetrieve() {
	s.Run("passes query parameters to the service", func() {
		s.service.EXPECT().Retrieve(gomock.Any(), gomock.Any(), "it", "PO").
			DoAndReturn(func(_ any, amount *int64, _, _ string) ([]models.PspRecord, error) {
				s.Require().NotNil(amount)
				s.Equal(int64(100), *amount)
				return []models.PspRecord{{
					Key:    models.Key{PspCode: "PSP_A", PaymentType: "PO", Channel: "CHANNEL_0", Language: models.LanguageIT},
					Status: models.StatusEnabled,
				}}, nil
			})

		w := s.do(http.MethodGet, "/psps?amount=100&lang=it&paymentTypeCode=PO")
		s.Equal(http.StatusOK, w.Code)
		s.Equal("application/json", w.Header().Get("Content-Type"))

		body := decode(s, w)
		psps := body["psp"].([]any)
		s.Require().Len(psps, 1)
		s.Equal("PSP_A", psps[0].(map[string]any)["code"])
	})

	s.Run("missing amount is unconstrained", func() {
		s.service.EXPECT().Retrieve(gomock.Any(), (*int64)(nil), "", "").Return(nil, nil)

		w := s.do(http.MethodGet, "/psps")
		s.Equal(http.StatusOK, w.Code)
		s.Equal([]any{}, decode(s, w)["psp"])
	})

	s.Run("non-numeric amount is a bad request", func() {
		w := s.do(http.MethodGet, "/psps?amount=ten")
		testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "bad_request")
	})

	s.Run("validation errors map to 400", func() {
		s.service.EXPECT().Retrieve(gomock.Any(), gomock.Any(), "", "").
			Return(nil, dErrors.New(dErrors.CodeValidation, "amount must not be negative"))

		w := s.do(http.MethodGet, "/psps?amount=-5")
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("amount must not be negative", decode(s, w)["error_description"])
	})

	s.Run("internal errors hide their description", func() {
		s.service.EXPECT().Retrieve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.Wrap(errors.New("pq: broken"), dErrors.CodeInternal, "failed to read psp catalog"))

		w := s.do(http.MethodGet, "/psps")
		s.Equal(http.StatusInternalServerError, w.Code)
		body := decode(s, w)
		s.Equal("internal_error", body["error"])
		s.NotContains(body, "error_description")
	})
}

func (s *HandlerSuite) TestHandleSync() {
	s.Run("accepted when a run starts", func() {
		s.sync.EXPECT().Trigger(gomock.Any()).Return(nil)

		w := s.do(http.MethodPost, "/psps/sync")
		s.Equal(http.StatusAccepted, w.Code)
	})

	s.Run("conflict while a run is in progress", func() {
		s.sync.EXPECT().Trigger(gomock.Any()).Return(catalogsync.ErrRunInProgress)

		w := s.do(http.MethodPost, "/psps/sync")
		testutil.AssertStatusAndError(s.T(), w, http.StatusConflict, "conflict")
	})

	s.Run("guard outage is unavailable", func() {
		s.sync.EXPECT().Trigger(gomock.Any()).
			Return(dErrors.Wrap(errors.New("dial tcp"), dErrors.CodeUnavailable, "sync guard unavailable"))

		w := s.do(http.MethodPost, "/psps/sync")
		s.Equal(http.StatusServiceUnavailable, w.Code)
	})

	s.Run("disabled when no synchronizer is wired", func() {
		r := chi.NewRouter()
		New(s.service, nil, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)

		w := testutil.DoRequest(r, http.MethodPost, "/psps/sync")
		s.Equal(http.StatusServiceUnavailable, w.Code)
	})
}
