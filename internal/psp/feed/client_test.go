package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageBody = `{
	"services": [
		{
			"psp_code": "PSP_A",
			"broker_psp_code": "BROKER_A",
			"psp_business_name": "Bank A",
			"service_description": "card payments",
			"payment_type_code": "CP",
			"channel_code": "CHANNEL_0",
			"language_code": "IT",
			"minimum_amount": 0,
			"maximum_amount": 1000.5,
			"fixed_cost": 1.2
		}
	],
	"page_info": {"page": 0, "limit": 50, "items_found": 1, "total_pages": 3}
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithLogger(discardLogger())}, opts...)
	c, err := New(srv.URL, "secret-key", 2*time.Second, opts...)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("empty base url is rejected", func(t *testing.T) {
		_, err := New("  ", "key", time.Second)
		assert.Error(t, err)
	})
}

func TestFetchPage(t *testing.T) {
	t.Run("sends paging parameters and api key", func(t *testing.T) {
		var gotPath, gotPage, gotLimit, gotKey string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotPage = r.URL.Query().Get("page")
			gotLimit = r.URL.Query().Get("limit")
			gotKey = r.Header.Get(apiKeyHeader)
			_, _ = io.WriteString(w, pageBody)
		})

		page, err := c.FetchPage(context.Background(), 2, 50)
		require.NoError(t, err)

		assert.Equal(t, "/services", gotPath)
		assert.Equal(t, "2", gotPage)
		assert.Equal(t, "50", gotLimit)
		assert.Equal(t, "secret-key", gotKey)

		assert.Equal(t, 2, page.PageIndex)
		require.NotNil(t, page.TotalPages)
		assert.Equal(t, 3, *page.TotalPages)
		require.Len(t, page.Services, 1)
		assert.Equal(t, "PSP_A", page.Services[0].PspCode)
		assert.Equal(t, 1000.5, page.Services[0].MaximumAmount)
	})

	t.Run("status codes map to categories", func(t *testing.T) {
		cases := []struct {
			status   int
			category Category
		}{
			{http.StatusUnauthorized, CategoryAuth},
			{http.StatusForbidden, CategoryAuth},
			{http.StatusTooManyRequests, CategoryRateLimited},
			{http.StatusInternalServerError, CategoryOutage},
			{http.StatusServiceUnavailable, CategoryOutage},
			{http.StatusGatewayTimeout, CategoryTimeout},
			{http.StatusNotFound, CategoryBadData},
			{http.StatusBadRequest, CategoryBadData},
		}
		for _, tc := range cases {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			})
			_, err := c.FetchPage(context.Background(), 0, 50)
			require.Error(t, err, "status %d", tc.status)

			var fe *FeedError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.category, fe.Category, "status %d", tc.status)
			assert.Equal(t, tc.status, fe.StatusCode)
		}
	})

	t.Run("request timeout is categorized", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}, WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))

		_, err := c.FetchPage(context.Background(), 0, 50)
		require.Error(t, err)
		assert.Equal(t, CategoryTimeout, CategoryOf(err))
		assert.True(t, IsRetryable(err))
	})
}

func TestParseServicesResponse(t *testing.T) {
	t.Run("missing total_pages is bad data", func(t *testing.T) {
		body := []byte(`{"services": [], "page_info": {"page": 0, "limit": 50, "items_found": 0}}`)
		page, err := parseServicesResponse(http.StatusOK, body, 0)
		assert.Nil(t, page)
		assert.Equal(t, CategoryBadData, CategoryOf(err))
		assert.False(t, IsRetryable(err))
	})

	t.Run("missing page_info is bad data", func(t *testing.T) {
		page, err := parseServicesResponse(http.StatusOK, []byte(`{"services": []}`), 4)
		assert.Nil(t, page)
		var fe *FeedError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, CategoryBadData, fe.Category)
		assert.Equal(t, 4, fe.Page)
	})

	t.Run("malformed json is bad data", func(t *testing.T) {
		_, err := parseServicesResponse(http.StatusOK, []byte(`{invalid`), 0)
		assert.Equal(t, CategoryBadData, CategoryOf(err))
	})

	t.Run("zero total pages is a valid empty feed", func(t *testing.T) {
		body := []byte(`{"services": [], "page_info": {"page": 0, "limit": 50, "items_found": 0, "total_pages": 0}}`)
		page, err := parseServicesResponse(http.StatusOK, body, 0)
		require.NoError(t, err)
		require.NotNil(t, page.TotalPages)
		assert.Equal(t, 0, *page.TotalPages)
		assert.Empty(t, page.Services)
	})
}

func TestCircuitBreaker(t *testing.T) {
	t.Run("opens after consecutive outages and fails fast", func(t *testing.T) {
		var hits atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}, WithFailureThreshold(2), WithOpenTimeout(time.Minute))

		for range 2 {
			_, err := c.FetchPage(context.Background(), 0, 50)
			require.Error(t, err)
		}
		require.Equal(t, int32(2), hits.Load())

		_, err := c.FetchPage(context.Background(), 0, 50)
		require.Error(t, err)
		assert.Equal(t, CategoryOutage, CategoryOf(err))
		assert.Equal(t, int32(2), hits.Load(), "open breaker must not reach the upstream")
	})

	t.Run("bad data does not trip the breaker", func(t *testing.T) {
		var hits atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			_, _ = io.WriteString(w, `{"services": []}`)
		}, WithFailureThreshold(1))

		for range 3 {
			_, err := c.FetchPage(context.Background(), 0, 50)
			require.Error(t, err)
			assert.Equal(t, CategoryBadData, CategoryOf(err))
		}
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("caller cancellation does not trip the breaker", func(t *testing.T) {
		var hits atomic.Int32
		entered := make(chan struct{})
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				close(entered)
				<-r.Context().Done()
				return
			}
			_, _ = io.WriteString(w, pageBody)
		}, WithFailureThreshold(1), WithOpenTimeout(time.Minute))

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-entered
			cancel()
		}()
		_, err := c.FetchPage(ctx, 0, 50)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, CategoryOf(err))
		assert.Equal(t, gobreaker.StateClosed, c.breaker.State())

		_, err = c.FetchPage(ctx, 0, 50)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int32(1), hits.Load(), "cancelled context must not reach the upstream")

		page, err := c.FetchPage(context.Background(), 0, 50)
		require.NoError(t, err)
		assert.Equal(t, 3, *page.TotalPages)
	})
}

func TestFeedError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := newFeedError(CategoryOutage, 3, "request failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "[outage]")
	assert.Contains(t, err.Error(), "page 3")
	assert.Equal(t, Category(""), CategoryOf(cause))
}
