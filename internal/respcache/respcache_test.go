package respcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssenthilnathan3/metriqai/internal/models"
)

func payloadWith(n int) *models.BenchmarkResponse {
	resp := &models.BenchmarkResponse{}
	for i := 0; i < n; i++ {
		resp.Data = append(resp.Data, models.BenchmarkEntry{
			ModelInfo: models.ModelInfo{ModelID: "m"},
		})
	}
	return resp
}

// countingRefresher returns canned responses in sequence and counts calls.
type countingRefresher struct {
	calls     int
	responses []*models.BenchmarkResponse
	errs      []error
}

func (r *countingRefresher) refresh(context.Context) (*models.BenchmarkResponse, error) {
	i := r.calls
	r.calls++
	var resp *models.BenchmarkResponse
	var err error
	if i < len(r.responses) {
		resp = r.responses[i]
	}
	if i < len(r.errs) {
		err = r.errs[i]
	}
	return resp, err
}

func TestCache_GetRefreshesWhenEmpty(t *testing.T) {
	r := &countingRefresher{responses: []*models.BenchmarkResponse{payloadWith(2)}}
	cache := New(r.refresh, nil)

	resp, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 1, r.calls)

	// A second Get within the TTL serves the cached payload.
	_, err = cache.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, r.calls)
}

func TestCache_ForceRefresh(t *testing.T) {
	r := &countingRefresher{responses: []*models.BenchmarkResponse{payloadWith(1), payloadWith(3)}}
	cache := New(r.refresh, nil)

	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)

	resp, err := cache.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 3)
	assert.Equal(t, 2, r.calls)
}

func TestCache_TTLExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &countingRefresher{responses: []*models.BenchmarkResponse{payloadWith(1), payloadWith(2)}}
	cache := New(r.refresh, nil,
		WithTTL(10*time.Minute),
		WithNow(func() time.Time { return now }),
	)

	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, cache.Valid())

	// Step past the TTL: the next Get refreshes.
	now = now.Add(11 * time.Minute)
	assert.False(t, cache.Valid())

	resp, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, r.calls)
}

func TestCache_FailedRefreshKeepsPreviousPayload(t *testing.T) {
	r := &countingRefresher{
		responses: []*models.BenchmarkResponse{payloadWith(2), nil},
		errs:      []error{nil, errors.New("upstream down")},
	}
	cache := New(r.refresh, nil)

	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)

	// Forced refresh fails, but the stale payload is still served.
	resp, err := cache.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
}

func TestCache_EmptyResponseNotStored(t *testing.T) {
	r := &countingRefresher{responses: []*models.BenchmarkResponse{payloadWith(0)}}
	cache := New(r.refresh, nil)

	_, err := cache.Get(context.Background(), false)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.False(t, cache.Valid())
}

func TestCache_GetErrEmptyWhenRefreshFailsWithNoData(t *testing.T) {
	r := &countingRefresher{errs: []error{errors.New("boom")}}
	cache := New(r.refresh, nil)

	_, err := cache.Get(context.Background(), false)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestCache_Invalidate(t *testing.T) {
	r := &countingRefresher{responses: []*models.BenchmarkResponse{payloadWith(1), payloadWith(2)}}
	cache := New(r.refresh, nil)

	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	require.True(t, cache.Valid())

	cache.Invalidate()
	assert.False(t, cache.Valid())

	resp, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
}

func TestCache_InitFailureIsReportedNotFatal(t *testing.T) {
	r := &countingRefresher{errs: []error{errors.New("cold start")}}
	cache := New(r.refresh, nil)

	err := cache.Init(context.Background())
	assert.Error(t, err)
	assert.False(t, cache.Valid())
}

func TestCache_CurrentStatus(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &countingRefresher{responses: []*models.BenchmarkResponse{payloadWith(3)}}
	cache := New(r.refresh, nil,
		WithTTL(30*time.Minute),
		WithNow(func() time.Time { return now }),
	)

	st := cache.CurrentStatus()
	assert.False(t, st.Valid)
	assert.False(t, st.HasData)
	assert.Nil(t, st.LastUpdated)
	assert.Equal(t, 30, st.TTLMinutes)

	require.NoError(t, cache.Refresh(context.Background()))

	st = cache.CurrentStatus()
	assert.True(t, st.Valid)
	assert.True(t, st.HasData)
	require.NotNil(t, st.LastUpdated)
	assert.Equal(t, now, *st.LastUpdated)
	assert.Equal(t, 3, st.DataCount)
}
