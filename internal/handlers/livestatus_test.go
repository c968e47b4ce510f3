package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

type fakeLiveStatusProvider struct {
	result *models.LiveStatusResult
	err    error

	trainNo string
	date    string
}

func (f *fakeLiveStatusProvider) Status(ctx context.Context, trainNo, date string) (*models.LiveStatusResult, error) {
	f.trainNo = trainNo
	f.date = date
	return f.result, f.err
}

func getLiveStatus(t *testing.T, provider LiveStatusProvider, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	NewLiveStatusHandler(provider).GetLiveStatus(rec, req)
	return rec
}

func TestGetLiveStatusSuccess(t *testing.T) {
	provider := &fakeLiveStatusProvider{result: &models.LiveStatusResult{
		TrainNo:     "12951",
		TrainName:   "MMCT RAJDHANI",
		HasLiveData: true,
	}}

	rec := getLiveStatus(t, provider, "/api/live-status?trainNo=12951&date=2024-03-04")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12951", provider.trainNo)
	assert.Equal(t, "2024-03-04", provider.date)

	var body models.LiveStatusResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.HasLiveData)
}

func TestGetLiveStatusMissingTrainNo(t *testing.T) {
	rec := getLiveStatus(t, &fakeLiveStatusProvider{}, "/api/live-status")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLiveStatusBadDate(t *testing.T) {
	rec := getLiveStatus(t, &fakeLiveStatusProvider{}, "/api/live-status?trainNo=12951&date=04-03-2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLiveStatusNoScheduleData(t *testing.T) {
	provider := &fakeLiveStatusProvider{err: models.ErrNoScheduleData}

	rec := getLiveStatus(t, provider, "/api/live-status?trainNo=12951")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
