package models

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewResponse(t *testing.T) {
	before := time.Now().UnixMilli()
	response := NewResponse(http.StatusUnprocessableEntity, ValidationErrorData{ErrorKind: "negative_amount"}, "Amount cannot be negative")
	after := time.Now().UnixMilli()

	assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
	assert.Equal(t, ValidationErrorData{ErrorKind: "negative_amount"}, response.Data)
	assert.Equal(t, "Amount cannot be negative", response.Text)
	assert.Equal(t, 2, response.Version)
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewOKResponse(t *testing.T) {
	data := map[string]string{"status": "all good"}
	response := NewOKResponse(data)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Equal(t, data, response.Data)
	assert.Equal(t, 2, response.Version)
	assert.InDelta(t, time.Now().UnixMilli(), response.CurrentTime, 100)
}

func TestNewEntryResponse(t *testing.T) {
	entry := UnitEntry{ID: "km", Display: "km"}
	response := NewEntryResponse(entry)

	assert.Equal(t, http.StatusOK, response.Code)
	data, ok := response.Data.(map[string]interface{})
	assert.True(t, ok, "Response data should be a map")
	assert.Equal(t, entry, data["entry"])
}

func TestNewListResponse(t *testing.T) {
	list := []UnitEntry{{ID: "usd", Display: "USD", Symbol: "$"}}
	response := NewListResponse(list)

	data, ok := response.Data.(map[string]interface{})
	assert.True(t, ok, "Response data should be a map")
	assert.Equal(t, list, data["list"])
	assert.False(t, data["limitExceeded"].(bool))
}

func TestNewListResponseWithRange(t *testing.T) {
	response := NewListResponseWithRange([]string{"a"}, true)

	data, ok := response.Data.(map[string]interface{})
	assert.True(t, ok, "Response data should be a map")
	assert.True(t, data["limitExceeded"].(bool))
}

func TestNewCurrentTime(t *testing.T) {
	at := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	model := NewCurrentTime(at)
	assert.Equal(t, "2026-10-15T12:00:00Z", model.ReadableTime)
	assert.Equal(t, at.UnixMilli(), model.Time)
}
