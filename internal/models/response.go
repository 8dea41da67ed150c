package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseCurrentTime returns the current time in epoch milliseconds.
func ResponseCurrentTime() int64 {
	return time.Now().UnixMilli()
}

func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}

func NewOKResponse(data interface{}) ResponseModel {
	return NewResponse(http.StatusOK, data, "OK")
}

// NewEntryResponse wraps a single entry as {"entry": entry}.
func NewEntryResponse(entry interface{}) ResponseModel {
	return NewOKResponse(map[string]interface{}{
		"entry": entry,
	})
}

// NewListResponse wraps a complete list as {"list": list, "limitExceeded": false}.
func NewListResponse(list interface{}) ResponseModel {
	return NewListResponseWithRange(list, false)
}

// NewListResponseWithRange wraps a list that may have been cut short by a limit.
func NewListResponseWithRange(list interface{}, limitExceeded bool) ResponseModel {
	return NewOKResponse(map[string]interface{}{
		"list":          list,
		"limitExceeded": limitExceeded,
	})
}
