package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/datasource/sql"
	resTypes "github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/http/response"
)

func TestResponder(t *testing.T) {
	tests := []struct {
		desc         string
		method       string
		data         any
		err          error
		statusCode   int
		expectedBody string
	}{
		{
			desc:         "map data",
			method:       http.MethodGet,
			data:         map[string]string{"key": "value"},
			statusCode:   http.StatusOK,
			expectedBody: `{"code":0,"data":{"key":"value"},"message":"ok"}`,
		},
		{
			desc:         "result rows keep column order",
			method:       http.MethodGet,
			data:         sql.ResultSet{sql.NewRow([]string{"Rank", "Driver"}, []any{int64(1), "Max Verstappen"})},
			statusCode:   http.StatusOK,
			expectedBody: `{"code":0,"data":[{"Rank":1,"Driver":"Max Verstappen"}],"message":"ok"}`,
		},
		{
			desc:         "created on post",
			method:       http.MethodPost,
			data:         map[string]string{"message": "added"},
			statusCode:   http.StatusCreated,
			expectedBody: `{"code":0,"data":{"message":"added"},"message":"ok"}`,
		},
		{
			desc:         "response with meta",
			method:       http.MethodGet,
			data:         resTypes.Response{Data: []int{1}, Meta: map[string]any{"total": 1}},
			statusCode:   http.StatusOK,
			expectedBody: `{"code":0,"data":[1],"message":"ok","meta":{"total":1}}`,
		},
		{
			desc:         "raw data",
			method:       http.MethodGet,
			data:         resTypes.Raw{Data: map[string]string{"status": "UP"}, StatusCode: http.StatusServiceUnavailable},
			statusCode:   http.StatusServiceUnavailable,
			expectedBody: `{"status":"UP"}`,
		},
		{
			desc:         "connection unavailable",
			method:       http.MethodGet,
			err:          &sql.ConnectionError{Cause: errors.New("connection refused")},
			statusCode:   http.StatusServiceUnavailable,
			expectedBody: `{"code":1001,"data":null,"message":"database connection unavailable: connection refused"}`,
		},
		{
			desc:         "wrapped procedure error",
			method:       http.MethodGet,
			err:          fmt.Errorf("standings: %w", &sql.ProcedureError{Name: "GetDriverStats", Cause: errors.New("boom")}),
			statusCode:   http.StatusInternalServerError,
			expectedBody: `{"code":1003,"data":null,"message":"standings: procedure failed: GetDriverStats: boom"}`,
		},
		{
			desc:         "status only error",
			method:       http.MethodGet,
			err:          ErrorInvalidParam{Params: []string{"id"}},
			statusCode:   http.StatusBadRequest,
			expectedBody: `{"code":400,"data":null,"message":"'1' invalid parameter(s): id"}`,
		},
		{
			desc:         "plain error",
			method:       http.MethodGet,
			err:          errors.New("something broke"),
			statusCode:   http.StatusInternalServerError,
			expectedBody: `{"code":-1,"data":null,"message":"something broke"}`,
		},
	}

	for i, tc := range tests {
		recorder := httptest.NewRecorder()
		r := NewResponder(recorder, tc.method)

		r.Respond(tc.data, tc.err)

		assert.Equal(t, tc.statusCode, recorder.Code, "TEST[%d] Failed: %s", i, tc.desc)
		assert.JSONEq(t, tc.expectedBody, recorder.Body.String(), "TEST[%d] Failed: %s", i, tc.desc)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"), "TEST[%d] Failed: %s", i, tc.desc)
	}
}

func TestResponder_CustomHeaders(t *testing.T) {
	recorder := httptest.NewRecorder()

	NewResponder(recorder, http.MethodGet).Respond(resTypes.Response{
		Data:    "ok",
		Headers: map[string]string{"X-Total-Count": "5"},
	}, nil)

	assert.Equal(t, "5", recorder.Header().Get("X-Total-Count"))
}

func TestIsNil(t *testing.T) {
	var nilMap map[string]any

	var nilPtr *struct{}

	assert.True(t, isNil(nil))
	assert.True(t, isNil(nilMap))
	assert.True(t, isNil(nilPtr))
	assert.False(t, isNil(0))
	assert.False(t, isNil(sql.ResultSet{}))
}
