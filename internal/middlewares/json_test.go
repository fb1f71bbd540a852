package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	Name string `json:"name" validate:"required,max=5"`
}

func TestJSONMiddleware(t *testing.T) {
	handler := JSONMiddleware[testPayload](http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := GetParsedJSONData[testPayload](w, r)
		if !ok {
			return
		}
		EncodeJSONResponse(w, http.StatusCreated, payload)
	}))

	testCases := []struct {
		testName        string
		contentType     string
		body            string
		expectedCode    int
		expectedMessage string
	}{
		{
			testName:        "Should accept charset suffix",
			contentType:     "application/json; charset=utf-8",
			body:            `{"name":"veil"}`,
			expectedCode:    http.StatusCreated,
			expectedMessage: `{"name":"veil"}`,
		},
		{
			testName:        "Should reject plain text",
			contentType:     "text/plain",
			body:            `{"name":"veil"}`,
			expectedCode:    http.StatusUnsupportedMediaType,
			expectedMessage: "Content-Type is not application/json\n",
		},
		{
			testName:        "Should reject malformed json",
			contentType:     "application/json",
			body:            `{"name":`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Error occurred during unmarshaling data unexpected end of JSON input\n",
		},
		{
			testName:        "Should run validation",
			contentType:     "application/json",
			body:            `{"name":"cathedral"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Request is invalid: Key: 'testPayload.Name' Error:Field validation for 'Name' failed on the 'max' tag\n",
		},
		{
			testName:        "Should reject oversized body",
			contentType:     "application/json",
			body:            `{"name":"` + strings.Repeat("a", maxBodySize) + `"}`,
			expectedCode:    http.StatusRequestEntityTooLarge,
			expectedMessage: "Request body is too large\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", tc.contentType)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, tc.expectedMessage, rec.Body.String())
		})
	}
}

func TestGetServiceFromContextMissing(t *testing.T) {
	rec := httptest.NewRecorder()

	service := GetServiceFromContext[interface{ Ping() }](rec, httptest.NewRequest(http.MethodGet, "/", nil), SettlementServiceKey)

	assert.Nil(t, service)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
