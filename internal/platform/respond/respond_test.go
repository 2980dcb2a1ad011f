// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/respond"
)

type answer struct {
	Answer string `json:"answer"`
}

/*
TestOK_Envelope checks the success envelope shape.
*/
func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, "Answer generated", answer{Answer: "20 days"})

	assert.Equal(t, http.StatusOK, recorder.Code)

	var envelope respond.Envelope[answer]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "Answer generated", envelope.Message)
	require.NotNil(t, envelope.Data)
	assert.Equal(t, "20 days", envelope.Data.Answer)
}

/*
TestError_AppError maps status, message and details.
*/
func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/hr/policy/ask", nil)

	respond.Error(recorder, request, apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "question", Message: "This field is required"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope respond.Envelope[struct{}]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "Validation failed", envelope.Message)
	assert.Equal(t, []string{"question: This field is required"}, envelope.Errors)
	assert.Nil(t, envelope.Data)
}

/*
TestError_Unknown hides internal errors behind a 500.
*/
func TestError_Unknown(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("sql: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "sql")
}
