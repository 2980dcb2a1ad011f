// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aidash/internal/platform/apperr"
)

/*
TestAs_WrappedChain verifies that classification survives fmt.Errorf wrapping.
*/
func TestAs_WrappedChain(t *testing.T) {
	base := apperr.AuthorizationExpired("Session expired")
	wrapped := fmt.Errorf("hr_cv_evaluate_failed: %w", base)

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeAuthorizationExpired, ae.Code)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeAuthorizationExpired))
	assert.False(t, apperr.HasCode(wrapped, apperr.CodeNetwork))
}

/*
TestNetwork_KeepsCause checks that the transport error stays reachable.
*/
func TestNetwork_KeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := apperr.Network(cause)

	assert.Equal(t, apperr.CodeNetwork, err.Code)
	assert.Equal(t, "dial tcp: connection refused", err.Message)
	assert.Zero(t, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
}

/*
TestApplication_Reasons checks that envelope errors[] become details.
*/
func TestApplication_Reasons(t *testing.T) {
	err := apperr.Application(http.StatusUnprocessableEntity, "Bad upload", "file too large", "unsupported type")

	assert.Equal(t, "Bad upload", err.Error())
	require.Len(t, err.Details, 2)
	assert.Equal(t, "unsupported type", err.Details[1].Message)
	assert.Empty(t, err.Details[0].Field)
}

/*
TestMessage_Fallbacks exercises the display-message resolution order.
*/
func TestMessage_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil_error", nil, "Evaluation failed"},
		{"app_error", apperr.Application(500, "Model offline"), "Model offline"},
		{"empty_app_message", apperr.Application(500, ""), "Evaluation failed"},
		{"plain_error", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.Message(tt.err, "Evaluation failed"))
		})
	}
}
