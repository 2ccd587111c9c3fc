package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelopeOmitsUnsetKeys(t *testing.T) {
	bytes, err := json.Marshal(Success(nil, ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(bytes))

	bytes, err = json.Marshal(Success(nil, "logged out"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"logged out"}`, string(bytes))

	bytes, err = json.Marshal(Success(map[string]int{"likes_count": 3}, ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"likes_count":3}}`, string(bytes))
}

func TestErrorEnvelopeShape(t *testing.T) {
	res := ErrorResponse{
		Success: false,
		Message: "The given data is invalid.",
		Errors:  map[string][]string{"email": {"must be a valid email address"}},
	}

	bytes, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"message": "The given data is invalid.",
		"errors": {"email": ["must be a valid email address"]}
	}`, string(bytes))

	bytes, err = json.Marshal(ErrorResponse{Success: false, Message: "Authentication required."})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Authentication required."}`, string(bytes))
}
