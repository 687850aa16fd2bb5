package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess_Serialization(t *testing.T) {
	env := Success("user created", map[string]any{"id": 1})

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, true, got["status"])
	assert.Equal(t, "user created", got["message"])
	assert.Contains(t, got, "data")
}

func TestError_Serialization(t *testing.T) {
	env := Error("validation failed", map[string][]string{
		"email": {"email must be a valid email"},
	})

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, false, got["status"])
	assert.Equal(t, "validation failed", got["message"])
	assert.Contains(t, got, "data")
}

func TestEnvelope_StatusAlwaysPresent(t *testing.T) {
	raw, err := json.Marshal(Error("user not found", nil))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	// status serializes even when false and data is omitted
	assert.Contains(t, got, "status")
	assert.Equal(t, false, got["status"])
	assert.NotContains(t, got, "data")
}
