package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandbox(t *testing.T) {
	ctx := context.Background()
	sandbox := NewSandbox()

	_, err := sandbox.CreateAuthorization(ctx, 0, nil)
	assert.Error(t, err)

	metadata := map[string]string{models.MetadataSellerRef: "s1"}
	handle, err := sandbox.CreateAuthorization(ctx, 100000, metadata)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(handle.ID, "pi_"))
	assert.True(t, strings.HasPrefix(handle.ClientSecret, handle.ID+"_secret_"))

	// The sandbox keeps its own copy of the metadata.
	metadata[models.MetadataSellerRef] = "changed"

	authorization, err := sandbox.RetrieveAuthorization(ctx, handle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AuthorizationPending, authorization.Status)
	assert.Equal(t, int64(100000), authorization.Amount)
	assert.Equal(t, "s1", authorization.Metadata[models.MetadataSellerRef])

	require.NoError(t, sandbox.Capture(handle.ID))
	authorization, err = sandbox.RetrieveAuthorization(ctx, handle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AuthorizationSucceeded, authorization.Status)

	assert.ErrorIs(t, sandbox.Fail(handle.ID), ErrNotPending)
	assert.ErrorIs(t, sandbox.Capture("pi_missing"), ErrUnknownAuthorization)

	_, err = sandbox.RetrieveAuthorization(ctx, "pi_missing")
	assert.ErrorIs(t, err, ErrUnknownAuthorization)
}

func TestSandboxFail(t *testing.T) {
	ctx := context.Background()
	sandbox := NewSandbox()

	handle, err := sandbox.CreateAuthorization(ctx, 500, nil)
	require.NoError(t, err)
	require.NoError(t, sandbox.Fail(handle.ID))

	authorization, err := sandbox.RetrieveAuthorization(ctx, handle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AuthorizationFailed, authorization.Status)
}

func TestSandboxAutoCapture(t *testing.T) {
	ctx := context.Background()
	sandbox := NewSandbox(WithAutoCapture())

	handle, err := sandbox.CreateAuthorization(ctx, 500, nil)
	require.NoError(t, err)

	authorization, err := sandbox.RetrieveAuthorization(ctx, handle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AuthorizationSucceeded, authorization.Status)
}
