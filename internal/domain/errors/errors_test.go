package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
)

func TestMalformedFeedError_Message(t *testing.T) {
	withKeys := &customerrors.MalformedFeedError{Kind: "object", Keys: []string{"error", "status"}}
	assert.Contains(t, withKeys.Error(), "error, status")

	bare := &customerrors.MalformedFeedError{Kind: "string"}
	assert.Contains(t, bare.Error(), "string")
}

func TestErrorsIs_MatchesByType(t *testing.T) {
	wrapped := fmt.Errorf("проход прерван: %w", &customerrors.MalformedFeedError{Kind: "null"})
	assert.ErrorIs(t, wrapped, &customerrors.MalformedFeedError{})

	cause := errors.New("connection refused")
	persistErr := &customerrors.PersistenceError{Operation: "insert", Key: "k", Cause: cause}

	assert.ErrorIs(t, persistErr, &customerrors.PersistenceError{})
	assert.ErrorIs(t, persistErr, cause)

	resolveErr := &customerrors.LinkResolutionError{URL: "https://bit.ly/x", Cause: cause}
	assert.ErrorIs(t, resolveErr, cause)
	assert.NotErrorIs(t, resolveErr, &customerrors.PersistenceError{})
}

func TestNotificationDeliveryError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := &customerrors.NotificationDeliveryError{Transport: "TELEGRAM", PostID: "1", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "TELEGRAM")
}
