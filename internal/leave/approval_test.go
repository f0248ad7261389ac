package leave_test

import (
	"testing"
	"time"

	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/stretchr/testify/assert"
)

func TestApprovalSigner(t *testing.T) {
	signer := leave.NewApprovalSigner("test-secret", time.Hour)

	t.Run("roundtrip returns bound manager", func(t *testing.T) {
		token, err := signer.Issue("req-1", "M501")
		assert.NoError(t, err)

		managerID, err := signer.Verify(token, "req-1")
		assert.NoError(t, err)
		assert.Equal(t, "M501", managerID)
	})

	t.Run("token bound to a different request is rejected", func(t *testing.T) {
		token, err := signer.Issue("req-1", "M501")
		assert.NoError(t, err)

		_, err = signer.Verify(token, "req-2")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidApprovalToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := signer.Verify("not-a-token", "req-1")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidApprovalToken)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := leave.NewApprovalSigner("other-secret", time.Hour)
		token, err := other.Issue("req-1", "M501")
		assert.NoError(t, err)

		_, err = signer.Verify(token, "req-1")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidApprovalToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := leave.NewApprovalSigner("test-secret", -time.Minute)
		token, err := expired.Issue("req-1", "M501")
		assert.NoError(t, err)

		_, err = signer.Verify(token, "req-1")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidApprovalToken)
	})
}
