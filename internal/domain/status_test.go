package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	testCases := []struct {
		from    RegistrationStatus
		to      RegistrationStatus
		allowed bool
	}{
		{StatusEditable, StatusPendingVerification, true},
		{StatusEditable, StatusActive, false},
		{StatusEditable, StatusRejected, false},
		{StatusPendingVerification, StatusActive, true},
		{StatusPendingVerification, StatusInactive, true},
		{StatusPendingVerification, StatusRejected, true},
		{StatusPendingVerification, StatusEditable, false},
		{StatusActive, StatusInactive, true},
		{StatusInactive, StatusActive, true},
		{StatusActive, StatusRejected, false},
		{StatusRejected, StatusEditable, true},
		{StatusRejected, StatusActive, false},
		{StatusRejected, StatusPendingVerification, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCanMutate(t *testing.T) {
	assert.True(t, StatusEditable.CanMutate())
	assert.False(t, StatusPendingVerification.CanMutate())
	assert.False(t, StatusActive.CanMutate())
	assert.False(t, StatusInactive.CanMutate())
	assert.False(t, StatusRejected.CanMutate())
}
