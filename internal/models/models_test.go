package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("Recruiter")
	assert.NoError(t, err)
	assert.Equal(t, RoleRecruiter, role)

	role, err = ParseRole("candidate")
	assert.NoError(t, err)
	assert.Equal(t, RoleCandidate, role)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestParseDecision(t *testing.T) {
	for in, want := range map[string]ApplicationStatus{
		"accepted": StatusAccepted,
		"rejected": StatusRejected,
	} {
		got, ok := ParseDecision(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "applied", "Accepted", "pending"} {
		_, ok := ParseDecision(in)
		assert.False(t, ok, in)
	}
}
