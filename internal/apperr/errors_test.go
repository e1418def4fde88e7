package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	require.Equal(t, CodeValidation, CodeOf(Validation("bad input")))
	require.Equal(t, CodeConflict, CodeOf(Conflict("taken")))
	require.Equal(t, CodeInternal, CodeOf(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", NotFound("missing"))
	require.Equal(t, CodeNotFound, CodeOf(wrapped))
}

func TestMessageOf(t *testing.T) {
	require.Equal(t, "Invite not found", MessageOf(NotFound("Invite not found")))
	require.Equal(t, "Internal server error", MessageOf(errors.New("db exploded")))
	require.Equal(t, "Internal server error", MessageOf(Internal(errors.New("db exploded"))))
}

func TestReasonOf(t *testing.T) {
	err := InvalidState(ReasonExpired, "Invite has expired")
	require.Equal(t, ReasonExpired, ReasonOf(err))
	require.Empty(t, ReasonOf(Validation("x")))
}

func TestIs(t *testing.T) {
	err := Conflict("Invite already exists and is pending")
	require.ErrorIs(t, err, Conflict(""))
	require.NotErrorIs(t, err, NotFound(""))
}
