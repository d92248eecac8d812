package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusAccepted, StatusRejected, StatusDone}
	legal := map[[2]Status]bool{
		{StatusPending, StatusAccepted}: true,
		{StatusPending, StatusRejected}: true,
		{StatusAccepted, StatusDone}:    true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusAccepted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusDone.Terminal())
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus(" Accepted ")
	assert.True(t, ok)
	assert.Equal(t, StatusAccepted, s)

	_, ok = ParseStatus("cancelled")
	assert.False(t, ok)
}
