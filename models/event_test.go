package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanRegister(t *testing.T) {
	now := time.Now().UTC()

	event := Event{}
	assert.True(t, event.CanRegister(now), "no deadline means always open")

	future := now.Add(time.Hour)
	event.RegistrationDeadline = &future
	assert.True(t, event.CanRegister(now))

	past := now.Add(-time.Hour)
	event.RegistrationDeadline = &past
	assert.False(t, event.CanRegister(now))
}

func TestIsFull(t *testing.T) {
	event := Event{CurrentParticipants: 500}
	assert.False(t, event.IsFull(), "no capacity limit never fills")

	limit := 2
	event = Event{MaxParticipants: &limit, CurrentParticipants: 1}
	assert.False(t, event.IsFull())

	event.CurrentParticipants = 2
	assert.True(t, event.IsFull())
}
