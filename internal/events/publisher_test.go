package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutBrokers(t *testing.T) {
	p := New(nil, "portal_events")
	_, ok := p.(Nop)
	require.True(t, ok)
	assert.NoError(t, p.Publish(context.Background(), Event{Type: CartUpdated}))
	assert.NoError(t, p.Close())
}

func TestNewWithBrokers(t *testing.T) {
	p := New([]string{"localhost:9092"}, "portal_events")
	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "portal_events", kp.writer.Topic)
	assert.NoError(t, p.Close())
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Publish(context.Background(), Event{Type: PostCreated, Paths: []string{"/community"}}))
	require.NoError(t, r.Publish(context.Background(), Event{Type: LikeToggled}))
	assert.Equal(t, []Type{PostCreated, LikeToggled}, r.Types())

	r.Err = errors.New("down")
	assert.Error(t, r.Publish(context.Background(), Event{Type: PostDeleted}))
	assert.Len(t, r.Events(), 2)
}
