package messaging_test

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmoreau/shortlink/internal/messaging"
)

type mockPublisher struct {
	messages   []*message.Message
	topic      string
	publishErr error
	closeErr   error
	closed     bool
}

func (m *mockPublisher) Publish(topic string, msgs ...*message.Message) error {
	if m.publishErr != nil {
		return m.publishErr
	}

	m.topic = topic
	m.messages = append(m.messages, msgs...)

	return nil
}

func (m *mockPublisher) Close() error {
	m.closed = true

	return m.closeErr
}

type testEvent struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

func TestNewPublishFunc(t *testing.T) {
	t.Run("publishes an encoded event", func(t *testing.T) {
		mock := &mockPublisher{}
		publish := messaging.NewPublishFunc[testEvent](mock, "link.created")

		err := publish(&testEvent{ID: "42", Code: "abc1234"})

		require.NoError(t, err)
		assert.Equal(t, "link.created", mock.topic)
		require.Len(t, mock.messages, 1)
		assert.Contains(t, string(mock.messages[0].Payload), `"code":"abc1234"`)
		assert.Equal(t, "link.created", mock.messages[0].Metadata.Get("topic"))
	})

	t.Run("assigns unique message ids", func(t *testing.T) {
		mock := &mockPublisher{}
		publish := messaging.NewPublishFunc[testEvent](mock, "link.created")

		require.NoError(t, publish(&testEvent{ID: "1"}))
		require.NoError(t, publish(&testEvent{ID: "2"}))

		require.Len(t, mock.messages, 2)
		assert.NotEqual(t, mock.messages[0].UUID, mock.messages[1].UUID)
	})

	t.Run("returns publish errors", func(t *testing.T) {
		mock := &mockPublisher{publishErr: errors.New("broker down")}
		publish := messaging.NewPublishFunc[testEvent](mock, "link.created")

		err := publish(&testEvent{ID: "42"})
		assert.Error(t, err)
	})
}

func TestPublisherGroup(t *testing.T) {
	t.Run("shutdown closes the publisher", func(t *testing.T) {
		mock := &mockPublisher{}
		group := messaging.NewPublisherGroup(mock)

		require.NoError(t, group.Shutdown())
		assert.True(t, mock.closed)
	})

	t.Run("shutdown surfaces close errors", func(t *testing.T) {
		mock := &mockPublisher{closeErr: errors.New("close failed")}
		group := messaging.NewPublisherGroup(mock)

		assert.Error(t, group.Shutdown())
	})
}
