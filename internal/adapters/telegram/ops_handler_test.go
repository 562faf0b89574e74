package telegram

import (
	"ImaniConsole/internal/core/domain"
	"ImaniConsole/internal/core/ports"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// recordingSender captures alert texts.
type recordingSender struct {
	sent []string
}

func (s *recordingSender) Send(ctx context.Context, text string) error {
	s.sent = append(s.sent, text)
	return nil
}

// recordingBus stores handlers so the test can invoke them directly.
type recordingBus struct {
	handlers map[string]ports.EventHandler
}

func (b *recordingBus) Publish(ctx context.Context, topic string, data interface{}) error {
	return nil
}
func (b *recordingBus) Subscribe(topic string, handler ports.EventHandler) {
	if b.handlers == nil {
		b.handlers = make(map[string]ports.EventHandler)
	}
	b.handlers[topic] = handler
}

func TestOpsAlertHandler_ListingEventBecomesMessage(t *testing.T) {
	nopLogger := zerolog.Nop()
	sender := &recordingSender{}
	bus := &recordingBus{}

	NewOpsAlertHandler(sender, &nopLogger).Register(bus)
	require.Len(t, bus.handlers, 4)

	listing := &domain.Listing{ID: "L1", SellerID: "U1", Name: "Chaise"}
	err := bus.handlers[ports.TopicListingApproved](context.Background(), ports.Event{
		Topic: ports.TopicListingApproved,
		Data:  listing,
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	require.Contains(t, sender.sent[0], "approved")
	require.Contains(t, sender.sent[0], "Chaise")
}

func TestOpsAlertHandler_InvalidPayloadIsDropped(t *testing.T) {
	nopLogger := zerolog.Nop()
	sender := &recordingSender{}
	bus := &recordingBus{}

	NewOpsAlertHandler(sender, &nopLogger).Register(bus)

	err := bus.handlers[ports.TopicSellerApproved](context.Background(), ports.Event{
		Topic: ports.TopicSellerApproved,
		Data:  "not a profile",
	})
	require.NoError(t, err)
	require.Empty(t, sender.sent)
}
