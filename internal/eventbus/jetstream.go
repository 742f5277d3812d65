package eventbus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
)

// JetStreamEventBus implements EventBus on top of NATS JetStream via the
// watermill-nats bindings. Streams and durable consumers are provisioned
// lazily on first use.
type JetStreamEventBus struct {
	logger     watermill.LoggerAdapter
	natsURL    string
	conn       *nc.Conn
	js         nc.JetStreamContext
	publisher  *wnats.Publisher
	subscriber *wnats.Subscriber
}

var _ EventBus = (*JetStreamEventBus)(nil)

// NewJetStreamEventBus connects to NATS and builds the watermill publisher
// and subscriber pair.
func NewJetStreamEventBus(natsURL string, logger watermill.LoggerAdapter) (*JetStreamEventBus, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in subscription", err, watermill.LogFields{
					"subject": s.Subject,
					"queue":   s.Queue,
				})
			} else {
				logger.Error("Error in connection", err, nil)
			}
		}),
	}

	conn, err := nc.Connect(natsURL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	publisher, err := wnats.NewPublisher(
		wnats.PublisherConfig{
			URL:         natsURL,
			NatsOptions: options,
			Marshaler:   &wnats.NATSMarshaler{},
			JetStream: wnats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
		},
		logger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS publisher: %w", err)
	}

	subscriber, err := wnats.NewSubscriber(
		wnats.SubscriberConfig{
			URL:         natsURL,
			NatsOptions: options,
			Unmarshaler: &wnats.NATSMarshaler{},
			JetStream: wnats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
		},
		logger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS subscriber: %w", err)
	}

	return &JetStreamEventBus{
		logger:     logger,
		natsURL:    natsURL,
		conn:       conn,
		js:         js,
		publisher:  publisher,
		subscriber: subscriber,
	}, nil
}

// Publish ensures the backing stream exists, then publishes via watermill.
func (b *JetStreamEventBus) Publish(topic string, messages ...*message.Message) error {
	if err := b.ensureStream(topic); err != nil {
		return err
	}
	return b.publisher.Publish(topic, messages...)
}

// Subscribe ensures the backing stream and a durable consumer exist, then
// subscribes via watermill. Ack/Nack is handled by the message.Router.
func (b *JetStreamEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if err := b.ensureStream(topic); err != nil {
		return nil, err
	}
	if err := b.ensureConsumer(topic); err != nil {
		return nil, err
	}
	return b.subscriber.Subscribe(ctx, topic)
}

// Close shuts the publisher, subscriber and the underlying connection down.
func (b *JetStreamEventBus) Close() error {
	if err := b.publisher.Close(); err != nil {
		return fmt.Errorf("failed to close publisher: %w", err)
	}
	if err := b.subscriber.Close(); err != nil {
		return fmt.Errorf("failed to close subscriber: %w", err)
	}
	b.conn.Close()
	return nil
}

// ensureStream creates the JetStream stream for a topic if it doesn't exist.
// One stream per topic family: "submission.created" lives in stream
// "submission" with subjects "submission.>".
func (b *JetStreamEventBus) ensureStream(topic string) error {
	streamName := streamNameForTopic(topic)
	if !isValidStreamName(streamName) {
		return fmt.Errorf("invalid stream name derived from topic %q", topic)
	}

	info, err := b.js.StreamInfo(streamName)
	if err != nil && err != nc.ErrStreamNotFound {
		return fmt.Errorf("failed to get stream info: %w", err)
	}
	if info != nil {
		return nil
	}

	_, err = b.js.AddStream(&nc.StreamConfig{
		Name:     streamName,
		Subjects: []string{fmt.Sprintf("%s.>", streamName)},
	})
	if err != nil {
		return fmt.Errorf("failed to add stream: %w", err)
	}

	b.logger.Info("Stream created", watermill.LogFields{"stream": streamName})
	return nil
}

// ensureConsumer creates a durable consumer filtered to the topic's subject.
func (b *JetStreamEventBus) ensureConsumer(topic string) error {
	streamName := streamNameForTopic(topic)
	consumerName := strings.ReplaceAll(topic, ".", "-") + "-consumer"

	_, err := b.js.AddConsumer(streamName, &nc.ConsumerConfig{
		Durable:       consumerName,
		DeliverPolicy: nc.DeliverAllPolicy,
		AckPolicy:     nc.AckExplicitPolicy,
		FilterSubject: topic,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}
	return nil
}

// streamNameForTopic maps "submission.created" -> "submission".
func streamNameForTopic(topic string) string {
	if i := strings.IndexByte(topic, '.'); i > 0 {
		return topic[:i]
	}
	return topic
}

// isValidStreamName checks a stream name against NATS naming rules.
func isValidStreamName(name string) bool {
	for _, r := range name {
		if !isValidRune(r) {
			return false
		}
	}
	return name != "" && name[0] != '-' && name[len(name)-1] != '-'
}

func isValidRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
}
