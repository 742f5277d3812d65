package eventbus

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBus is the publish/subscribe contract shared by the modules. It
// satisfies both watermill's message.Publisher and message.Subscriber so an
// implementation can be handed straight to a message.Router.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}
