package adapter

import (
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/mateusmacedo/go-layers/pkg/application"
	watermillAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/watermill/adapter"
)

// NewRedisStreamPubSub cria publisher e subscriber sobre Redis Streams.
func NewRedisStreamPubSub(client redis.UniversalClient, consumerGroup string, logger application.AppLogger) (*redisstream.Publisher, *redisstream.Subscriber, error) {
	wmLogger := watermillAdapter.NewWatermillLoggerAdapter(logger)

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client:     client,
		Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
	}, wmLogger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create redis stream publisher")
	}

	subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        client,
		Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
		ConsumerGroup: consumerGroup,
	}, wmLogger)
	if err != nil {
		_ = publisher.Close()
		return nil, nil, errors.Wrap(err, "create redis stream subscriber")
	}

	return publisher, subscriber, nil
}
