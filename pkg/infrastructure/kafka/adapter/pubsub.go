package adapter

import (
	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/pkg/errors"

	"github.com/mateusmacedo/go-layers/pkg/application"
	watermillAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/watermill/adapter"
)

// NewSaramaSubscriberConfig retorna a configuração do consumidor usada pelo subscriber Kafka.
func NewSaramaSubscriberConfig(clientID string) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V1_0_0_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.ClientID = clientID
	return saramaConfig
}

// NewKafkaPubSub cria publisher e subscriber Kafka com o marshaler padrão do watermill.
func NewKafkaPubSub(brokers []string, consumerGroup string, logger application.AppLogger) (*kafka.Publisher, *kafka.Subscriber, error) {
	wmLogger := watermillAdapter.NewWatermillLoggerAdapter(logger)
	marshaler := kafka.DefaultMarshaler{}

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: marshaler,
	}, wmLogger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create kafka publisher")
	}

	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               brokers,
		Unmarshaler:           marshaler,
		ConsumerGroup:         consumerGroup,
		OverwriteSaramaConfig: NewSaramaSubscriberConfig(consumerGroup),
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}, wmLogger)
	if err != nil {
		_ = publisher.Close()
		return nil, nil, errors.Wrap(err, "create kafka subscriber")
	}

	return publisher, subscriber, nil
}
