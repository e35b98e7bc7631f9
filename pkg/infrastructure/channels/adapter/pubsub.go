package adapter

import (
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/mateusmacedo/go-layers/pkg/application"
	watermillAdapter "github.com/mateusmacedo/go-layers/pkg/infrastructure/watermill/adapter"
)

// NewGoChannelPubSub cria um pub/sub em memória; publisher e subscriber são o mesmo valor.
func NewGoChannelPubSub(logger application.AppLogger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermillAdapter.NewWatermillLoggerAdapter(logger))
}
