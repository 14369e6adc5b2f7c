package source

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisPubSub creates an Emitter backed by a Redis Pub/Sub subscription on the
// given channels. Each received message is emitted as an item; the stream ends
// when the driving context is cancelled. Connection-level errors terminate the
// stream with that error.
//
// Works with redis.Client, redis.ClusterClient, and redis.Ring.
func RedisPubSub(client redis.UniversalClient, channels ...string) Emitter[*redis.Message] {
	return EmitterFunc[*redis.Message](func(ctx context.Context) <-chan Emission[*redis.Message] {
		out := make(chan Emission[*redis.Message])

		pubsub := client.Subscribe(ctx, channels...)

		go func() {
			defer close(out)
			defer func() { _ = pubsub.Close() }()

			for {
				msg, err := pubsub.Receive(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					select {
					case out <- Emission[*redis.Message]{Err: err}:
					case <-ctx.Done():
					}
					return
				}

				m, ok := msg.(*redis.Message)
				if !ok {
					// Subscription confirmations and pongs are not items.
					continue
				}

				select {
				case out <- Emission[*redis.Message]{Value: m}:
				case <-ctx.Done():
					return
				}
			}
		}()

		return out
	})
}
