/*
Package bridge adapts asynchronous producers into demand-driven publishers.

Two bridges cover the two producer shapes:

FromSource consumes a pull-based source.Source: one driving goroutine pulls
the next item, waits for consumer demand, delivers, and repeats. Nothing is
buffered. When demand is exhausted the goroutine polls for it with exponential
backoff (BackoffConfig); if the retry budget runs out, the current item is
abandoned and the subscription stops silently. A pull-based producer loses
nothing by not being pulled, so the backoff only needs to tolerate short
demand gaps.

FromEmitter consumes a push-based source.Emitter: the producer emits at its
own pace, and items arriving without demand are held in an unbounded FIFO
buffer that Request drains in order. Unbounded is a policy choice: this bridge
never drops an item, at the cost of memory when a fast producer meets a slow
consumer.

Both bridges share the same guarantees per subscription: items are delivered
in producer order, the terminal event (OnComplete or OnError) is delivered
exactly once and always last, and cancellation stops the driving goroutine
cooperatively without synthesizing a terminal event. All subscription state
sits behind one mutex; subscriber callbacks always run outside it, so a
subscriber may synchronously request more demand or cancel from within OnNext.

Basic usage:

	pub := bridge.FromSource(source.Slice([]int{10, 20, 30}))
	pub.Subscribe(mySubscriber)

With configuration and metrics:

	cfg := bridge.DefaultConfig()
	cfg.Name = "orders"
	cfg.Metrics.Enabled = true
	pub := bridge.FromEmitterWithConfig(source.Stream(ch), cfg)
*/
package bridge
