package source

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// Cron creates an Emitter that emits the scheduled time on every firing of
// the given cron expression. Supports the standard five-field format plus
// descriptors such as "@hourly" and "@every 5s". The stream runs until the
// driving context is cancelled.
//
// Returns an error if the expression does not parse.
func Cron(expr string) (Emitter[time.Time], error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, err
	}

	return EmitterFunc[time.Time](func(ctx context.Context) <-chan Emission[time.Time] {
		out := make(chan Emission[time.Time])

		go func() {
			defer close(out)

			next := schedule.Next(time.Now())
			timer := time.NewTimer(time.Until(next))
			defer timer.Stop()

			for {
				select {
				case <-timer.C:
					select {
					case out <- Emission[time.Time]{Value: next}:
					case <-ctx.Done():
						return
					}
				case <-ctx.Done():
					return
				}

				next = schedule.Next(time.Now())
				timer.Reset(time.Until(next))
			}
		}()

		return out
	}), nil
}
