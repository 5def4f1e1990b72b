//go:build !unix

package acceptor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// poll is the non-unix fallback for spec §4.H's readiness multiplexer:
// no portable raw-fd polling primitive exists outside unix, so each
// listener runs its own blocking Accept loop instead, all under one
// errgroup. Cancellation closes every listener together; an accept
// error is logged and that listener's loop continues.
func (a *Acceptor) poll(ctx context.Context, bindings []binding) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, b := range bindings {
		b := b
		g.Go(func() error {
			return a.acceptLoop(ctx, b)
		})
	}

	go func() {
		<-ctx.Done()
		closeAll(bindings)
	}()

	return g.Wait()
}

func (a *Acceptor) acceptLoop(ctx context.Context, b binding) error {
	for {
		c, err := b.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if a.log != nil {
				a.log.Error("accept on %s: %v", b.addr, err)
			}
			continue
		}
		a.handle(c, b)
	}
}
