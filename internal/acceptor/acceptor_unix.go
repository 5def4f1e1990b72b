//go:build unix

package acceptor

import (
	"context"
	"errors"
	"net"

	"golang.org/x/sys/unix"
)

// pollTimeoutMillis bounds each unix.Poll call so the loop re-checks
// ctx.Done() even when nothing is ready.
const pollTimeoutMillis = 1000

// poll implements spec §4.H's readiness multiplexer with
// golang.org/x/sys/unix.Poll over the bound listeners' raw file
// descriptors: block until one or more are readable, accept exactly
// one connection per ready listener, and dispatch it.
func (a *Acceptor) poll(ctx context.Context, bindings []binding) error {
	fds := make([]int, len(bindings))
	for i, b := range bindings {
		fd, err := listenerFd(b.listener)
		if err != nil {
			return err
		}
		fds[i] = fd
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		pollfds := make([]unix.PollFd, len(fds))
		for i, fd := range fds {
			pollfds[i] = unix.PollFd{Fd: int32(fd), Events: unix.POLLIN}
		}

		n, err := unix.Poll(pollfds, pollTimeoutMillis)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if a.log != nil {
				a.log.Error("poll: %v", err)
			}
			continue
		}
		if n == 0 {
			continue
		}

		for i, pfd := range pollfds {
			if pfd.Revents&unix.POLLIN == 0 {
				continue
			}
			b := bindings[i]
			c, err := b.listener.Accept()
			if err != nil {
				if a.log != nil {
					a.log.Error("accept on %s: %v", b.addr, err)
				}
				continue
			}
			a.handle(c, b)
		}
	}
}

// listenerFd extracts the raw file descriptor backing a TCP listener,
// for registration with unix.Poll.
func listenerFd(l net.Listener) (int, error) {
	tcp, ok := l.(*net.TCPListener)
	if !ok {
		return 0, errors.New("acceptor: listener is not a *net.TCPListener")
	}
	raw, err := tcp.SyscallConn()
	if err != nil {
		return 0, err
	}
	var fd int
	ctrlErr := raw.Control(func(f uintptr) {
		fd = int(f)
	})
	if ctrlErr != nil {
		return 0, ctrlErr
	}
	return fd, nil
}
