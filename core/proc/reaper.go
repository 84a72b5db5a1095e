package proc

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
)

// ExitFunc is called by the Reaper after a background child is collected.
type ExitFunc func(pid int, status unix.WaitStatus)

// Reaper collects background children when they terminate so they don't
// linger as zombies.
//
// Only PIDs handed to Track are waited on. Foreground children are waited
// on by the Launcher and can never be collected here.
type Reaper struct {
	mu      sync.Mutex
	pending map[int]struct{}

	// poke wakes Run after a PID is tracked in case its SIGCHLD already
	// arrived.
	poke   chan struct{}
	onExit ExitFunc
}

// NewReaper creates a Reaper. onExit may be nil.
func NewReaper(onExit ExitFunc) *Reaper {
	return &Reaper{
		pending: make(map[int]struct{}),
		poke:    make(chan struct{}, 1),
		onExit:  onExit,
	}
}

// Track hands a started background child to the reaper.
func (r *Reaper) Track(pid int) {
	r.mu.Lock()
	r.pending[pid] = struct{}{}
	r.mu.Unlock()

	select {
	case r.poke <- struct{}{}:
	default:
	}
}

// Pending is the number of tracked children not yet collected.
func (r *Reaper) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Run listens for SIGCHLD and reaps until ctx is done.
func (r *Reaper) Run(ctx context.Context) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGCHLD)
	defer signal.Stop(sigs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sigs:
		case <-r.poke:
		}
		r.Reap()
	}
}

// Reap collects every tracked child that has terminated without blocking
// and returns how many were collected.
func (r *Reaper) Reap() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	reaped := 0
	for pid := range r.pending {
		var status unix.WaitStatus
		wpid, err := waitNoHang(pid, &status)
		switch {
		case err != nil:
			// ECHILD means it was collected elsewhere. Any other failure
			// would repeat on every retry.
			delete(r.pending, pid)
		case wpid == 0:
			// Still running.
		default:
			delete(r.pending, pid)
			reaped++
			if r.onExit != nil {
				r.onExit(pid, status)
			}
		}
	}
	return reaped
}

var wait4 = unix.Wait4

func waitNoHang(pid int, status *unix.WaitStatus) (int, error) {
	for {
		wpid, err := wait4(pid, status, unix.WNOHANG, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return wpid, err
	}
}
