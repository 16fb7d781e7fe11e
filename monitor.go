package paladins

import (
	"context"
	"runtime/debug"
	"sync"
	"time"
)

const (
	defaultStatusCheckInterval   = 3 * time.Minute
	defaultStatusRecheckInterval = time.Minute
)

// StatusCallback receives the previous and the new server status whenever a
// change is detected. The before status is nil on the first successful
// check.
type StatusCallback func(before, after *ServerStatus)

// statusMonitor periodically refetches the server status and dispatches a
// callback on changes. At most one monitor loop runs per client.
type statusMonitor struct {
	client   *Client
	callback StatusCallback

	// check is the regular polling interval; recheck kicks in after a
	// failed fetch, and while any platform is down or limited.
	check   time.Duration
	recheck time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// RegisterStatusCallback starts monitoring the server status, calling cb on
// every detected change. Non-positive intervals fall back to 3 minutes
// between checks and 1 minute between rechecks.
//
// Calling it again replaces the callback and restarts the loop with the new
// intervals. A nil callback stops monitoring.
func (c *Client) RegisterStatusCallback(cb StatusCallback, check, recheck time.Duration) {
	c.monitorMu.Lock()
	defer c.monitorMu.Unlock()
	c.stopMonitorLocked()
	if cb == nil {
		return
	}
	if check <= 0 {
		check = defaultStatusCheckInterval
	}
	if recheck <= 0 {
		recheck = defaultStatusRecheckInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	monitor := &statusMonitor{
		client:   c,
		callback: cb,
		check:    check,
		recheck:  recheck,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	c.monitor = monitor
	go monitor.run(ctx)
}

// stopMonitorLocked cancels the running monitor loop and waits for it to
// wind down. Callers hold monitorMu.
func (c *Client) stopMonitorLocked() {
	if c.monitor == nil {
		return
	}
	c.monitor.cancel()
	<-c.monitor.done
	c.monitor = nil
}

func (m *statusMonitor) run(ctx context.Context) {
	defer close(m.done)
	logger := m.client.logger
	logger.Info("server status monitoring started",
		"check_interval", m.check, "recheck_interval", m.recheck)

	var last *ServerStatus
	var dispatch sync.WaitGroup
	defer dispatch.Wait()

	for {
		interval := m.check
		status, err := m.client.GetServerStatus(ctx, true)
		switch {
		case err != nil:
			logger.Warn("server status check failed", "error", err)
			interval = m.recheck
		case last == nil || !status.Equal(last):
			before, after := last, status
			last = status
			dispatch.Add(1)
			go func() {
				defer dispatch.Done()
				defer func() {
					if r := recover(); r != nil {
						logger.Error("status callback panicked",
							"panic", r, "stack", string(debug.Stack()))
					}
				}()
				m.callback(before, after)
			}()
			fallthrough
		default:
			if !status.AllUp() || status.LimitedAccess() {
				interval = m.recheck
			}
		}

		select {
		case <-ctx.Done():
			logger.Info("server status monitoring stopped")
			return
		case <-time.After(interval):
		}
	}
}
