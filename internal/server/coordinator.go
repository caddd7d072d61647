// Package server is the coordinator: it binds the TCP listener, runs the
// single executor goroutine that owns the Store, and spawns one connection
// handler per accepted client. It is the Go translation of
// original_source/src/main.rs's tokio::spawn + mpsc/oneshot actor, using a
// buffered Go channel in place of mpsc and a capacity-1 reply channel in
// place of oneshot, following the same accept-loop shape the
// lukluk-rendang proxy uses (main.go's RedisProxy.Start/handleConnection).
package server

import (
	"context"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/lukluk/kiba/internal/config"
	"github.com/lukluk/kiba/internal/executor"
	"github.com/lukluk/kiba/internal/logging"
	"github.com/lukluk/kiba/internal/metrics"
)

// shutdownGrace bounds how long the coordinator waits for in-flight
// connection handlers to exit once a shutdown signal arrives (§5).
const shutdownGrace = 5 * time.Second

// Coordinator owns the listener, the message bus, and the executor
// goroutine's lifetime.
type Coordinator struct {
	cfg     config.Config
	exec    *executor.Executor
	metrics *metrics.Registry
	bus     chan message

	nextClientNo uint64
	clientNoMu   sync.Mutex
}

// New builds a Coordinator. metricsReg may be nil to disable observation.
func New(cfg config.Config, metricsReg *metrics.Registry) *Coordinator {
	exec := executor.New()
	if metricsReg != nil {
		exec = exec.WithObserver(metricsReg)
	}
	return &Coordinator{
		cfg:     cfg,
		exec:    exec,
		metrics: metricsReg,
		bus:     make(chan message, cfg.Cbound),
	}
}

// Run binds the listener and blocks until ctx is canceled or a fatal
// listener error occurs. It installs its own SIGINT/SIGTERM handling on
// top of ctx per §11.4: either source triggers the same orderly shutdown.
func (c *Coordinator) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", c.cfg.Bind)
	if err != nil {
		return err
	}
	logrus.Infof("listening on %s", c.cfg.Bind)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var wg sync.WaitGroup
	execDone := make(chan struct{})
	go func() {
		defer close(execDone)
		c.runExecutor(ctx)
	}()

	go func() {
		select {
		case <-sigCh:
			logrus.Info("received shutdown signal, draining connections")
		case <-ctx.Done():
		}
		cancel()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				// Expected: Accept unblocks because we closed the listener.
			default:
				logrus.Errorf("accept failed: %v", err)
			}
			break
		}

		clientID := c.newClientID()
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.handleConnection(ctx, conn, clientID)
		}()
	}
	cancel()

	waitCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitCh)
	}()
	select {
	case <-waitCh:
	case <-time.After(shutdownGrace):
		logrus.Warn("shutdown grace period elapsed with connections still open")
	}

	// c.bus is never closed: a handler that was blocked in conn.Read for the
	// whole grace period can still be parked in dispatchLine's
	// `select { case c.bus <- msg: ... }` after we give up waiting on wg, and
	// closing the channel out from under that send would risk a
	// send-on-closed-channel panic. ctx is already canceled by this point, so
	// runExecutor exits via its own ctx.Done() case, and any handler still
	// trying to send unblocks via its matching ctx.Done() case instead.
	<-execDone
	logrus.Info("coordinator stopped")
	return nil
}

// runExecutor is the single long-lived goroutine that owns the Store. It
// consumes messages in FIFO order until ctx is canceled, matching the
// original's `while let Some(msg) = rx.recv().await` but keyed off context
// cancellation rather than channel closure — see the comment in Run for why
// c.bus itself is never closed.
func (c *Coordinator) runExecutor(ctx context.Context) {
	logrus.Debug("executor started")
	for {
		select {
		case msg := <-c.bus:
			resp := c.exec.Execute(msg.req)
			msg.reply <- resp
		case <-ctx.Done():
			logrus.Debug("executor stopped")
			return
		}
	}
}

func (c *Coordinator) newClientID() string {
	c.clientNoMu.Lock()
	c.nextClientNo++
	n := c.nextClientNo
	c.clientNoMu.Unlock()
	// The monotonic number orders clients for log correlation; the xid
	// suffix (§11.1) gives each a globally unique token safe to hand back
	// to an operator without leaking the accept-order counter.
	return logging.ClientID(n, xid.New().String())
}
