package server

import (
	"bytes"
	"context"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/lukluk/kiba/internal/logging"
	"github.com/lukluk/kiba/internal/protocol"
)

// readBufSize is B from §4.5: one socket read pulls up to this many bytes.
const readBufSize = 512

// handleConnection runs one client's read/dispatch/write loop. Per
// REDESIGN FLAG F-2, bytes read in excess of a complete line are held and
// prefixed to the next read rather than discarded, so that a read landing
// mid-line does not fracture a request.
func (c *Coordinator) handleConnection(ctx context.Context, conn net.Conn, clientID string) {
	log := logging.ForClient(clientID)
	log.Infof("accepted connection from %s", conn.RemoteAddr())
	if c.metrics != nil {
		c.metrics.ConnectionsTotal.Inc()
	}
	defer func() {
		conn.Close()
		log.Info("connection closed")
	}()

	var pending []byte
	buf := make([]byte, readBufSize)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)

			for {
				idx := bytes.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}
				line := pending[:idx]
				pending = pending[idx+1:]

				if !c.dispatchLine(ctx, conn, line, log) {
					return
				}
			}
		}
		if err != nil {
			// A held partial line with no newline ever following is
			// dropped along with the connection — there is no complete
			// request left to honor (§4.5/F-2).
			return
		}
		if c.metrics != nil {
			c.metrics.QueueDepth.Set(float64(len(c.bus)))
		}
	}
}

// dispatchLine parses and executes one line, writing its response. It
// returns false when the connection should terminate (Quit, or a write/
// send failure).
func (c *Coordinator) dispatchLine(ctx context.Context, conn net.Conn, line []byte, log *logrus.Entry) bool {
	req := protocol.Parse(line)

	if req.Kind == protocol.Quit {
		log.Debug("quit received")
		return false
	}

	msg := newMessage(req)
	select {
	case c.bus <- msg:
	case <-ctx.Done():
		return false
	}

	var resp protocol.Response
	select {
	case resp = <-msg.reply:
	case <-ctx.Done():
		return false
	}

	if _, err := conn.Write([]byte(resp.Body)); err != nil {
		log.Debugf("write failed: %v", err)
		return false
	}

	if req.Fatal {
		// F-1: non-UTF-8 input closes only this connection; the
		// executor and every other client are unaffected.
		log.Warn("closing connection after non-UTF-8 input")
		return false
	}
	return true
}
