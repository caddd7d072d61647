package server

import "github.com/lukluk/kiba/internal/protocol"

// message carries one client Request to the executor goroutine alongside
// a single-use reply handle, mirroring the original's
// mpsc::Sender<Message>/oneshot::Sender<Response> pairing (see
// original_source/src/main.rs) translated into Go channels per §4.6/§5.
type message struct {
	req   protocol.Request
	reply chan protocol.Response
}

func newMessage(req protocol.Request) message {
	// Capacity 1: the executor's send must never block even if the
	// connection goroutine has already abandoned the request (§5).
	return message{req: req, reply: make(chan protocol.Response, 1)}
}
