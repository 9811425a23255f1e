package ws

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type signalKind int

const (
	sigDialed signalKind = iota
	sigDialFailed
	sigFrame
	sigReadFailed
)

// signal is posted by helper goroutines into the loop. gen ties it to the
// attempt that produced it.
type signal struct {
	kind signalKind
	gen  uint64
	conn *websocket.Conn
	data []byte
	err  error
}

func (c *Client[K]) post(sig signal) bool {
	select {
	case c.inbox <- sig:
		return true
	case <-c.ctx.Done():
		return false
	}
}

func (c *Client[K]) dial(gen uint64) {
	conn, _, err := c.opts.Dialer.DialContext(c.ctx, c.opts.URL, c.proto.header())
	if err != nil {
		c.post(signal{kind: sigDialFailed, gen: gen, err: err})
		return
	}
	if !c.post(signal{kind: sigDialed, gen: gen, conn: conn}) {
		_ = conn.Close()
	}
}

func (c *Client[K]) readLoop(gen uint64, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.post(signal{kind: sigReadFailed, gen: gen, err: err})
			return
		}
		c.extendReadDeadline(conn)
		if !c.post(signal{kind: sigFrame, gen: gen, data: data}) {
			return
		}
	}
}

// extendReadDeadline pushes the read deadline forward once the protocol has
// announced how long the server may stay silent.
func (c *Client[K]) extendReadDeadline(conn *websocket.Conn) {
	if d := time.Duration(c.readTimeout.Load()); d > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(d))
	}
}

func (c *Client[K]) handle(sig signal) {
	if sig.gen != c.gen || !c.live {
		if sig.conn != nil {
			_ = sig.conn.Close()
		}
		return
	}

	switch sig.kind {
	case sigDialed:
		c.conn = sig.conn
		c.conn.SetReadLimit(readLimit)
		go c.readLoop(sig.gen, sig.conn)
		if c.proto.openOnConnect() {
			c.open()
		}
	case sigDialFailed:
		c.closed(sig.err)
	case sigReadFailed:
		c.closed(sig.err)
	case sigFrame:
		c.onFrame(sig.data)
	}
}

func (c *Client[K]) onFrame(data []byte) {
	d := c.proto.decode(data)

	if d.readTimeout > 0 && c.conn != nil {
		c.readTimeout.Store(int64(d.readTimeout))
		c.extendReadDeadline(c.conn)
	}

	for _, r := range d.reply {
		if err := c.write(r); err != nil {
			c.closed(err)
			return
		}
	}

	switch {
	case d.malformed:
		c.dropped.Add(1)
		c.logEntry().WithField("frame", truncate(data, 256)).Debug("Не удалось разобрать WS сообщение.")
	case d.err != nil:
		c.closed(d.err)
	case d.ready:
		c.open()
	case d.event != nil:
		c.dispatch(*d.event)
	}
}

func newSession() string {
	return uuid.NewString()
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
