package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/lattice-data/seqgen/internal/generr"
)

// socketFlushEvery is the record-count flush threshold (spec.md §6:
// "writes are buffered and flushed every 1000 records").
const socketFlushEvery = 1000

// SocketCollector streams length-prefixed record frames to a TCP listener
// at localhost:port (spec.md §6). Collect only enqueues; a background
// goroutine drains the queue into the connection, flushing every
// socketFlushEvery records or on a timer tick, whichever comes first —
// adapted from the teacher's batch-size-or-timeout batching loop
// (internal/disruptor/batcher.go) so a low-volume generator type still
// flushes promptly instead of waiting for a batch that never fills.
type SocketCollector struct {
	conn   net.Conn
	writer *bufio.Writer

	queue      chan []byte
	flushTick  time.Duration
	shutdownCh chan struct{}
	doneCh     chan error
}

// NewSocketCollector dials localhost:port and starts the batching loop.
func NewSocketCollector(port int, flushTick time.Duration) (*SocketCollector, error) {
	addr := fmt.Sprintf("localhost:%d", port)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, generr.NewIoError("dial", addr, err)
	}
	if flushTick <= 0 {
		flushTick = 10 * time.Millisecond
	}
	c := &SocketCollector{
		conn:       conn,
		writer:     bufio.NewWriter(conn),
		queue:      make(chan []byte, socketFlushEvery*2),
		flushTick:  flushTick,
		shutdownCh: make(chan struct{}),
		doneCh:     make(chan error, 1),
	}
	go c.batchLoop()
	return c, nil
}

func (c *SocketCollector) Collect(record []byte) error {
	select {
	case c.queue <- record:
		return nil
	case <-c.shutdownCh:
		return generr.NewIoError("write", c.conn.RemoteAddr().String(), fmt.Errorf("collector closed"))
	}
}

func (c *SocketCollector) batchLoop() {
	ticker := time.NewTicker(c.flushTick)
	defer ticker.Stop()

	since := 0
	var firstErr error
	write := func(b []byte) {
		if firstErr != nil {
			return
		}
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
		if _, err := c.writer.Write(lenBuf[:]); err != nil {
			firstErr = generr.NewIoError("write", c.conn.RemoteAddr().String(), err)
			log.Printf("ERROR: socket collector write failed: %v", firstErr)
			return
		}
		if _, err := c.writer.Write(b); err != nil {
			firstErr = generr.NewIoError("write", c.conn.RemoteAddr().String(), err)
			log.Printf("ERROR: socket collector write failed: %v", firstErr)
		}
	}
	flush := func() {
		if firstErr != nil {
			return
		}
		if err := c.writer.Flush(); err != nil {
			firstErr = generr.NewIoError("flush", c.conn.RemoteAddr().String(), err)
			log.Printf("ERROR: socket collector flush failed: %v", firstErr)
			return
		}
		since = 0
	}

	for {
		select {
		case record := <-c.queue:
			write(record)
			since++
			if since >= socketFlushEvery {
				flush()
			}
		case <-ticker.C:
			if since > 0 {
				flush()
			}
		case <-c.shutdownCh:
			for {
				select {
				case record := <-c.queue:
					write(record)
				default:
					flush()
					c.doneCh <- firstErr
					return
				}
			}
		}
	}
}

func (c *SocketCollector) Close() error {
	log.Println("Shutting down socket collector...")
	close(c.shutdownCh)
	err := <-c.doneCh
	if cerr := c.conn.Close(); err == nil && cerr != nil {
		err = generr.NewIoError("close", c.conn.RemoteAddr().String(), cerr)
	}
	log.Println("Socket collector shutdown complete")
	return err
}
