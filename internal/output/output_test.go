package output

import (
	"encoding/binary"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/require"
)

func TestFilePathMatchesConvention(t *testing.T) {
	got := FilePath("/tmp/out", "job1", 3, "typeA")
	require.Equal(t, filepath.Join("/tmp/out", "job1", "node003", "typeA.tbl"), got)
}

func TestFileCollectorRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "typeA.tbl")

	c, err := NewFileCollector(path, 4*datasize.KB)
	require.NoError(t, err)
	require.NoError(t, c.Collect([]byte("alpha")))
	require.NoError(t, c.Collect([]byte("beta")))
	require.NoError(t, c.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, decodeFrames(t, raw))
}

func TestFileCollectorTruncatesOnReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typeA.tbl")

	c1, err := NewFileCollector(path, 0)
	require.NoError(t, err)
	require.NoError(t, c1.Collect([]byte("first-run-longer-payload")))
	require.NoError(t, c1.Close())

	c2, err := NewFileCollector(path, 0)
	require.NoError(t, err)
	require.NoError(t, c2.Collect([]byte("x")))
	require.NoError(t, c2.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, decodeFrames(t, raw))
}

func TestVoidCollectorCountsAndDiscards(t *testing.T) {
	var c VoidCollector
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Collect([]byte("ignored")))
	}
	require.Equal(t, uint64(5), c.Count())
	require.NoError(t, c.Close())
}

func TestSocketCollectorFlushesOnClose(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	c, err := NewSocketCollector(port, 5*time.Millisecond)
	require.NoError(t, err)

	conn := <-accepted
	defer conn.Close()

	require.NoError(t, c.Collect([]byte("hello")))
	require.NoError(t, c.Close())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	raw := make([]byte, 9)
	_, err = io.ReadFull(conn, raw)
	require.NoError(t, err)
	require.Equal(t, uint32(5), binary.LittleEndian.Uint32(raw[:4]))
	require.Equal(t, "hello", string(raw[4:]))
}

func decodeFrames(t *testing.T, raw []byte) []string {
	t.Helper()
	var out []string
	for len(raw) > 0 {
		require.GreaterOrEqual(t, len(raw), 4)
		n := binary.LittleEndian.Uint32(raw[:4])
		raw = raw[4:]
		require.GreaterOrEqual(t, uint64(len(raw)), uint64(n))
		out = append(out, string(raw[:n]))
		raw = raw[n:]
	}
	return out
}
