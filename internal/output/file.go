package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/c2h5oh/datasize"
	"github.com/lattice-data/seqgen/internal/generr"
)

// FilePath derives the table path for a generator's output (spec.md §6):
// <output-base>/<job-id>/node<NNN>/<generator-name>.tbl.
func FilePath(outputBase, jobID string, nodeID int, generatorName string) string {
	return filepath.Join(outputBase, jobID, fmt.Sprintf("node%03d", nodeID), generatorName+".tbl")
}

// FileCollector writes length-prefixed record frames to a truncated file
// (spec.md §6 "truncate-on-open, binary mode"). The length prefix is the
// only framing imposed; record bytes themselves are whatever the caller's
// encoder produced.
type FileCollector struct {
	path   string
	file   *os.File
	writer *bufio.Writer
}

// NewFileCollector creates (truncating) path and its parent directories,
// buffering writes with bufSize (spec.md §6 amortised write buffer; see
// also config.Config.WriteBufferSize).
func NewFileCollector(path string, bufSize datasize.ByteSize) (*FileCollector, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, generr.NewIoError("mkdir", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, generr.NewIoError("open", path, err)
	}
	size := int(bufSize.Bytes())
	if size <= 0 {
		size = 64 * 1024
	}
	return &FileCollector{path: path, file: f, writer: bufio.NewWriterSize(f, size)}, nil
}

// Collect writes a uint32 little-endian length prefix followed by record.
func (c *FileCollector) Collect(record []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(record)))
	if _, err := c.writer.Write(lenBuf[:]); err != nil {
		return generr.NewIoError("write", c.path, err)
	}
	if _, err := c.writer.Write(record); err != nil {
		return generr.NewIoError("write", c.path, err)
	}
	return nil
}

func (c *FileCollector) Close() error {
	if err := c.writer.Flush(); err != nil {
		c.file.Close()
		return generr.NewIoError("flush", c.path, err)
	}
	if err := c.file.Close(); err != nil {
		return generr.NewIoError("close", c.path, err)
	}
	return nil
}
