package printing

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"HotelPos/app/errs"
)

// Sink accepts a rendered document. It never sees domain structures,
// only bytes and a job label.
type Sink interface {
	Print(doc []byte, jobLabel string) error
}

// NetworkSink sends raw documents to a JetDirect-style printer port.
type NetworkSink struct {
	Addr    string // host:port, conventionally port 9100
	Timeout time.Duration
}

func (s *NetworkSink) Print(doc []byte, jobLabel string) error {
	timeout := s.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	conn, err := net.DialTimeout("tcp", s.Addr, timeout)
	if err != nil {
		return &errs.PrinterError{JobLabel: jobLabel, Err: fmt.Errorf("connect %s: %w", s.Addr, err)}
	}
	defer conn.Close()

	if _, err := conn.Write(doc); err != nil {
		return &errs.PrinterError{JobLabel: jobLabel, Err: fmt.Errorf("write: %w", err)}
	}
	return nil
}

// FileSink spools documents to a directory, one file per job. Used for
// inspection and as the print target when no printer is configured.
type FileSink struct {
	Dir string
}

func (s *FileSink) Print(doc []byte, jobLabel string) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return &errs.PrinterError{JobLabel: jobLabel, Err: err}
	}
	path := filepath.Join(s.Dir, jobLabel+".pdf")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return &errs.PrinterError{JobLabel: jobLabel, Err: err}
	}
	return nil
}
