// Package printer sends ESC/POS documents to receipt printers.
package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer delivers a rendered document.
type Printer interface {
	Print(data []byte) error
	Close() error
	// Ready reports whether the device can currently be reached.
	Ready() bool
}

// Config selects the printer. Type is "usb", "network", "file" or "none".
type Config struct {
	Type    string
	Path    string // device file for usb, output file for file
	Address string // host:port for network, usually port 9100
	Width   int
}

// New returns the printer described by cfg.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.Path == "" {
			return nil, fmt.Errorf("printer: device path is required for usb printers")
		}
		return &filePrinter{path: cfg.Path, flags: os.O_WRONLY}, nil
	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("printer: path is required for file printers")
		}
		return &filePrinter{path: cfg.Path, flags: os.O_WRONLY | os.O_CREATE | os.O_APPEND}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		return &networkPrinter{address: cfg.Address, timeout: 5 * time.Second}, nil
	case "none", "":
		return Null{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, file or none)", cfg.Type)
	}
}

// filePrinter writes to a device node or a spool file, opening it per job.
type filePrinter struct {
	path  string
	flags int
}

func (p *filePrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, p.flags, 0o644)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *filePrinter) Close() error {
	return nil
}

func (p *filePrinter) Ready() bool {
	if p.flags&os.O_CREATE != 0 {
		return true
	}
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter dials a raw TCP printer port per job.
type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * p.timeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil
}

func (p *networkPrinter) Ready() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Null discards every document. Used when no printer is configured.
type Null struct{}

func (Null) Print([]byte) error { return nil }

func (Null) Close() error { return nil }

func (Null) Ready() bool { return false }
