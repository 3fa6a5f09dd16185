package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends raw ESC/POS data to a thermal ticket printer.
type Printer interface {
	Print(data []byte) error
	Close() error
	IsConnected() bool
}

const (
	dialTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	probeTimeout = 2 * time.Second
)

// usbPrinter writes to a character device file such as /dev/usb/lp0.
// The device is opened per print job so the handle is never held open.
type usbPrinter struct {
	devicePath string
}

// NewUSBPrinter creates a printer backed by a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{devicePath: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.devicePath, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.devicePath, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.devicePath, err)
	}
	return nil
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.devicePath)
	return err == nil
}

// networkPrinter dials the printer over TCP, normally port 9100.
type networkPrinter struct {
	address string
}

// NewNetworkPrinter creates a printer reached over TCP. The address must
// include the port, e.g. "192.168.1.50:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// nullPrinter discards everything. Used when no printer is configured so
// receipt submission never depends on printing hardware.
type nullPrinter struct{}

// NewNullPrinter creates a no-op printer.
func NewNullPrinter() Printer { return &nullPrinter{} }

func (p *nullPrinter) Print([]byte) error { return nil }
func (p *nullPrinter) Close() error       { return nil }
func (p *nullPrinter) IsConnected() bool  { return false }

// NewPrinterFromConfig creates a Printer for the configured type: "usb",
// "network" or "none".
func NewPrinterFromConfig(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: usb type requires a device path")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: network type requires an address")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown type %q", printerType)
	}
}
