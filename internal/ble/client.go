// Package ble connects to a GoCube over Bluetooth LE and forwards its
// message frames.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/cubecode/internal/protocol"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

var (
	serviceUUID = mustParseUUID(protocol.ServiceUUID)
	txCharUUID  = mustParseUUID(protocol.TxCharUUID)
	rxCharUUID  = mustParseUUID(protocol.RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(fmt.Sprintf("ble: bad uuid %q: %v", s, err))
	}
	return u
}

// ScanResult is a GoCube seen during a scan.
type ScanResult struct {
	Name    string
	UUID    string
	RSSI    int16
	Address bluetooth.Address
}

// link is an open connection: the cube notifies on tx and reads commands
// from rx.
type link struct {
	device bluetooth.Device
	tx     bluetooth.DeviceCharacteristic
	rx     bluetooth.DeviceCharacteristic
	name   string
	id     string
}

// Client holds at most one GoCube connection.
type Client struct {
	adapter *bluetooth.Adapter

	mu        sync.RWMutex
	conn      *link
	onMessage func(*protocol.Message)
}

// NewClient enables the default adapter.
func NewClient() (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	return &Client{adapter: adapter}, nil
}

// SetMessageCallback sets the function that receives every well-formed
// frame. It runs on the Bluetooth goroutine.
func (c *Client) SetMessageCallback(cb func(*protocol.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// Scan collects GoCube advertisements until timeout or ctx is done.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.current() != nil {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
	)
	done := make(chan error, 1)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			name := r.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			addr := r.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] {
				return
			}
			seen[addr] = true
			log.WithFields(log.Fields{"name": name, "addr": addr, "rssi": r.RSSI}).Debug("found device")
			results = append(results, ScanResult{Name: name, UUID: addr, RSSI: r.RSSI, Address: r.Address})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// ConnectToResult connects to a scanned device and subscribes to its frames.
func (c *Client) ConnectToResult(ctx context.Context, result ScanResult) error {
	if c.current() != nil {
		return ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	l, err := discover(device)
	if err != nil {
		device.Disconnect()
		return err
	}
	l.name, l.id = result.Name, result.UUID

	if err := l.tx.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.conn = l
	c.mu.Unlock()

	log.WithFields(log.Fields{"name": l.name, "id": l.id}).Info("connected")
	return nil
}

// discover finds the GoCube service and its two characteristics.
func discover(device bluetooth.Device) (*link, error) {
	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		return nil, fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		return nil, fmt.Errorf("failed to discover characteristics: %w", err)
	}

	l := &link{device: device}
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			l.tx = ch
		case rxCharUUID:
			l.rx = ch
		}
	}
	return l, nil
}

func (c *Client) current() *link {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

// Disconnect closes the connection, if any.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	l := c.conn
	c.conn = nil
	c.mu.Unlock()

	if l == nil {
		return nil
	}
	return l.device.Disconnect()
}

// DeviceName returns the name of the connected cube, or "".
func (c *Client) DeviceName() string {
	if l := c.current(); l != nil {
		return l.name
	}
	return ""
}

// DeviceUUID returns the address of the connected cube, or "".
func (c *Client) DeviceUUID() string {
	if l := c.current(); l != nil {
		return l.id
	}
	return ""
}

// send writes a one-byte command frame, falling back to a write with
// response when the stack refuses the unacknowledged one.
func (c *Client) send(cmd byte) error {
	l := c.current()
	if l == nil {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	if _, err := l.rx.WriteWithoutResponse(data); err == nil {
		return nil
	}
	_, err := l.rx.Write(data)
	return err
}

// RequestBattery asks the cube for a battery frame.
func (c *Client) RequestBattery() error {
	return c.send(protocol.CmdRequestBattery)
}

// ResetSolved makes the cube treat its current physical state as solved.
func (c *Client) ResetSolved() error {
	return c.send(protocol.CmdResetSolved)
}

// FlashBacklight flashes the cube's LEDs.
func (c *Client) FlashBacklight() error {
	return c.send(protocol.CmdFlashBacklight)
}

func (c *Client) handleNotification(data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		log.WithError(err).Debug("dropping malformed notification")
		return
	}

	c.mu.RLock()
	cb := c.onMessage
	c.mu.RUnlock()

	if cb != nil {
		cb(msg)
	}
}
