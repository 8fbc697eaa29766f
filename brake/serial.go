package brake

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial.v1"
)

// T1941 wants 19200 baud, 8N1, 3.3V TTL.
var DefaultSerialConfig = &serial.Mode{
	BaudRate: 19200,
	Parity:   serial.NoParity,
	DataBits: 8,
	StopBits: serial.OneStopBit,
}

var DefaultTimeout = time.Second

const readChunk = 64

// SerialConnection implements Transport over a serial port.
type SerialConnection struct {
	WriteTimeout time.Duration

	port   io.ReadWriteCloser
	path   string
	config *serial.Mode

	rdChan    chan []byte
	wrChan    chan []byte
	wrDone    chan error
	errChan   chan error
	closeChan chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewSerial(port io.ReadWriteCloser, config *serial.Mode, name string) *SerialConnection {
	return &SerialConnection{
		port:      port,
		path:      name,
		config:    config,
		rdChan:    make(chan []byte),
		wrChan:    make(chan []byte),
		wrDone:    make(chan error),
		errChan:   make(chan error),
		closeChan: make(chan struct{}),

		WriteTimeout: DefaultTimeout,
	}
}

// Start begins the two routines responsible
// for reading and writing on serial port.
func (sc *SerialConnection) Start() {
	sc.wg.Add(2)
	go func() {
		sc.readRoutine()
		sc.wg.Done()
	}()
	go func() {
		sc.writeRoutine()
		sc.wg.Done()
	}()
}

// ReadUpTo collects incoming bytes until an end of frame marker, max bytes,
// or timeout. Timing out is not an error, the brake is often silent.
func (sc *SerialConnection) ReadUpTo(max int, timeout time.Duration) (buf []byte, err error) {
	deadline := time.After(timeout)
	for {
		select {
		case b := <-sc.rdChan:
			buf = append(buf, b...)
			if i := bytes.IndexByte(buf, EndOfFrame); i >= 0 {
				buf = buf[:i+1]
			}
			if len(buf) > max {
				buf = buf[:max]
			}
			if len(buf) == max || bytes.IndexByte(buf, EndOfFrame) >= 0 {
				return buf, nil
			}
		case err = <-sc.errChan:
			return buf, err
		case <-sc.closeChan:
			return buf, ErrClosedPort
		case <-deadline:
			return buf, nil
		}
	}
}

// Write discards anything left unread from a previous exchange, bytes and read
// errors alike, then pushes b to the write routine and waits for it to be
// written, up to sc.WriteTimeout.
func (sc *SerialConnection) Write(b []byte) (err error) {
	sc.drain()
	timeout := time.After(sc.WriteTimeout)
	select {
	case sc.wrChan <- b:
	case <-sc.closeChan:
		return ErrClosedPort
	case <-timeout:
		return fmt.Errorf("write timeout (%s)", sc.WriteTimeout)
	}
	select {
	case err = <-sc.wrDone:
	case <-sc.closeChan:
		err = ErrClosedPort
	case <-timeout:
		err = fmt.Errorf("write timeout (%s)", sc.WriteTimeout)
	}
	return err
}

func (sc *SerialConnection) drain() {
	for {
		select {
		case b := <-sc.rdChan:
			log.Printf("discarding %d stale bytes from \"%s\"", len(b), sc.path)
		case err := <-sc.errChan:
			log.Printf("discarding stale read error from \"%s\": %s", sc.path, err)
		default:
			return
		}
	}
}

// Close notifies read/write routines to stop, closes the
// serial port, then waits for the routines to return.
func (sc *SerialConnection) Close() (err error) {
	sc.closeOnce.Do(func() {
		close(sc.closeChan)
		err = sc.port.Close()
		sc.wg.Wait()
	})
	return err
}

// Path returns device name / path of serial port.
func (sc *SerialConnection) Path() string {
	return sc.path
}

func (sc *SerialConnection) readRoutine() {
	for {
		b := make([]byte, readChunk)
		i, err := sc.port.Read(b)
		if err != nil {
			select {
			case sc.errChan <- err:
			case <-sc.closeChan:
				return
			}
		} else if i > 0 {
			select {
			case sc.rdChan <- b[:i]:
			case <-sc.closeChan:
				return
			}
		}
	}
}

func (sc *SerialConnection) writeRoutine() {
	var b []byte
	for {
		select {
		case b = <-sc.wrChan:
		case <-sc.closeChan:
			return
		}
		_, err := sc.port.Write(b)
		if err != nil {
			log.Println("in sc.writeRoutine:", err)
		}
		select {
		case sc.wrDone <- err:
		case <-sc.closeChan:
			return
		}
	}
}

const probeRetries = 16

// FindSerial tries every available serial port until one answers an identity
// query (platform independant hopefully). If config is nil, DefaultSerialConfig is used.
func FindSerial(config *serial.Mode, cfg *Config) (*SerialConnection, *IdentityReport, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, nil, err
	}
	if config == nil {
		config = DefaultSerialConfig
	}
	usb := 0
	for _, v := range ports {
		if strings.Contains(v, "ttyUSB") {
			usb++
		}
	}
	if usb > 1 {
		log.Printf("found %d ttyUSB devices, you might want to pick one", usb)
	}

	for _, v := range ports {
		port, err := serial.Open(v, config)
		if err != nil {
			log.Printf("couldn't open \"%s\": %s", v, err)
			continue
		}
		log.Printf("trying \"%s\"...", v)
		conn := NewSerial(port, config, v)
		conn.Start()
		// a temporary brake to test connection
		id, err := NewBrake(conn, cfg).Identify(probeRetries)
		if err == nil {
			log.Printf("connected to \"%s\" (brake %s)", v, id.Serial)
			return conn, id, nil
		}
		conn.Close()
	}
	return nil, nil, ErrNoSerialPortFound
}

func OpenPortName(name string, config *serial.Mode) (*SerialConnection, error) {
	if config == nil {
		config = DefaultSerialConfig
	}
	port, err := serial.Open(name, config)
	if err != nil {
		return nil, err
	}
	return NewSerial(port, config, name), nil
}
