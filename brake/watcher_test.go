package brake

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rkjdid/util"
)

// closingTransport is a fakeTransport that records Close.
type closingTransport struct {
	fakeTransport
	closed bool
}

func (c *closingTransport) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

// testDialer hands out fresh transports answering with identity,
// or fails while err is set.
type testDialer struct {
	mu    sync.Mutex
	err   error
	dials []*fakeTransport
}

func (d *testDialer) dial() (Transport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	tr := &fakeTransport{answers: [][]byte{frameOf("030C000065090000BAC47718080C0000C470")}}
	d.dials = append(d.dials, tr)
	return tr, nil
}

func (d *testDialer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dials)
}

func identifiedBrake(t *testing.T) (*Brake, *closingTransport) {
	t.Helper()
	tr := &closingTransport{fakeTransport: fakeTransport{
		answers: [][]byte{frameOf("030C000065090000BAC47718080C0000C470")},
	}}
	cfg := DefaultConfig
	cfg.Interval = util.Duration(time.Millisecond)
	b := NewBrake(tr, &cfg)
	if _, err := b.Identify(1); err != nil {
		t.Fatalf("Identify() error: %v", err)
	}
	return b, tr
}

func TestWatcher_Check(t *testing.T) {
	b, tr := identifiedBrake(t)
	d := &testDialer{}
	w := NewWatcher(b, d.dial, nil)

	ok, err := w.Check()
	if ok || err != nil {
		t.Fatalf("Check() on a healthy brake = %v, %v", ok, err)
	}
	if d.count() != 0 {
		t.Fatalf("dialed %d times, want 0", d.count())
	}

	// adapter unplugged
	tr.mu.Lock()
	tr.writeErr = errors.New("input/output error")
	tr.mu.Unlock()
	if _, err := b.Iterate(); err == nil {
		t.Fatal("Iterate() error = nil, want a write error")
	}
	if b.State() != WriteError {
		t.Fatalf("state = %s, want WriteError", b.State())
	}

	// first attempt fails, the old transport is closed anyway
	d.err = errors.New("no such device")
	ok, err = w.Check()
	if ok || err == nil {
		t.Fatalf("Check() = %v, %v, want a dial error", ok, err)
	}
	if !tr.closed {
		t.Error("broken transport wasn't closed")
	}

	d.err = nil
	ok, err = w.Check()
	if !ok || err != nil {
		t.Fatalf("Check() = %v, %v, want a new transport", ok, err)
	}
	if b.Conn != Transport(d.dials[0]) {
		t.Error("brake still uses the broken transport")
	}
	if b.Phase() != AwaitingIdentity || b.Identity() != nil {
		t.Errorf("phase = %s, identity = %v, want a reset loop", b.Phase(), b.Identity())
	}

	// the brake identifies again over the new transport
	ev, err := b.Iterate()
	if err != nil {
		t.Fatalf("Iterate() error: %v", err)
	}
	if ev.Type != EventIdentity {
		t.Errorf("event = %s (%v), want Identity", ev.Type, ev.Err)
	}
	if p := d.dials[0].sent(t, 0); p[0] != CmdVersion {
		t.Errorf("first command on new transport = % x, want identity query", p)
	}
}

func TestWatcher_ReadError(t *testing.T) {
	b, tr := identifiedBrake(t)
	tr.mu.Lock()
	tr.readErr = errors.New("read failed")
	tr.mu.Unlock()
	if _, err := b.Iterate(); err != nil {
		t.Fatalf("Iterate() error: %v", err)
	}

	d := &testDialer{}
	ok, err := NewWatcher(b, d.dial, nil).Check()
	if !ok || err != nil {
		t.Fatalf("Check() = %v, %v, want a new transport", ok, err)
	}
	if !tr.closed {
		t.Error("broken transport wasn't closed")
	}
}

func TestWatcher_WatchConn(t *testing.T) {
	b, tr := identifiedBrake(t)
	tr.mu.Lock()
	tr.writeErr = errors.New("input/output error")
	tr.mu.Unlock()

	d := &testDialer{}
	w := NewWatcher(b, d.dial, &WatcherConfig{ConnPollRate: util.Duration(time.Millisecond)})
	w.WatchConn()
	done := b.Start(nil, nil)

	deadline := time.After(time.Second * 5)
	// count first: Check holds the brake lock from dial until the loop reset
	for d.count() == 0 || b.Identity() == nil {
		select {
		case <-deadline:
			t.Fatalf("brake didn't recover (dials: %d, state: %s)", d.count(), b.State())
		case <-time.After(time.Millisecond * 5):
		}
	}
	b.Stop()
	w.Stop()
	w.Stop()
	if err := <-done; err != nil {
		t.Errorf("Run() error: %v", err)
	}
}
