package brake

import (
	"log"
	"sync"
	"time"

	"github.com/rkjdid/util"
)

// Dialer opens a fresh, started transport to a brake.
type Dialer func() (Transport, error)

// Watcher replaces the brake's transport once an exchange failed,
// e.g. after the usb adapter was unplugged.
type Watcher struct {
	brake  *Brake
	dial   Dialer
	cfg    *WatcherConfig
	lost   bool // transport closed, waiting for dial to succeed
	stopCh chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

type WatcherConfig struct {
	ConnPollRate util.Duration
}

var DefaultWatcherConfig = WatcherConfig{
	ConnPollRate: util.Duration(time.Second),
}

func NewWatcher(b *Brake, dial Dialer, cfg *WatcherConfig) *Watcher {
	if cfg == nil {
		cfg = &DefaultWatcherConfig
	}
	return &Watcher{
		brake:  b,
		dial:   dial,
		cfg:    cfg,
		stopCh: make(chan struct{}),
	}
}

// Check looks at the brake state once. On WriteError or ReadError it closes
// the transport and dials a new one, the brake then starts over from
// identification since it may have been power cycled. It reports whether
// the transport was replaced.
func (w *Watcher) Check() (bool, error) {
	b := w.brake
	b.Lock()
	defer b.Unlock()

	if !w.lost {
		switch b.state {
		case WriteError, ReadError:
		default:
			return false, nil
		}
		log.Printf("closing brake connection (%s)", b.state)
		err := closeTransport(b.Conn)
		if err != nil {
			log.Println("in closeTransport:", err)
		}
		w.lost = true
	}

	conn, err := w.dial()
	if err != nil {
		return false, err
	}
	b.Conn = conn
	b.state = Disconnected
	b.loop = LoopState{}
	w.lost = false
	log.Println("brake connection restored")
	return true, nil
}

// WatchConn runs Check every ConnPollRate until Stop.
func (w *Watcher) WatchConn() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		var last string
		for {
			select {
			case <-time.After(time.Duration(w.cfg.ConnPollRate)):
			case <-w.stopCh:
				return
			}
			_, err := w.Check()
			if err == nil {
				last = ""
			} else if err.Error() != last {
				// log once per kind of failure, dialing is retried quietly
				last = err.Error()
				log.Println("in w.Check:", err)
			}
		}
	}()
}

func (w *Watcher) Stop() {
	w.once.Do(func() {
		log.Println("stopping conn watcher")
		close(w.stopCh)
	})
	w.wg.Wait()
}
