package brake

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/rkjdid/util"
)

var ErrNoIdentity = errors.New("brake didn't identify")

//go:generate stringer -type=Phase
type Phase int

const (
	AwaitingIdentity Phase = Phase(iota)
	Running          Phase = Phase(iota)
)

//go:generate stringer -type=State
type State int

const (
	Disconnected State = State(iota)
	Connected    State = State(iota)
	WriteError   State = State(iota)
	ReadError    State = State(iota)
)

// Transport is the serial link to the brake. ReadUpTo returns whatever
// arrived within timeout, an empty read is not an error.
type Transport interface {
	Write(b []byte) error
	ReadUpTo(max int, timeout time.Duration) ([]byte, error)
}

// LoopState is everything the control loop remembers between iterations.
type LoopState struct {
	Phase         Phase
	CadenceSensor byte // echoed back in run commands
	Identity      *IdentityReport
}

// Apply updates st with a received response.
func Apply(st LoopState, res Response) LoopState {
	switch st.Phase {
	case AwaitingIdentity:
		if res.Kind == Identity {
			st.Phase = Running
			st.Identity = res.Identity
		}
	case Running:
		if res.Kind == Telemetry {
			st.CadenceSensor = res.Telemetry.CadenceSensor & 0x1
		}
	}
	return st
}

// Next returns the payload to send in st.
func Next(st LoopState, t Targets) ([]byte, error) {
	if st.Phase == AwaitingIdentity {
		return BuildIdentityQuery(), nil
	}
	return BuildRunCommand(t, st.CadenceSensor)
}

// Step folds the last response into st and returns the next payload to send.
// The first step of a session takes a zero Response.
func Step(st LoopState, t Targets, last Response) (LoopState, []byte, error) {
	st = Apply(st, last)
	p, err := Next(st, t)
	return st, p, err
}

type Config struct {
	Targets     Targets
	ReadTimeout util.Duration // wait for an answer up to ReadTimeout
	Interval    util.Duration // sleep interval between each iteration
	MaxRead     int           // bytes
}

var DefaultConfig = Config{
	Targets: Targets{
		Mode:        Ergo,
		TargetWatt:  10,
		TargetSpeed: 20,
		Weight:      80,
		Calibration: DefaultCalibration,
	},
	ReadTimeout: util.Duration(time.Millisecond * 100),
	Interval:    util.Duration(time.Millisecond * 500),
	MaxRead:     64,
}

// TargetPolicy decides targets for the next iteration.
type TargetPolicy interface {
	Update(t Targets) Targets
}

type Brake struct {
	sync.Mutex
	Conn    Transport
	config  *Config
	targets Targets
	loop    LoopState
	state   State
	stop    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewBrake uses DefaultConfig if cfg is nil. Unset ReadTimeout, Interval
// or MaxRead fall back to their default.
func NewBrake(conn Transport, cfg *Config) *Brake {
	c := DefaultConfig
	if cfg != nil {
		c = *cfg
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultConfig.ReadTimeout
	}
	if c.Interval <= 0 {
		c.Interval = DefaultConfig.Interval
	}
	if c.MaxRead <= 0 {
		c.MaxRead = DefaultConfig.MaxRead
	}
	return &Brake{
		Conn:    conn,
		config:  &c,
		targets: c.Targets,
		state:   Disconnected,
		stop:    make(chan struct{}),
	}
}

func (b *Brake) Config() Config {
	return *b.config
}

func (b *Brake) Targets() Targets {
	b.Lock()
	defer b.Unlock()
	return b.targets
}

// SetTargets takes effect on the next iteration.
func (b *Brake) SetTargets(t Targets) {
	b.Lock()
	b.targets = t
	b.Unlock()
}

func (b *Brake) Phase() Phase {
	b.Lock()
	defer b.Unlock()
	return b.loop.Phase
}

func (b *Brake) State() State {
	b.Lock()
	defer b.Unlock()
	return b.state
}

// Identity is nil until the brake identified.
func (b *Brake) Identity() *IdentityReport {
	b.Lock()
	defer b.Unlock()
	return b.loop.Identity
}

// Iterate does one request / response cycle. Whatever the brake answers,
// or doesn't, ends up in the returned Event. An error is returned only
// if nothing could be sent.
func (b *Brake) Iterate() (Event, error) {
	b.Lock()
	defer b.Unlock()

	t0 := time.Now()
	prev := b.loop
	payload, err := Next(prev, b.targets)
	if err != nil {
		return Event{}, err
	}

	err = b.Conn.Write(Marshal(payload))
	if err != nil {
		b.state = WriteError
		return Event{}, fmt.Errorf("write: %w", err)
	}

	raw, err := b.Conn.ReadUpTo(b.config.MaxRead, time.Duration(b.config.ReadTimeout))
	if err != nil {
		b.state = ReadError
	} else {
		b.state = Connected
	}

	res := Decode(raw)
	if err != nil {
		res.Err = errors.Join(res.Err, fmt.Errorf("read: %w", err))
	}
	b.loop = Apply(prev, res)

	ev := Event{
		Time:    t0,
		Type:    EventDiagnostic,
		Phase:   b.loop.Phase,
		State:   b.state,
		Targets: b.targets,
		Sent:    payload,
		Raw:     raw,
		Payload: res.Raw,
		Err:     res.Err,
	}
	switch {
	case res.Kind == Identity && prev.Phase == AwaitingIdentity:
		ev.Type, ev.Identity = EventIdentity, res.Identity
	case res.Kind == Telemetry && prev.Phase == Running:
		ev.Type, ev.Telemetry = EventTelemetry, res.Telemetry
	}
	return ev, nil
}

const (
	identifyPoll = time.Millisecond * 250
)

// Identify sends identity queries every identifyPoll until the brake answers,
// or returns ErrNoIdentity after retries tries. Run doesn't need it: it keeps
// asking for as long as it takes.
func (b *Brake) Identify(retries int) (*IdentityReport, error) {
	for i := 0; i < retries; i++ {
		if i > 0 {
			time.Sleep(identifyPoll)
		}
		ev, err := b.Iterate()
		if err != nil {
			return nil, err
		}
		if ev.Type == EventIdentity {
			return ev.Identity, nil
		}
		if id := b.Identity(); id != nil {
			return id, nil
		}
	}
	return nil, ErrNoIdentity
}

// Start launches Run in its own routine. The returned channel
// gets Run's result once it returns.
func (b *Brake) Start(policy TargetPolicy, handler func(Event)) <-chan error {
	res := make(chan error, 1)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		res <- b.Run(policy, handler)
	}()
	return res
}

// Run loops Iterate every Interval, passing each Event to handler and
// letting policy update targets in between. It returns nil after Stop(),
// or the first error that can't be fixed by retrying.
func (b *Brake) Run(policy TargetPolicy, handler func(Event)) error {
	for {
		ev, err := b.Iterate()
		if errors.Is(err, ErrInvalidMode) {
			return err
		}
		if err != nil {
			log.Println("in b.Iterate:", err)
		} else if handler != nil {
			handler(ev)
		}

		if policy != nil {
			b.SetTargets(policy.Update(b.Targets()))
		}

		select {
		case <-b.stop:
			return nil
		case <-time.After(time.Duration(b.config.Interval)):
		}
	}
}

// Stop notifies Run() to stop, and waits until a loop launched with Start returns.
func (b *Brake) Stop() {
	b.once.Do(func() {
		log.Println("stopping brake control loop...")
		close(b.stop)
	})
	b.wg.Wait()
}

// Close closes the current transport if it can be closed.
func (b *Brake) Close() error {
	b.Lock()
	defer b.Unlock()
	return closeTransport(b.Conn)
}

func closeTransport(conn Transport) error {
	if c, ok := conn.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
