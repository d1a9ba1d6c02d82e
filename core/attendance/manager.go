package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/dccampos/secretaria/core"
)

// Display is the observable state of one running check-in display:
// the token, the scannable payload and the countdown.
type Display struct {
	Live        bool   `json:"live"`
	Token       string `json:"token,omitempty"`
	CheckInURL  string `json:"checkin_url,omitempty"`
	SecondsLeft int    `json:"seconds_left"`
	Err         string `json:"error,omitempty"` // diagnostic text; branch on Live, not on this
}

// Manager owns the check-in token lifecycle for one display instance.
//
// It always tries to discover an existing live token before minting its own,
// so that several open displays converge on a single code. Two displays can
// still race past each other's discovery and mint overlapping tokens; both are
// individually valid and the next heartbeat's discovery (newest-first) pulls
// every display back onto one of them. That race is tolerated on purpose —
// the store offers no cross-instance arbitration and this code must not
// pretend otherwise.
type Manager struct {
	cfg    core.AttendanceConfig
	repo   Repository
	logger core.Logger

	makeToken func() (string, error) // mockable
	nowFunc   func() time.Time       // mockable

	mu          sync.Mutex
	tok         Token
	active      bool
	secondsLeft int
	lastErr     error
	syncing     bool // a discover/mint round is in flight
	stopped     bool

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewManager(cfg core.AttendanceConfig, repo Repository, logger core.Logger) *Manager {
	return &Manager{
		cfg:       cfg,
		repo:      repo,
		logger:    logger,
		makeToken: MakeToken,
		nowFunc:   time.Now,
		stop:      make(chan struct{}),
	}
}

// Start mounts the display: an immediate discovery round, then a 1-second
// countdown tick and an independent heartbeat that rediscovers near expiry.
func (m *Manager) Start(ctx context.Context) {
	m.wg.Add(2)
	go func() {
		defer m.wg.Done()
		m.refresh(ctx)
	}()
	go m.run(ctx)
}

func (m *Manager) run(ctx context.Context) {
	defer m.wg.Done()

	countdown := time.NewTicker(time.Second)
	defer countdown.Stop()
	heartbeat := time.NewTicker(m.cfg.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stop:
			return
		case <-countdown.C:
			m.tick()
		case <-heartbeat.C:
			if m.needsRefresh() {
				m.wg.Add(1)
				go func() {
					defer m.wg.Done()
					m.refresh(ctx)
				}()
			}
		}
	}
}

// Stop unmounts the display: both tickers are cancelled and results of calls
// still in flight are discarded instead of mutating a dead instance.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		m.stopped = true
		m.mu.Unlock()
		close(m.stop)
	})
	m.wg.Wait()
}

// Snapshot returns the current display state.
func (m *Manager) Snapshot() Display {
	m.mu.Lock()
	defer m.mu.Unlock()

	var d Display
	if m.active {
		d.Live = true
		d.Token = m.tok.Value
		d.CheckInURL = CheckInURL(m.cfg.PortalBaseURL, m.tok.Value)
		d.SecondsLeft = m.secondsLeft
	}
	if m.lastErr != nil {
		d.Err = m.lastErr.Error()
	}
	return d
}

// needsRefresh decides whether a heartbeat tick should run a discovery round.
// A round already in flight suppresses the tick (a slow store call must not
// pile up identical calls behind itself).
func (m *Manager) needsRefresh() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.syncing {
		return false
	}
	if !m.active {
		return true // initial discovery or an earlier mint failed; retry
	}
	return m.secondsLeft <= int(m.cfg.LowWaterMark/time.Second)
}

// refresh is one discovery round: adopt a live token if the store has one,
// otherwise mint. Discovery-before-mint is the device that keeps concurrent
// displays on a single code.
func (m *Manager) refresh(ctx context.Context) {
	m.mu.Lock()
	if m.syncing || m.stopped {
		m.mu.Unlock()
		return
	}
	m.syncing = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.syncing = false
		m.mu.Unlock()
	}()

	now := m.nowFunc()
	discoveriesTotal.Inc()
	tok, err := m.repo.LatestLive(ctx, now)
	switch {
	case err == nil:
		// A hit that is just the token we are already showing, rediscovered
		// because it is about to die, is not worth adopting; rotate instead.
		// Anything else (first discovery, or a sibling display's fresher
		// token) is adopted as-is.
		if !m.holdsDying(tok) {
			adoptionsTotal.Inc()
			m.adopt(tok)
			return
		}
	case errors.Cause(err) == ErrNoLiveToken:
	default:
		// Store trouble on discovery degrades to a mint attempt.
		discoveryFailuresTotal.Inc()
		m.logger.Warn("attendance token discovery failed; attempting mint", err)
	}
	m.mint(ctx, now)
}

func (m *Manager) mint(ctx context.Context, now time.Time) {
	value, err := m.makeToken()
	if err != nil {
		m.fail(errors.Wrap(err, "generating attendance token"))
		return
	}

	tok := Token{
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.Window + m.cfg.GuardBand),
	}
	created, err := m.repo.CreateToken(ctx, tok)
	if err != nil {
		mintFailuresTotal.Inc()
		m.fail(errors.Wrap(err, "persisting attendance token"))
		return
	}
	mintsTotal.Inc()
	m.adopt(created)
}

// holdsDying reports whether tok is the token already on display with its
// countdown at or below the low water mark.
func (m *Manager) holdsDying(tok Token) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active && m.tok.Value == tok.Value && m.secondsLeft <= int(m.cfg.LowWaterMark/time.Second)
}

func (m *Manager) adopt(tok Token) {
	now := m.nowFunc()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped { // result landed after teardown
		return
	}
	m.tok = tok
	m.active = true
	m.lastErr = nil
	m.secondsLeft = secondsUntil(tok.ExpiresAt, now)
}

func (m *Manager) fail(err error) {
	m.logger.Error("attendance token mint failed", err)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.lastErr = err
}

// tick advances the countdown. secondsLeft is recomputed from ExpiresAt and
// only ever moves down, flooring at 0.
func (m *Manager) tick() {
	now := m.nowFunc()
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return
	}
	if left := secondsUntil(m.tok.ExpiresAt, now); left < m.secondsLeft {
		m.secondsLeft = left
	}
}

func secondsUntil(t, now time.Time) int {
	left := int(t.Sub(now) / time.Second)
	if left < 0 {
		return 0
	}
	return left
}
