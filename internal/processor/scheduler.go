package processor

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// TickLease is the lease name serializing ticks across instances.
const TickLease = "processor:tick"

// ErrTickInProgress indicates that another tick holds the lease.
var ErrTickInProgress = errors.New("tick already in progress")

// Ticker runs one processing tick.
//
//go:generate mockgen -source scheduler.go -destination scheduler_mock.go -package processor
type Ticker interface {
	RunTick(ctx context.Context, asOf time.Time) (domain.TickReport, error)
}

// Locker acquires and releases named leases.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// SchedulerConfig configures Scheduler.
type SchedulerConfig struct {
	// Schedule is a cron expression or descriptor such as @hourly.
	Schedule   string
	RunOnStart bool
	LockTTL    time.Duration
}

// Scheduler runs ticks periodically, at most one at a time across instances.
type Scheduler struct {
	ticker Ticker
	locker Locker
	config SchedulerConfig
	logger zerolog.Logger
	cron   *cron.Cron
	now    func() time.Time
}

// NewScheduler returns Scheduler.
func NewScheduler(t Ticker, lk Locker, logger zerolog.Logger, config SchedulerConfig) *Scheduler {
	if config.LockTTL <= 0 {
		config.LockTTL = 5 * time.Minute
	}

	return &Scheduler{
		ticker: t,
		locker: lk,
		config: config,
		logger: logger.With().Str("component", "processor").Logger(),
		cron:   cron.New(cron.WithLocation(time.UTC)),
		now:    time.Now,
	}
}

// Run runs one tick for asOf while holding the tick lease.
func (s *Scheduler) Run(ctx context.Context, asOf time.Time) (domain.TickReport, error) {
	l := zerolog.Ctx(ctx)

	ok, err := s.locker.Acquire(ctx, TickLease, s.config.LockTTL)
	if err != nil {
		l.Error().Err(err).Msg("acquire tick lease")
		return domain.TickReport{}, err
	}

	if !ok {
		return domain.TickReport{}, ErrTickInProgress
	}

	defer func() {
		// The lease expires on its own if release fails.
		if err := s.locker.Release(context.WithoutCancel(ctx), TickLease); err != nil {
			l.Warn().Err(err).Msg("release tick lease")
		}
	}()

	return s.ticker.RunTick(ctx, asOf)
}

func (s *Scheduler) runScheduled() {
	ctx := s.logger.WithContext(context.Background())

	report, err := s.Run(ctx, s.now())
	if errors.Is(err, ErrTickInProgress) {
		s.logger.Info().Msg("tick skipped, lease held elsewhere")
		return
	}

	if err != nil {
		s.logger.Error().Err(err).Msg("tick failed")
		return
	}

	s.logger.Info().
		Time("as_of", report.AsOf).
		Int("settled", len(report.Settled)).
		Int("failed", len(report.Failed)).
		Msg("scheduled tick done")
}

// Start registers the schedule and starts running ticks in the background.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.config.Schedule, s.runScheduled); err != nil {
		return err
	}

	s.logger.Info().Str("schedule", s.config.Schedule).Msg("scheduler started")

	s.cron.Start()

	if s.config.RunOnStart {
		go s.runScheduled()
	}

	return nil
}

// Stop stops scheduling and returns a context done when running ticks finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
