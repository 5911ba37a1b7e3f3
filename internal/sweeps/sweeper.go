package sweeps

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jazyl-tech/JZL-BookingService/pkg/metrics"
)

// Имена sweep-джоб для логов и метрик
const (
	sweepReminders    = "reminders"
	sweepReviews      = "review_requests"
	sweepAutoComplete = "auto_complete"
	sweepNoShow       = "no_show"
)

const jobTimeout = 5 * time.Minute

// Config cron-расписания sweep-джоб
type Config struct {
	RemindersSpec    string // по умолчанию каждые 15 минут
	ReviewsSpec      string // по умолчанию каждые 30 минут
	AutoCompleteSpec string // по умолчанию каждый час
	NoShowSpec       string // по умолчанию каждые 30 минут
}

// Stats результат одного прогона sweep-джобы
type Stats struct {
	Processed int
	Failed    int
}

// Sweeper владеет cron-планировщиком фоновых джоб жизненного цикла
// бронирований. Каждая джоба идемпотентна: повторный прогон по тем же
// данным не производит лишних переходов.
type Sweeper struct {
	bookingRepo  BookingRepository
	notifyClient NotifyServiceClient
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger

	cron *cron.Cron
}

// NewSweeper создает новый экземпляр Sweeper
func NewSweeper(
	bookingRepo BookingRepository,
	notifyClient NotifyServiceClient,
	m *metrics.Metrics,
	logger Logger,
) *Sweeper {
	return &Sweeper{
		bookingRepo:  bookingRepo,
		notifyClient: notifyClient,
		timeProvider: &RealTimeProvider{},
		metrics:      m,
		logger:       logger,
		cron:         cron.New(),
	}
}

// Start регистрирует джобы по расписаниям из конфига и запускает планировщик
func (s *Sweeper) Start(cfg Config) error {
	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) (Stats, error)
	}{
		{sweepReminders, cfg.RemindersSpec, s.RunReminders},
		{sweepReviews, cfg.ReviewsSpec, s.RunReviewRequests},
		{sweepAutoComplete, cfg.AutoCompleteSpec, s.RunAutoComplete},
		{sweepNoShow, cfg.NoShowSpec, s.RunNoShow},
	}

	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() {
			s.runJob(job.name, job.run)
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("Sweeper: started with schedules reminders=%q, reviews=%q, autoComplete=%q, noShow=%q",
		cfg.RemindersSpec, cfg.ReviewsSpec, cfg.AutoCompleteSpec, cfg.NoShowSpec)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущих джоб
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Sweeper: stopped")
}

// recordNotification учитывает результат отправки уведомления в метриках
func (s *Sweeper) recordNotification(kind string, ok bool) {
	if s.metrics == nil {
		return
	}
	if ok {
		s.metrics.NotificationsSent.WithLabelValues(kind).Inc()
		return
	}
	s.metrics.NotificationsFailed.WithLabelValues(kind).Inc()
}

// runJob оборачивает прогон джобы: таймаут, метрики, логирование статистики
func (s *Sweeper) runJob(name string, run func(ctx context.Context) (Stats, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	started := time.Now()
	stats, err := run(ctx)
	elapsed := time.Since(started)

	if s.metrics != nil {
		s.metrics.SweepDuration.WithLabelValues(name).Observe(elapsed.Seconds())
		s.metrics.SweepItemsProcessed.WithLabelValues(name).Add(float64(stats.Processed))
		s.metrics.SweepItemsFailed.WithLabelValues(name).Add(float64(stats.Failed))
	}

	if err != nil {
		if s.metrics != nil {
			s.metrics.SweepRunsTotal.WithLabelValues(name, "error").Inc()
		}
		s.logger.Error("Sweeper: %s run failed after %s: %v", name, elapsed, err)
		return
	}

	if s.metrics != nil {
		s.metrics.SweepRunsTotal.WithLabelValues(name, "ok").Inc()
	}
	s.logger.Info("Sweeper: %s run finished in %s, processed=%d, failed=%d",
		name, elapsed, stats.Processed, stats.Failed)
}
