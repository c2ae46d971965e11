package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"medicsense-client/internal/config"
	"medicsense-client/internal/dto"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/pkg/api"
)

// RefresherService polls the backend on fixed intervals: unread
// notifications every refresh cycle and the medication schedule on a slower
// one. A tick that finds the previous run still in flight is skipped rather
// than queued, and Pause/Resume stops the polling entirely while the client
// is in the background.
type RefresherService struct {
	client      *api.Client
	session     *SessionService
	medications *MedicationService
	logger      logger.ILogger
	cfg         config.RefreshConfig

	paused    atomic.Bool
	notifBusy atomic.Bool
	medsBusy  atomic.Bool

	mu          sync.RWMutex
	unreadCount int
	latest      []dto.BackendNotificationDTO

	stopOnce sync.Once
	stopCh   chan struct{}
	doneWg   sync.WaitGroup
}

func NewRefresherService(
	client *api.Client,
	session *SessionService,
	medications *MedicationService,
	cfg config.RefreshConfig,
	log logger.ILogger,
) *RefresherService {
	return &RefresherService{
		client:      client,
		session:     session,
		medications: medications,
		cfg:         cfg,
		logger:      log,
		stopCh:      make(chan struct{}),
	}
}

// Start launches the polling loops. Both run an immediate first pass so the
// UI has data before the first interval elapses.
func (r *RefresherService) Start(ctx context.Context) {
	r.doneWg.Add(2)
	go r.loop(ctx, r.cfg.NotificationInterval, &r.notifBusy, r.refreshNotifications)
	go r.loop(ctx, r.cfg.MedicationInterval, &r.medsBusy, r.refreshMedications)
}

// Stop tears down the loops and waits for in-flight work to finish.
func (r *RefresherService) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
	r.doneWg.Wait()
}

// Pause suspends polling without tearing down the loops. Used when the
// client loses focus.
func (r *RefresherService) Pause() {
	r.paused.Store(true)
}

// Resume re-enables polling and runs a catch-up pass for both feeds, so a
// client coming back from the background sees fresh data immediately.
func (r *RefresherService) Resume(ctx context.Context) {
	if !r.paused.CompareAndSwap(true, false) {
		return
	}
	r.runGuarded(ctx, &r.notifBusy, r.refreshNotifications)
	r.runGuarded(ctx, &r.medsBusy, r.refreshMedications)
}

// UnreadCount returns the unread total from the most recent poll.
func (r *RefresherService) UnreadCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.unreadCount
}

// LatestNotifications returns a copy of the most recently fetched list.
func (r *RefresherService) LatestNotifications() []dto.BackendNotificationDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dto.BackendNotificationDTO, len(r.latest))
	copy(out, r.latest)
	return out
}

func (r *RefresherService) loop(ctx context.Context, interval time.Duration, busy *atomic.Bool, task func(context.Context) error) {
	defer r.doneWg.Done()

	r.runGuarded(ctx, busy, task)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.paused.Load() {
				continue
			}
			r.runGuarded(ctx, busy, task)
		}
	}
}

// runGuarded skips the task when a prior run for the same endpoint is still
// in flight, so a slow backend never stacks requests. Each loop carries its
// own flag, so a hung notifications fetch cannot suppress medication ticks.
func (r *RefresherService) runGuarded(ctx context.Context, busy *atomic.Bool, task func(context.Context) error) {
	if !busy.CompareAndSwap(false, true) {
		r.logger.Debug("Refresher", "previous refresh still running, skipping tick", nil)
		return
	}
	defer busy.Store(false)

	if err := task(ctx); err != nil {
		// Background refreshes fail quietly; the next tick retries.
		r.logger.Debug("Refresher", "refresh failed", map[string]interface{}{"error": err.Error()})
	}
}

func (r *RefresherService) refreshNotifications(ctx context.Context) error {
	userID, err := r.session.EffectiveUserID(ctx)
	if err != nil {
		return err
	}

	resp, err := r.client.ListNotifications(ctx, userID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.latest = resp.Data
	r.unreadCount = resp.UnreadCount()
	r.mu.Unlock()
	return nil
}

func (r *RefresherService) refreshMedications(ctx context.Context) error {
	return r.medications.RefreshSchedule(ctx)
}
