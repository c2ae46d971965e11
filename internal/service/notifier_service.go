package service

import (
	"errors"
	"sort"
	"time"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/pkg/api"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	// Ordinary notices linger just long enough to be read.
	noticeTTL = 3500 * time.Millisecond
	// Emergency alerts stay up much longer and render distinctly.
	emergencyTTL = 10 * time.Second

	noticePurgeInterval = 1 * time.Second
)

// Notice is one transient UI element. Each notice owns its own expiry;
// stacking notices never share countdown state.
type Notice struct {
	Id        string
	Message   string
	Kind      string
	Emergency bool
	CreatedAt time.Time
}

// NoticeSink receives notices as they are shown. The terminal renderer
// implements it; tests substitute a recorder.
type NoticeSink interface {
	Render(notice Notice)
}

// NotifierService is the notification/alert presenter. Active notices live
// in a TTL cache and are garbage-collected on expiry; repeated emergency
// signals intentionally produce repeated alerts, one per detection event.
type NotifierService struct {
	active *cache.Cache
	sink   NoticeSink
	logger logger.ILogger
}

func NewNotifierService(sink NoticeSink, log logger.ILogger) *NotifierService {
	return &NotifierService{
		active: cache.New(noticeTTL, noticePurgeInterval),
		sink:   sink,
		logger: log,
	}
}

func (n *NotifierService) Show(message, kind string) {
	n.publish(Notice{
		Id:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}, noticeTTL)
}

func (n *NotifierService) ShowEmergency(message string) {
	n.publish(Notice{
		Id:        uuid.NewString(),
		Message:   message,
		Kind:      constant.NotificationKindError,
		Emergency: true,
		CreatedAt: time.Now(),
	}, emergencyTTL)
}

// NotifyError is the single error-to-notification mapping: every dispatcher
// failure funnels through here so no failure path is silently swallowed.
func (n *NotifierService) NotifyError(err error) {
	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		n.Show(validation.Message, constant.NotificationKindWarning)
	case errors.Is(err, api.ErrTimeout):
		n.Show("The request timed out. Please try again.", constant.NotificationKindError)
	case errors.Is(err, api.ErrNetworkUnavailable):
		n.Show("Network error. Please check if the backend server is running.", constant.NotificationKindError)
	case api.IsMalformed(err):
		n.Show("Received an unexpected response from the server.", constant.NotificationKindError)
	default:
		n.Show("Something went wrong. Please try again.", constant.NotificationKindError)
	}
	n.logger.Error("Notifier", "operation failed", map[string]interface{}{"error": err.Error()})
}

// Active returns the not-yet-expired notices, oldest first.
func (n *NotifierService) Active() []Notice {
	items := n.active.Items()
	notices := make([]Notice, 0, len(items))
	for _, item := range items {
		notices = append(notices, item.Object.(Notice))
	}
	sort.Slice(notices, func(i, j int) bool {
		return notices[i].CreatedAt.Before(notices[j].CreatedAt)
	})
	return notices
}

func (n *NotifierService) publish(notice Notice, ttl time.Duration) {
	n.active.Set(notice.Id, notice, ttl)
	if n.sink != nil {
		n.sink.Render(notice)
	}
}
