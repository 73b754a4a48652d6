package notifications

import (
	"context"
	"sync"

	"github.com/angelmondragon/kitcart/pkg/enums"
	"github.com/angelmondragon/kitcart/pkg/logger"
)

// Notice is a transient, user-facing message about a cart change.
type Notice struct {
	Message  string               `json:"message"`
	Severity enums.NoticeSeverity `json:"severity"`
}

// Success, Warning, Info and Error build notices of the matching severity.
func Success(msg string) Notice { return Notice{Message: msg, Severity: enums.NoticeSeveritySuccess} }
func Warning(msg string) Notice { return Notice{Message: msg, Severity: enums.NoticeSeverityWarning} }
func Info(msg string) Notice    { return Notice{Message: msg, Severity: enums.NoticeSeverityInfo} }
func Error(msg string) Notice   { return Notice{Message: msg, Severity: enums.NoticeSeverityError} }

// Notifier delivers notices for a cart session. Display concerns belong to the receiver.
type Notifier interface {
	Notify(ctx context.Context, sessionID string, notice Notice)
}

// LogNotifier writes every notice to the structured log.
type LogNotifier struct {
	logg *logger.Logger
}

func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) Notify(ctx context.Context, sessionID string, notice Notice) {
	if n == nil || n.logg == nil {
		return
	}
	ctx = n.logg.WithFields(ctx, map[string]any{
		"session_id": sessionID,
		"severity":   notice.Severity.String(),
		"notice":     notice.Message,
	})
	switch notice.Severity {
	case enums.NoticeSeverityError:
		n.logg.Error(ctx, "cart.notice", nil)
	case enums.NoticeSeverityWarning:
		n.logg.Warn(ctx, "cart.notice")
	default:
		n.logg.Info(ctx, "cart.notice")
	}
}

// Multi fans a notice out to several notifiers in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, sessionID string, notice Notice) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, sessionID, notice)
		}
	}
}

// Recorder keeps every notice in memory; safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Recorded
}

// Recorded is one notice captured by a Recorder.
type Recorded struct {
	SessionID string
	Notice    Notice
}

func (r *Recorder) Notify(_ context.Context, sessionID string, notice Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Recorded{SessionID: sessionID, Notice: notice})
}

// Entries returns a copy of the captured notices.
func (r *Recorder) Entries() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.entries))
	copy(out, r.entries)
	return out
}

// Last returns the most recent notice, if any.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Notice{}, false
	}
	return r.entries[len(r.entries)-1].Notice, true
}
