package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/service"
)

var (
	infoStyle      = color.New(color.FgCyan)
	successStyle   = color.New(color.FgGreen)
	warningStyle   = color.New(color.FgYellow)
	errorStyle     = color.New(color.FgRed)
	emergencyStyle = color.New(color.FgWhite, color.BgRed, color.Bold)
	assistantStyle = color.New(color.FgHiBlue)
	userStyle      = color.New(color.FgHiWhite, color.Bold)
	dimStyle       = color.New(color.Faint)
)

// Renderer writes notices and transcript entries to the terminal. It is the
// console counterpart of the toast stack: notices print immediately and the
// emergency banner is unmissable.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render implements service.NoticeSink.
func (r *Renderer) Render(notice service.Notice) {
	if notice.Emergency {
		fmt.Fprintln(r.out)
		emergencyStyle.Fprintf(r.out, " %s ", notice.Message)
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out)
		return
	}

	var style *color.Color
	var badge string
	switch notice.Kind {
	case constant.NotificationKindSuccess:
		style, badge = successStyle, "✓"
	case constant.NotificationKindWarning:
		style, badge = warningStyle, "!"
	case constant.NotificationKindError:
		style, badge = errorStyle, "✗"
	default:
		style, badge = infoStyle, "i"
	}
	style.Fprintf(r.out, "[%s] %s\n", badge, notice.Message)
}

// RenderEntry prints one transcript entry as a chat bubble.
func (r *Renderer) RenderEntry(entry service.Entry) {
	ts := entry.Timestamp.Format("15:04")
	if entry.Role == constant.TranscriptRoleUser {
		userStyle.Fprint(r.out, "You")
		dimStyle.Fprintf(r.out, " · %s\n", ts)
	} else {
		assistantStyle.Fprint(r.out, "MedicSense")
		dimStyle.Fprintf(r.out, " · %s\n", ts)
	}
	for _, line := range strings.Split(entry.Content, "\n") {
		fmt.Fprintf(r.out, "  %s\n", line)
	}
	if sev := constant.Severity(entry.Metadata.Severity); sev > constant.SeverityNone {
		r.renderSeverityBadge(sev)
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) renderSeverityBadge(sev constant.Severity) {
	label := fmt.Sprintf("  severity: %s", sev.Label())
	switch {
	case sev.IsEmergency():
		errorStyle.Fprintln(r.out, label)
	case sev >= constant.SeverityModerate:
		warningStyle.Fprintln(r.out, label)
	default:
		dimStyle.Fprintln(r.out, label)
	}
}

// ShowTyping prints a transient status line while a slow call is in flight
// and returns a function that erases it once the reply or error arrives.
func (r *Renderer) ShowTyping(label string) func() {
	dimStyle.Fprint(r.out, label)
	return func() {
		fmt.Fprintf(r.out, "\r%s\r", strings.Repeat(" ", len(label)))
	}
}

// RenderTranscript prints the whole conversation in order.
func (r *Renderer) RenderTranscript(entries []service.Entry) {
	for _, entry := range entries {
		r.RenderEntry(entry)
	}
}

// RenderUnreadBadge prints the navbar-style unread counter when non-zero.
func (r *Renderer) RenderUnreadBadge(count int) {
	if count <= 0 {
		return
	}
	warningStyle.Fprintf(r.out, "🔔 %d unread notification(s)\n", count)
}
