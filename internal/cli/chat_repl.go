package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"medicsense-client/internal/service"
)

// ChatREPL is the interactive conversation loop. Slash commands mirror the
// buttons the web client has around its chat box.
type ChatREPL struct {
	chat       *service.ChatService
	transcript *service.TranscriptService
	session    *service.SessionService
	refresher  *service.RefresherService
	renderer   *Renderer
	in         io.Reader
	out        io.Writer
}

func NewChatREPL(
	chat *service.ChatService,
	transcript *service.TranscriptService,
	session *service.SessionService,
	refresher *service.RefresherService,
	renderer *Renderer,
	in io.Reader,
	out io.Writer,
) *ChatREPL {
	return &ChatREPL{
		chat:       chat,
		transcript: transcript,
		session:    session,
		refresher:  refresher,
		renderer:   renderer,
		in:         in,
		out:        out,
	}
}

// Run replays the stored conversation, then reads messages until /quit or
// EOF. Send errors are already surfaced as notices so the loop just keeps
// going.
func (r *ChatREPL) Run(ctx context.Context) error {
	r.renderer.RenderTranscript(r.transcript.List())
	r.renderer.RenderUnreadBadge(r.refresher.UnreadCount())
	fmt.Fprintln(r.out, "Type a message, or /help for commands.")

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			done, err := r.command(ctx, line)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			continue
		}

		entries := len(r.transcript.List())
		clearTyping := r.renderer.ShowTyping("MedicSense is typing...")
		_, err := r.chat.Send(ctx, line)
		clearTyping()
		if err != nil && errors.Is(err, context.Canceled) {
			return err
		}
		for _, entry := range r.transcript.List()[entries:] {
			r.renderer.RenderEntry(entry)
		}
	}
}

func (r *ChatREPL) command(ctx context.Context, line string) (done bool, err error) {
	switch strings.Fields(line)[0] {
	case "/quit", "/exit":
		return true, nil
	case "/clear":
		if err := r.transcript.Clear(ctx, true); err != nil {
			return false, err
		}
		r.renderer.RenderTranscript(r.transcript.List())
	case "/export":
		userID, err := r.session.EffectiveUserID(ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, r.transcript.ExportAsText(userID))
	case "/emergency":
		entries := len(r.transcript.List())
		clearTyping := r.renderer.ShowTyping("MedicSense is typing...")
		_, err := r.chat.SendEmergency(ctx)
		clearTyping()
		if err != nil && errors.Is(err, context.Canceled) {
			return false, err
		}
		for _, entry := range r.transcript.List()[entries:] {
			r.renderer.RenderEntry(entry)
		}
	case "/new":
		if err := r.session.ResetSession(ctx); err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, "Started a new chat session.")
	case "/help":
		fmt.Fprintln(r.out, "Commands: /clear  /export  /new  /emergency  /quit")
	default:
		fmt.Fprintf(r.out, "Unknown command %q. Try /help.\n", line)
	}
	return false, nil
}
