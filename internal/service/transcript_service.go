package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"medicsense-client/internal/constant"
	"medicsense-client/internal/model"
	"medicsense-client/internal/pkg/logger"
	"medicsense-client/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ErrClearNotConfirmed guards the destructive transcript wipe: the caller
// must pass an explicit confirmation, mirroring the confirm dialog in a UI.
var ErrClearNotConfirmed = errors.New("transcript clear requires confirmation")

// Entry is the in-memory view of one transcript row.
type Entry struct {
	Id        uuid.UUID
	Role      string
	Content   string
	Metadata  model.EntryMetadata
	Timestamp time.Time
}

// TranscriptService is the append-only conversation log. Entries land in
// completion order: a slow image analysis finishing after a fast chat turn
// is appended after it, which is what a user reading bottom-up expects.
// All mutation funnels through Append/Clear so the ordering invariant and
// the persistence side effect cannot be bypassed.
type TranscriptService struct {
	repo   contract.TranscriptRepository
	logger logger.ILogger

	mu      sync.Mutex
	entries []Entry
}

func NewTranscriptService(ctx context.Context, repo contract.TranscriptRepository, log logger.ILogger) (*TranscriptService, error) {
	s := &TranscriptService{repo: repo, logger: log}

	rows, err := repo.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	for _, row := range rows {
		s.entries = append(s.entries, rowToEntry(row))
	}

	// A fresh store gets the welcome entry so the conversation never
	// renders empty.
	if len(s.entries) == 0 {
		if err := s.seedWelcome(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append assigns id and timestamp when absent, persists the entry and keeps
// the in-memory view in sync. O(1) amortized; insertion order is the only
// order.
func (s *TranscriptService) Append(ctx context.Context, entry Entry) (Entry, error) {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	row, err := entryToRow(entry)
	if err != nil {
		return Entry{}, err
	}

	// Persist and append under one lock so the stored order and the
	// in-memory order cannot diverge under concurrent appends.
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Append(ctx, row); err != nil {
		return Entry{}, fmt.Errorf("persist transcript entry: %w", err)
	}
	s.entries = append(s.entries, entry)
	return entry, nil
}

// Clear wipes the log and reseeds the single welcome entry. confirmed must
// be true; accidental triggers are a bug in the caller, not a soft failure.
func (s *TranscriptService) Clear(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrClearNotConfirmed
	}
	s.mu.Lock()
	if err := s.repo.DeleteAll(ctx); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clear transcript: %w", err)
	}
	s.entries = nil
	s.mu.Unlock()

	if err := s.seedWelcome(ctx); err != nil {
		return err
	}
	s.logger.Info("Transcript", "transcript cleared", nil)
	return nil
}

// List returns the entries in insertion order. The slice is a copy; callers
// cannot reorder the log through it.
func (s *TranscriptService) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ExportAsText renders the transcript deterministically: role label
// upper-cased, local timestamp, content, entries separated by a fixed
// delimiter. Structured metadata is deliberately omitted.
func (s *TranscriptService) ExportAsText(userID string) string {
	entries := s.List()
	var b strings.Builder

	b.WriteString("MedicSense AI - Chat Export\n")
	b.WriteString("Generated: " + time.Now().Format("2006-01-02 15:04:05") + "\n")
	b.WriteString("User ID: " + userID + "\n\n")
	b.WriteString("================================\n\n")

	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString(fmt.Sprintf("[%s] %s\n%s\n",
			strings.ToUpper(entry.Role),
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Content,
		))
	}

	b.WriteString("\n================================\n")
	b.WriteString("This chat log is for your records only.\n")
	b.WriteString("Always consult with healthcare professionals for medical advice.\n")
	return b.String()
}

func (s *TranscriptService) seedWelcome(ctx context.Context) error {
	_, err := s.Append(ctx, Entry{
		Role:     constant.TranscriptRoleAssistant,
		Content:  constant.WelcomeMessage,
		Metadata: model.EntryMetadata{Context: constant.ContextGeneral},
	})
	return err
}

func rowToEntry(row *model.TranscriptEntry) Entry {
	entry := Entry{
		Id:        row.Id,
		Role:      row.Role,
		Content:   row.Content,
		Timestamp: row.CreatedAt,
	}
	if len(row.Metadata) > 0 {
		// A metadata row that fails to decode keeps its content; the
		// attachment is display sugar, not the record itself.
		_ = json.Unmarshal(row.Metadata, &entry.Metadata)
	}
	return entry
}

func entryToRow(entry Entry) (*model.TranscriptEntry, error) {
	meta, err := json.Marshal(entry.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode entry metadata: %w", err)
	}
	return &model.TranscriptEntry{
		Id:        entry.Id,
		Role:      entry.Role,
		Content:   entry.Content,
		Metadata:  datatypes.JSON(meta),
		CreatedAt: entry.Timestamp,
	}, nil
}
