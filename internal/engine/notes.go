package engine

import (
	"context"
	"strings"
	"unicode/utf8"
)

const maxNoteLen = 500

type AddNoteInput struct {
	Text     string
	Color    NoteColor
	Category NoteCategory
}

// AddNote prepends a calm-wall note and grants calm points.
func (s *Service) AddNote(ctx context.Context, in AddNoteInput) (CalmNote, *GrantResult, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return CalmNote{}, nil, invalid("text", "is required")
	}
	if utf8.RuneCountInString(text) > maxNoteLen {
		return CalmNote{}, nil, invalid("text", "too long (max %d)", maxNoteLen)
	}
	if !in.Color.IsValid() {
		return CalmNote{}, nil, invalid("color", "unknown value %q", in.Color)
	}
	if !in.Category.IsValid() {
		return CalmNote{}, nil, invalid("category", "unknown value %q", in.Category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := CalmNote{
		ID:       s.newID(),
		Text:     text,
		Color:    in.Color,
		Category: in.Category,
		Date:     s.now().UTC(),
	}
	s.notes = append([]CalmNote{note}, s.notes...)
	s.saveLocked(ctx, SlotNotes, s.notes)

	grant, err := s.grantLocked(ctx, RewardCalmNote)
	if err != nil {
		return note, nil, err
	}
	return note, grant, nil
}

// AddJournalEntry stores a private journal entry, newest first.
func (s *Service) AddJournalEntry(ctx context.Context, text string) (JournalEntry, *GrantResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return JournalEntry{}, nil, invalid("text", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := JournalEntry{ID: s.newID(), Text: text, Date: s.now().UTC()}
	s.journal = append([]JournalEntry{entry}, s.journal...)
	s.saveLocked(ctx, SlotJournal, s.journal)

	grant, err := s.grantLocked(ctx, RewardJournalEntry)
	if err != nil {
		return entry, nil, err
	}
	return entry, grant, nil
}

type ChatReply struct {
	Category string
	Text     string
	Grant    *GrantResult
}

// SendChatMessage answers a support-chat message with a canned reply.
func (s *Service) SendChatMessage(ctx context.Context, message string, r RandSource) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, invalid("message", "is required")
	}
	cat := ChatCategory(message)
	text, err := PickVariant(cat, r)
	if err != nil {
		return nil, err
	}
	grant, err := s.Grant(ctx, RewardChatMessage)
	if err != nil {
		return nil, err
	}
	return &ChatReply{Category: cat, Text: text, Grant: grant}, nil
}
