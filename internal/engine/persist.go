package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Slot keys, one per entity kind.
const (
	SlotProfile = "stressless-user"
	SlotTasks   = "stressless-tasks"
	SlotMoods   = "stressless-moods"
	SlotNotes   = "stressless-notes"
	SlotSound   = "stressless-sound"
	SlotJournal = "stressless-journal"
)

// Load rehydrates every store. A missing slot yields the default value; a
// malformed slot is logged and replaced by the default. Only storage failures
// are returned.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := loadSlot(ctx, s, SlotProfile, DefaultProfile(), validateProfile)
	if err != nil {
		return err
	}
	tasks, err := loadSlot(ctx, s, SlotTasks, []Task(nil), validateTasks)
	if err != nil {
		return err
	}
	moods, err := loadSlot(ctx, s, SlotMoods, []MoodEntry(nil), validateMoods)
	if err != nil {
		return err
	}
	notes, err := loadSlot(ctx, s, SlotNotes, []CalmNote(nil), validateNotes)
	if err != nil {
		return err
	}
	journal, err := loadSlot(ctx, s, SlotJournal, []JournalEntry(nil), nil)
	if err != nil {
		return err
	}
	sound, err := loadSlot(ctx, s, SlotSound, true, nil)
	if err != nil {
		return err
	}

	profile.Level = LevelForXP(profile.XP)
	profile.Garden = profile.Garden.normalized()
	if len(moods) > MaxMoodEntries {
		moods = moods[:MaxMoodEntries]
	}

	s.profile = profile
	s.tasks = tasks
	s.moods = moods
	s.notes = notes
	s.journal = journal
	s.sound = sound

	keys, err := s.slots.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return s.seedLocked(ctx)
	}
	return nil
}

// seedLocked writes every store in one transaction so a first run leaves a
// complete set of slots behind.
func (s *Service) seedLocked(ctx context.Context) error {
	values := map[string]any{
		SlotProfile: s.profile,
		SlotTasks:   s.tasks,
		SlotMoods:   s.moods,
		SlotNotes:   s.notes,
		SlotJournal: s.journal,
		SlotSound:   s.sound,
	}
	encoded := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		encoded[key] = data
	}
	if err := s.slots.PutMany(ctx, encoded); err != nil {
		return err
	}
	s.log.Info("created default profile")
	return nil
}

func loadSlot[T any](ctx context.Context, s *Service, key string, def T, validate func(T) error) (T, error) {
	slot, err := s.slots.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if slot == nil {
		return def, nil
	}

	var v T
	if err := json.Unmarshal(slot.Value, &v); err != nil {
		s.log.Warn("slot is malformed, using default",
			zap.String("slot", key),
			zap.Error(fmt.Errorf("%w: %v", ErrCorruptState, err)))
		return def, nil
	}
	if validate != nil {
		if err := validate(v); err != nil {
			s.log.Warn("slot holds invalid data, using default",
				zap.String("slot", key),
				zap.Error(fmt.Errorf("%w: %v", ErrCorruptState, err)))
			return def, nil
		}
	}
	return v, nil
}

// saveLocked writes the full value of one store. Local memory is the source of
// truth, so a failed write is logged rather than returned.
func (s *Service) saveLocked(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Error("encode slot", zap.String("slot", key), zap.Error(err))
		return
	}
	if err := s.slots.Put(ctx, key, data); err != nil {
		s.log.Error("write slot", zap.String("slot", key), zap.Error(err))
	}
}

func validateProfile(p UserProfile) error {
	if !p.Mood.IsValid() {
		return fmt.Errorf("unknown mood %q", p.Mood)
	}
	if !p.StressType.IsValid() {
		return fmt.Errorf("unknown stress type %q", p.StressType)
	}
	if !p.MusicPreference.IsValid() {
		return fmt.Errorf("unknown music preference %q", p.MusicPreference)
	}
	if p.XP < 0 || p.CalmPoints < 0 || p.StreakDays < 0 {
		return fmt.Errorf("negative counter")
	}
	return nil
}

func validateTasks(tasks []Task) error {
	seen := map[string]bool{}
	for _, t := range tasks {
		if t.ID == "" || seen[t.ID] {
			return fmt.Errorf("missing or duplicate task id %q", t.ID)
		}
		seen[t.ID] = true
		if !t.Priority.IsValid() {
			return fmt.Errorf("task %s: unknown priority %q", t.ID, t.Priority)
		}
	}
	return nil
}

func validateMoods(entries []MoodEntry) error {
	for i, e := range entries {
		if e.Mood < 1 || e.Mood > 10 || e.StressLevel < 1 || e.StressLevel > 10 {
			return fmt.Errorf("mood entry %d out of range", i)
		}
	}
	return nil
}

func validateNotes(notes []CalmNote) error {
	for _, n := range notes {
		if !n.Color.IsValid() {
			return fmt.Errorf("note %s: unknown color %q", n.ID, n.Color)
		}
		if !n.Category.IsValid() {
			return fmt.Errorf("note %s: unknown category %q", n.ID, n.Category)
		}
	}
	return nil
}
