package engine

import (
	"context"
	"strings"
)

// MaxMoodEntries bounds the check-in history; the oldest entry is evicted.
const MaxMoodEntries = 30

type CheckInInput struct {
	Mood        int
	StressLevel int
	Notes       string
	// Date defaults to today.
	Date string
}

// RecordCheckIn prepends a mood entry, refreshes the streak and grants the
// check-in reward.
func (s *Service) RecordCheckIn(ctx context.Context, in CheckInInput) (MoodEntry, *GrantResult, error) {
	if in.Mood < 1 || in.Mood > 10 {
		return MoodEntry{}, nil, invalid("mood", "must be between 1 and 10 (got %d)", in.Mood)
	}
	if in.StressLevel < 1 || in.StressLevel > 10 {
		return MoodEntry{}, nil, invalid("stressLevel", "must be between 1 and 10 (got %d)", in.StressLevel)
	}
	date := strings.TrimSpace(in.Date)
	if date != "" {
		var err error
		if date, err = parseDueDate(date); err != nil {
			return MoodEntry{}, nil, invalid("date", "expected YYYY-MM-DD (got %q)", in.Date)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if date == "" {
		date = s.today()
	}
	entry := MoodEntry{
		Date:        date,
		Mood:        in.Mood,
		StressLevel: in.StressLevel,
		Notes:       strings.TrimSpace(in.Notes),
	}
	s.moods = prependBounded(s.moods, entry, MaxMoodEntries)
	s.saveLocked(ctx, SlotMoods, s.moods)

	s.profile.StreakDays = StreakDays(s.moods)

	grant, err := s.grantLocked(ctx, RewardMoodCheckIn)
	if err != nil {
		return entry, nil, err
	}
	return entry, grant, nil
}

func prependBounded[T any](list []T, v T, limit int) []T {
	out := make([]T, 0, min(len(list)+1, limit))
	out = append(out, v)
	for _, item := range list {
		if len(out) == limit {
			break
		}
		out = append(out, item)
	}
	return out
}
