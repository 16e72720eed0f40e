package engine

import (
	"context"
)

// Achievement is a badge shown on the progress screen.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	XP          int // display value only, never granted
	Earned      bool
}

// AchievementChecker decides which badges are earned from the profile, the
// task store and the reward ledger.
type AchievementChecker struct {
	profile UserProfile
	tasks   []Task
	counts  map[string]int
}

func NewAchievementChecker(profile UserProfile, tasks []Task, ledger map[string]int) *AchievementChecker {
	return &AchievementChecker{profile: profile, tasks: tasks, counts: ledger}
}

func (c *AchievementChecker) Achievements() []Achievement {
	return []Achievement{
		{ID: "first_profile", Name: "Primer Perfil", Description: "Completaste tu perfil personalizado", Icon: "🌟", XP: 50,
			Earned: c.profile.Name != ""},
		{ID: "assessment", Name: "Evaluación Completa", Description: "Realizaste el test de estrés", Icon: "🧠", XP: 30,
			Earned: c.counts[string(SourceStressAssessment)] > 0},
		{ID: "first_meditation", Name: "Primera Meditación", Description: "Completaste tu primer ejercicio de relajación", Icon: "🧘", XP: 20,
			Earned: c.counts[string(SourceMeditation)] > 0},
		{ID: "organizer", Name: "Organizador", Description: "Creaste y completaste 5 tareas", Icon: "📋", XP: 75,
			Earned: c.completedTasks() >= 5},
		{ID: "streak", Name: "Constancia", Description: "7 días consecutivos usando la app", Icon: "🔥", XP: 100,
			Earned: c.profile.StreakDays >= 7},
		{ID: "level_3", Name: "Nivel Superior", Description: "Alcanzaste el nivel 3", Icon: "🚀", XP: 150,
			Earned: c.profile.Level >= 3},
	}
}

func (c *AchievementChecker) completedTasks() int {
	n := 0
	for _, t := range c.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// EarnedCount counts the earned badges in list.
func EarnedCount(list []Achievement) int {
	n := 0
	for _, a := range list {
		if a.Earned {
			n++
		}
	}
	return n
}

// Achievements evaluates the badges against the current state.
func (s *Service) Achievements(ctx context.Context) ([]Achievement, error) {
	counts, err := s.rewards.CountBySource(ctx)
	if err != nil {
		return nil, err
	}
	return NewAchievementChecker(s.Profile(), s.Tasks(), counts).Achievements(), nil
}
