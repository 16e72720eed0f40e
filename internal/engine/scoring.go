package engine

import (
	"math"
	"sort"
	"time"
)

// StressTier is the label of a stress classification.
type StressTier string

const (
	StressLow      StressTier = "Bajo"
	StressModerate StressTier = "Moderado"
	StressHigh     StressTier = "Alto"
	StressVeryHigh StressTier = "Muy Alto"
)

type StressResult struct {
	Tier        StressTier
	Average     float64
	Color       string
	Description string
}

const (
	minAnswer = 1
	maxAnswer = 5
)

// ClassifyStress averages the assessment answers and maps the mean onto a tier.
func ClassifyStress(answers []int) (StressResult, error) {
	if len(answers) == 0 {
		return StressResult{}, invalid("answers", "at least one answer is required")
	}
	total := 0
	for i, a := range answers {
		if a < minAnswer || a > maxAnswer {
			return StressResult{}, invalid("answers", "answer %d out of range 1-5 (got %d)", i, a)
		}
		total += a
	}
	avg := float64(total) / float64(len(answers))

	switch {
	case avg <= 2:
		return StressResult{Tier: StressLow, Average: avg, Color: "green", Description: "Tu nivel de estrés es manejable"}, nil
	case avg <= 3:
		return StressResult{Tier: StressModerate, Average: avg, Color: "yellow", Description: "Podrías beneficiarte de algunas técnicas de manejo del estrés"}, nil
	case avg <= 4:
		return StressResult{Tier: StressHigh, Average: avg, Color: "orange", Description: "Es importante que implementes estrategias de reducción del estrés"}, nil
	default:
		return StressResult{Tier: StressVeryHigh, Average: avg, Color: "red", Description: "Te recomendamos buscar apoyo profesional y usar nuestras herramientas diariamente"}, nil
	}
}

// categoryRecommendations is indexed by assessment question.
var categoryRecommendations = []string{
	"📚 Usa técnicas de planificación como el método Pomodoro",
	"🧘 Practica ejercicios de respiración antes de los exámenes",
	"⏰ Implementa técnicas anti-procrastinación",
	"🎯 Trabaja en establecer expectativas realistas",
	"📅 Mejora tu organización y gestión del tiempo",
	"💪 Incorpora ejercicio regular y técnicas de relajación",
}

// RecommendationThreshold is the answer value from which a category recommendation applies.
const RecommendationThreshold = 3

// Recommendations returns, in question order, the recommendation of every
// category answered at or above the threshold.
func Recommendations(answers []int) []string {
	var out []string
	for i, a := range answers {
		if i >= len(categoryRecommendations) {
			break
		}
		if a >= RecommendationThreshold {
			out = append(out, categoryRecommendations[i])
		}
	}
	return out
}

const (
	rollingWindow  = 7
	neutralAverage = 5
)

// Averages is the rounded mean mood and stress of recent check-ins. When
// Samples is zero both values hold the neutral midpoint and are not a measurement.
type Averages struct {
	Mood    int
	Stress  int
	Samples int
}

// RollingAverages averages the newest (at most 7) entries. Entries are newest first.
func RollingAverages(entries []MoodEntry) Averages {
	if len(entries) > rollingWindow {
		entries = entries[:rollingWindow]
	}
	if len(entries) == 0 {
		return Averages{Mood: neutralAverage, Stress: neutralAverage}
	}
	mood, stress := 0, 0
	for _, e := range entries {
		mood += e.Mood
		stress += e.StressLevel
	}
	n := float64(len(entries))
	return Averages{
		Mood:    roundHalfUp(float64(mood) / n),
		Stress:  roundHalfUp(float64(stress) / n),
		Samples: len(entries),
	}
}

// CompletionRate returns the rounded percentage of completed tasks, 0 for no tasks.
func CompletionRate(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return roundHalfUp(float64(done) / float64(len(tasks)) * 100)
}

// StreakDays counts consecutive calendar days with at least one check-in,
// ending at the newest check-in date. Unparseable dates are ignored.
func StreakDays(entries []MoodEntry) int {
	seen := map[time.Time]bool{}
	var days []time.Time
	for _, e := range entries {
		d, err := time.Parse(DateLayout, e.Date)
		if err != nil || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			break
		}
		streak++
	}
	return streak
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
