package engine

import "time"

// DateLayout is the calendar-date format used for due dates and check-ins.
const DateLayout = "2006-01-02"

// DefaultAvatar is the glyph given to a fresh profile.
const DefaultAvatar = "🧑‍🎓"

type UserProfile struct {
	Name            string          `json:"name"`
	Pseudonym       string          `json:"pseudonym"`
	Email           string          `json:"email,omitempty"`
	Avatar          string          `json:"avatar"`
	Mood            Mood            `json:"mood"`
	StressType      StressType      `json:"stressType"`
	MusicPreference MusicPreference `json:"musicPreference"`
	Level           int             `json:"level"`
	XP              int             `json:"xp"`
	StreakDays      int             `json:"streakDays"`
	CalmPoints      int             `json:"calmPoints"`
	Garden          GardenState     `json:"garden"`

	// Subscription fields are mirrored from the remote account and never computed here.
	SubscriptionPlan   string `json:"subscriptionPlan"`
	SubscriptionStatus string `json:"subscriptionStatus"`
}

// DefaultProfile is the profile created on first run.
func DefaultProfile() UserProfile {
	return UserProfile{
		Avatar:             DefaultAvatar,
		Mood:               MoodNeutral,
		StressType:         StressGeneral,
		MusicPreference:    MusicNone,
		Level:              1,
		Garden:             NewGardenState(),
		SubscriptionPlan:   "free",
		SubscriptionStatus: "active",
	}
}

type Task struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Subject       string   `json:"subject"`
	DueDate       string   `json:"dueDate"`
	Priority      Priority `json:"priority"`
	EstimatedTime int      `json:"estimatedTime"`
	Completed     bool     `json:"completed"`
}

type MoodEntry struct {
	Date        string `json:"date"`
	Mood        int    `json:"mood"`
	StressLevel int    `json:"stressLevel"`
	Notes       string `json:"notes,omitempty"`
}

type CalmNote struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Color    NoteColor    `json:"color"`
	Category NoteCategory `json:"category"`
	Date     time.Time    `json:"date"`
}

type JournalEntry struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}
