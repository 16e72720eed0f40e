package engine

type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNeutral  Mood = "neutral"
	MoodNegative Mood = "negative"
)

func (m Mood) IsValid() bool {
	switch m {
	case MoodPositive, MoodNeutral, MoodNegative:
		return true
	default:
		return false
	}
}

type StressType string

const (
	StressFatigue   StressType = "fatigue"
	StressAnxiety   StressType = "anxiety"
	StressOverwhelm StressType = "overwhelm"
	StressGeneral   StressType = "general"
)

func (s StressType) IsValid() bool {
	switch s {
	case StressFatigue, StressAnxiety, StressOverwhelm, StressGeneral:
		return true
	default:
		return false
	}
}

type MusicPreference string

const (
	MusicNature    MusicPreference = "nature"
	MusicClassical MusicPreference = "classical"
	MusicAmbient   MusicPreference = "ambient"
	MusicNone      MusicPreference = "none"
)

func (m MusicPreference) IsValid() bool {
	switch m {
	case MusicNature, MusicClassical, MusicAmbient, MusicNone:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// NoteColor is the calm-wall palette.
type NoteColor string

const (
	ColorBlue   NoteColor = "blue"
	ColorGreen  NoteColor = "green"
	ColorYellow NoteColor = "yellow"
	ColorPurple NoteColor = "purple"
	ColorPink   NoteColor = "pink"
)

func (c NoteColor) IsValid() bool {
	switch c {
	case ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorPink:
		return true
	default:
		return false
	}
}

type NoteCategory string

const (
	CategoryGratitud NoteCategory = "gratitud"
	CategoryLogro    NoteCategory = "logro"
	CategorySoltar   NoteCategory = "soltar"
	CategoryPositivo NoteCategory = "positivo"
	CategoryLibre    NoteCategory = "libre"
)

func (c NoteCategory) IsValid() bool {
	switch c {
	case CategoryGratitud, CategoryLogro, CategorySoltar, CategoryPositivo, CategoryLibre:
		return true
	default:
		return false
	}
}

// Emoji is the wall glyph for a category.
func (c NoteCategory) Emoji() string {
	switch c {
	case CategoryGratitud:
		return "💚"
	case CategoryLogro:
		return "⭐"
	case CategorySoltar:
		return "🕊️"
	case CategoryPositivo:
		return "🌸"
	default:
		return "💭"
	}
}
