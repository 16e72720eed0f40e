package engine

import "strings"

func normalize(input string) string {
	return strings.TrimSpace(strings.ToLower(input))
}

func ParseMood(input string) (Mood, error) {
	m := Mood(normalize(input))
	if !m.IsValid() {
		return "", invalid("mood", "unknown mood %q", input)
	}
	return m, nil
}

func ParseStressType(input string) (StressType, error) {
	s := StressType(normalize(input))
	if !s.IsValid() {
		return "", invalid("stressType", "unknown stress type %q", input)
	}
	return s, nil
}

func ParseMusicPreference(input string) (MusicPreference, error) {
	m := MusicPreference(normalize(input))
	if !m.IsValid() {
		return "", invalid("musicPreference", "unknown music preference %q", input)
	}
	return m, nil
}

// ParsePriority accepts the English tags and the short forms h/m/l.
func ParsePriority(input string) (Priority, error) {
	switch s := normalize(input); s {
	case "h":
		return PriorityHigh, nil
	case "m":
		return PriorityMedium, nil
	case "l":
		return PriorityLow, nil
	default:
		p := Priority(s)
		if !p.IsValid() {
			return "", invalid("priority", "unknown priority %q", input)
		}
		return p, nil
	}
}

func ParseNoteColor(input string) (NoteColor, error) {
	c := NoteColor(normalize(input))
	if !c.IsValid() {
		return "", invalid("color", "unknown color %q", input)
	}
	return c, nil
}

func ParseNoteCategory(input string) (NoteCategory, error) {
	c := NoteCategory(normalize(input))
	if !c.IsValid() {
		return "", invalid("category", "unknown category %q", input)
	}
	return c, nil
}
