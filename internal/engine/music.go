package engine

import (
	"context"
	"fmt"
)

type Track struct {
	ID       string
	Name     string
	Duration string
	Feeling  string
	Category MusicPreference
}

type MusicCategory struct {
	ID          MusicPreference
	Name        string
	Description string
	Icon        string
	Tracks      []Track
}

var MusicCatalog = []MusicCategory{
	{
		ID:          MusicNature,
		Name:        "Sonidos de la Naturaleza",
		Description: "Lluvia, océano, bosque, pájaros",
		Icon:        "🌿",
		Tracks: []Track{
			{ID: "rain", Name: "Lluvia Suave", Duration: "10:00", Feeling: "calma", Category: MusicNature},
			{ID: "ocean", Name: "Olas del Océano", Duration: "15:00", Feeling: "relajación", Category: MusicNature},
			{ID: "forest", Name: "Bosque Tranquilo", Duration: "12:00", Feeling: "concentración", Category: MusicNature},
			{ID: "birds", Name: "Canto de Pájaros", Duration: "8:00", Feeling: "energía", Category: MusicNature},
		},
	},
	{
		ID:          MusicClassical,
		Name:        "Música Clásica",
		Description: "Composiciones relajantes y armoniosas",
		Icon:        "🎼",
		Tracks: []Track{
			{ID: "debussy", Name: "Clair de Lune - Debussy", Duration: "5:30", Feeling: "serenidad", Category: MusicClassical},
			{ID: "bach", Name: "Air on G String - Bach", Duration: "6:00", Feeling: "paz", Category: MusicClassical},
			{ID: "chopin", Name: "Nocturno Op.9 - Chopin", Duration: "4:30", Feeling: "contemplación", Category: MusicClassical},
			{ID: "satie", Name: "Gymnopédie No.1 - Satie", Duration: "3:45", Feeling: "minimalismo", Category: MusicClassical},
		},
	},
	{
		ID:          MusicAmbient,
		Name:        "Música Ambiental",
		Description: "Sonidos etéreos y atmosféricos",
		Icon:        "🌌",
		Tracks: []Track{
			{ID: "space", Name: "Deriva Espacial", Duration: "20:00", Feeling: "meditación", Category: MusicAmbient},
			{ID: "crystal", Name: "Cuencos Tibetanos", Duration: "15:00", Feeling: "sanación", Category: MusicAmbient},
			{ID: "drone", Name: "Ondas Binaurales", Duration: "30:00", Feeling: "concentración", Category: MusicAmbient},
			{ID: "pad", Name: "Texturas Suaves", Duration: "18:00", Feeling: "relajación", Category: MusicAmbient},
		},
	},
}

func FindTrack(id string) (Track, bool) {
	for _, c := range MusicCatalog {
		for _, t := range c.Tracks {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Track{}, false
}

type TimeRecommendation struct {
	Title       string
	Description string
	Icon        string
	TrackIDs    []string
}

// RecommendForHour picks the playlist for an hour of the day (0-23).
func RecommendForHour(hour int) TimeRecommendation {
	switch {
	case hour >= 6 && hour < 12:
		return TimeRecommendation{
			Title:       "Energía Matutina",
			Description: "Sonidos que te ayudan a despertar suavemente",
			Icon:        "☀️",
			TrackIDs:    []string{"birds", "chopin", "crystal"},
		}
	case hour >= 12 && hour < 18:
		return TimeRecommendation{
			Title:       "Concentración Diurna",
			Description: "Música para mantener el foco en tus estudios",
			Icon:        "🧠",
			TrackIDs:    []string{"forest", "bach", "drone"},
		}
	default:
		return TimeRecommendation{
			Title:       "Relajación Nocturna",
			Description: "Sonidos para liberar el estrés del día",
			Icon:        "🌙",
			TrackIDs:    []string{"rain", "debussy", "space"},
		}
	}
}

type PlayResult struct {
	Track  Track
	Played bool // false when sound is muted
	Grant  *GrantResult
}

// PlayTrack plays a catalog track. Nothing plays and nothing is granted while
// sound is disabled.
func (s *Service) PlayTrack(ctx context.Context, id string) (*PlayResult, error) {
	t, ok := FindTrack(id)
	if !ok {
		return nil, fmt.Errorf("track %q: %w", id, ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := &PlayResult{Track: t}
	if !s.sound {
		return res, nil
	}
	grant, err := s.grantLocked(ctx, RewardMusicTrack)
	if err != nil {
		return res, err
	}
	res.Played = true
	res.Grant = grant
	return res, nil
}
