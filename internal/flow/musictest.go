package flow

import (
	"context"
	"fmt"

	"stressless/internal/engine"
)

// Neutral is the catch-all answer: the sample did not appeal either way.
const Neutral = "neutral"

type MusicSample struct {
	Name     string
	Prompt   string
	Category engine.MusicPreference
}

var MusicSamples = []MusicSample{
	{Name: "Sonidos Naturales", Prompt: "🌊 Escucha: Olas suaves del océano...", Category: engine.MusicNature},
	{Name: "Música Clásica", Prompt: "🎼 Escucha: Melodía de piano suave...", Category: engine.MusicClassical},
	{Name: "Ambiental", Prompt: "🌌 Escucha: Texturas etéreas flotantes...", Category: engine.MusicAmbient},
}

type MusicTestResult struct {
	Preference engine.MusicPreference
	Grant      *engine.GrantResult
}

// MusicTest walks through the samples and stores the most chosen category as
// the music preference.
type MusicTest struct {
	rewarder Rewarder
	prefs    PreferenceSetter

	step    int
	choices []string
	result  *MusicTestResult
}

func NewMusicTest(r Rewarder, prefs PreferenceSetter) *MusicTest {
	return &MusicTest{rewarder: r, prefs: prefs}
}

// Current returns the sample awaiting an answer; ok is false once done.
func (m *MusicTest) Current() (sample MusicSample, step int, ok bool) {
	if m.result != nil {
		return MusicSample{}, m.step, false
	}
	return MusicSamples[m.step], m.step, true
}

func (m *MusicTest) Done() bool               { return m.result != nil }
func (m *MusicTest) Result() *MusicTestResult { return m.result }

// Choose records the answer for the current sample: its category or Neutral.
// The last answer completes the test.
func (m *MusicTest) Choose(ctx context.Context, choice string) (*MusicTestResult, error) {
	if m.result != nil {
		return nil, engine.InputError{Field: "choice", Reason: "test already completed"}
	}
	sample := MusicSamples[m.step]
	if choice != string(sample.Category) && choice != Neutral {
		return nil, engine.InputError{
			Field:  "choice",
			Reason: fmt.Sprintf("expected %q or %q (got %q)", sample.Category, Neutral, choice),
		}
	}

	if m.step < len(MusicSamples)-1 {
		m.choices = append(m.choices, choice)
		m.step++
		return nil, nil
	}

	choices := append(append([]string(nil), m.choices...), choice)
	pref := Plurality(choices)
	if err := m.prefs.SetMusicPreference(ctx, pref); err != nil {
		return nil, err
	}
	grant, err := m.rewarder.Grant(ctx, engine.RewardMusicTest)
	if err != nil {
		return nil, err
	}
	m.choices = choices
	m.result = &MusicTestResult{Preference: pref, Grant: grant}
	return m.result, nil
}

// Repeat starts over from the first sample.
func (m *MusicTest) Repeat() {
	m.step = 0
	m.choices = nil
	m.result = nil
}

// Plurality returns the most chosen category, breaking ties by the first
// category to reach the maximum. Neutral answers are not counted; with no
// category answers the result is none.
func Plurality(choices []string) engine.MusicPreference {
	counts := map[string]int{}
	var order []string
	for _, c := range choices {
		if c == Neutral {
			continue
		}
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}
	best, bestN := engine.MusicNone, 0
	for _, c := range order {
		if counts[c] > bestN {
			best, bestN = engine.MusicPreference(c), counts[c]
		}
	}
	return best
}
