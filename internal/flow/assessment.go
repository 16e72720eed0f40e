package flow

import (
	"context"
	"fmt"

	"stressless/internal/engine"
)

type AnswerOption struct {
	Text  string
	Value int
}

type Question struct {
	Category string
	Text     string
	Options  []AnswerOption
}

func scale(texts ...string) []AnswerOption {
	out := make([]AnswerOption, len(texts))
	for i, t := range texts {
		out[i] = AnswerOption{Text: t, Value: i + 1}
	}
	return out
}

var Questions = []Question{
	{
		Category: "Carga Académica",
		Text:     "¿Con qué frecuencia sientes que tienes demasiadas tareas o proyectos?",
		Options:  scale("Nunca o casi nunca", "Ocasionalmente", "Frecuentemente", "Casi siempre", "Siempre"),
	},
	{
		Category: "Exámenes y Evaluaciones",
		Text:     "¿Cómo te afectan emocionalmente los exámenes importantes?",
		Options:  scale("No me afectan", "Me ponen un poco nervioso", "Me causan ansiedad moderada", "Me estresan mucho", "Me paralizan de ansiedad"),
	},
	{
		Category: "Procrastinación",
		Text:     "¿Con qué frecuencia postergas tareas importantes?",
		Options:  scale("Nunca", "Rara vez", "A veces", "Frecuentemente", "Casi siempre"),
	},
	{
		Category: "Perfeccionismo",
		Text:     "¿Te preocupas excesivamente por obtener calificaciones perfectas?",
		Options:  scale("Para nada", "Un poco", "Moderadamente", "Bastante", "Extremadamente"),
	},
	{
		Category: "Tiempo y Organización",
		Text:     "¿Sientes que no tienes suficiente tiempo para todo lo que necesitas hacer?",
		Options:  scale("Nunca", "Rara vez", "A veces", "Frecuentemente", "Siempre"),
	},
	{
		Category: "Síntomas Físicos",
		Text:     "¿Experimentas síntomas físicos cuando estás estresado? (dolor de cabeza, tensión muscular, problemas digestivos)",
		Options:  scale("Nunca", "Rara vez", "A veces", "Frecuentemente", "Muy frecuentemente"),
	},
}

type AssessmentResult struct {
	Answers         []int
	Stress          engine.StressResult
	Recommendations []string
	Grant           *engine.GrantResult
}

// Assessment asks the questions in order. Answering the last one scores the
// test and grants the assessment reward.
type Assessment struct {
	rewarder Rewarder
	answers  []int
	result   *AssessmentResult
}

func NewAssessment(r Rewarder) *Assessment {
	return &Assessment{rewarder: r}
}

// Current returns the question awaiting an answer; ok is false on the results screen.
func (a *Assessment) Current() (q Question, index int, ok bool) {
	if a.result != nil {
		return Question{}, len(a.answers), false
	}
	return Questions[len(a.answers)], len(a.answers), true
}

func (a *Assessment) Result() *AssessmentResult { return a.result }

func (a *Assessment) Answer(ctx context.Context, value int) (*AssessmentResult, error) {
	if a.result != nil {
		return nil, engine.InputError{Field: "answer", Reason: "assessment already completed"}
	}
	q := Questions[len(a.answers)]
	if !validOption(q, value) {
		return nil, engine.InputError{Field: "answer", Reason: fmt.Sprintf("no option with value %d", value)}
	}

	answers := append(append([]int(nil), a.answers...), value)
	if len(answers) < len(Questions) {
		a.answers = answers
		return nil, nil
	}

	stress, err := engine.ClassifyStress(answers)
	if err != nil {
		return nil, err
	}
	grant, err := a.rewarder.Grant(ctx, engine.RewardStressAssessment)
	if err != nil {
		return nil, err
	}
	a.answers = answers
	a.result = &AssessmentResult{
		Answers:         answers,
		Stress:          stress,
		Recommendations: engine.Recommendations(answers),
		Grant:           grant,
	}
	return a.result, nil
}

// Restart clears the answers and returns to the first question.
func (a *Assessment) Restart() {
	a.answers = nil
	a.result = nil
}

func validOption(q Question, value int) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}
