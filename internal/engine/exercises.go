package engine

import (
	"fmt"
	"strings"
)

// Exercise is a timed breathing or relaxation routine. Durations and
// instructions are tailored to the profile's stress type.
type Exercise struct {
	ID          string
	Title       string
	Description string
	Minutes     int
	Instruction string
}

type exerciseDef struct {
	id, title, desc string
	// tailored applies when the profile has this stress type.
	tailored                         StressType
	minutes, tailoredMin             int
	instruction, tailoredInstruction string
}

var exerciseDefs = []exerciseDef{
	{
		id: "deep-breathing", title: "Respiración Profunda", desc: "Técnica básica de respiración 4-7-8",
		tailored: StressFatigue, minutes: 3, tailoredMin: 2,
		instruction:         "Inhala por 4 segundos, mantén por 7, exhala por 8",
		tailoredInstruction: "Respiración suave para energizar sin agotar",
	},
	{
		id: "mindfulness", title: "Mindfulness Básico", desc: "Meditación de atención plena",
		tailored: StressAnxiety, minutes: 5, tailoredMin: 3,
		instruction:         "Concéntrate en tu respiración natural",
		tailoredInstruction: "Observa tus pensamientos sin juzgarlos, como nubes que pasan",
	},
	{
		id: "progressive-relaxation", title: "Relajación Progresiva", desc: "Relaja cada grupo muscular",
		tailored: StressOverwhelm, minutes: 10, tailoredMin: 8,
		instruction:         "Tensa y relaja cada parte de tu cuerpo",
		tailoredInstruction: "Libera la tensión acumulada paso a paso",
	},
	{
		id: "energy-boost", title: "Energía Matutina", desc: "Respiración energizante",
		tailored: StressFatigue, minutes: 2, tailoredMin: 3,
		instruction:         "Respiraciones rápidas y energéticas",
		tailoredInstruction: "Respiraciones revitalizantes para despertar tu energía",
	},
}

func (d exerciseDef) build(st StressType) Exercise {
	e := Exercise{ID: d.id, Title: d.title, Description: d.desc, Minutes: d.minutes, Instruction: d.instruction}
	if st == d.tailored {
		e.Minutes = d.tailoredMin
		e.Instruction = d.tailoredInstruction
	}
	return e
}

// ExercisesFor lists the routines in display order for a stress type.
func ExercisesFor(st StressType) []Exercise {
	out := make([]Exercise, len(exerciseDefs))
	for i, d := range exerciseDefs {
		out[i] = d.build(st)
	}
	return out
}

func FindExercise(id string, st StressType) (Exercise, error) {
	id = strings.TrimSpace(strings.ToLower(id))
	for _, d := range exerciseDefs {
		if d.id == id {
			return d.build(st), nil
		}
	}
	return Exercise{}, fmt.Errorf("exercise %q: %w", id, ErrNotFound)
}

// Encouragement is the line shown while a routine runs.
func Encouragement(st StressType) string {
	switch st {
	case StressFatigue:
		return "Respira conmigo, vamos a recuperar tu energía suavemente 🌿"
	case StressAnxiety:
		return "Estoy aquí contigo, cada respiración te trae más calma 🦋"
	case StressOverwhelm:
		return "Vamos paso a paso, no hay prisa, solo paz 🌸"
	default:
		return "Respira conmigo, encontremos juntos tu centro de calma 💙"
	}
}
