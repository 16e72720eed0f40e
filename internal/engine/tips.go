package engine

const maxStudyTips = 4

// StudyTips builds up to four suggestions from the hour of day, the pending
// workload and the profile's stress type.
func StudyTips(hour int, p UserProfile, tasks []Task) []string {
	var tips []string
	switch {
	case hour >= 9 && hour <= 11:
		tips = append(tips, "🌅 Es tu hora de máxima concentración. Dedica este tiempo a las tareas más difíciles.")
	case hour >= 14 && hour <= 16:
		tips = append(tips, "☕ Después del almuerzo, toma un descanso de 10 minutos antes de continuar.")
	}

	if len(PendingTasks(tasks)) > 5 {
		tips = append(tips, "📋 Tienes muchas tareas pendientes. Prioriza las 3 más importantes para hoy.")
	}

	switch p.StressType {
	case StressOverwhelm:
		tips = append(tips, "🧘 Cuando te sientas abrumado, usa la técnica 5-4-3-2-1: 5 cosas que ves, 4 que tocas, 3 que escuchas, 2 que hueles, 1 que saboreas.")
	case StressFatigue:
		tips = append(tips, "💤 Levántate cada 45 minutos y haz 5 respiraciones profundas.")
	}

	tips = append(tips,
		"💧 Hidrátate: bebe un vaso de agua cada hora.",
		"🚶 Camina 5 minutos entre sesiones de estudio para oxigenar tu cerebro.",
	)
	if len(tips) > maxStudyTips {
		tips = tips[:maxStudyTips]
	}
	return tips
}
