package engine

import (
	"math/rand/v2"
	"sort"
	"strings"
)

// RandSource picks an index in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the process-wide generator.
var DefaultRand RandSource = globalRand{}

type variant struct {
	text     string
	followUp bool // append a chat follow-up question
}

func plain(texts ...string) []variant {
	out := make([]variant, len(texts))
	for i, t := range texts {
		out[i] = variant{text: t}
	}
	return out
}

var variantTable = map[string][]variant{
	"chat.sad": plain(
		"Entiendo que te sientes triste. ¿Puedes contarme qué específicamente te está afectando hoy? 🤗",
		"La tristeza es una emoción válida. ¿Hay algo en particular que haya desencadenado estos sentimientos? 💙",
		"Me preocupo por ti. ¿Te gustaría hablar sobre lo que está pasando en tu vida ahora mismo? 🌸",
	),
	"chat.stress": plain(
		"El estrés puede ser abrumador. ¿Qué situaciones específicas te están causando más tensión? 🌊",
		"Entiendo que te sientes estresado. ¿Has probado alguna técnica de respiración hoy? Podríamos practicar juntos. 🌿",
		"¿Qué aspectos de tu vida académica te están generando más estrés en este momento? Hablemos de estrategias. 📚",
	),
	"chat.anxiety": plain(
		"La ansiedad puede ser muy intensa. ¿Puedes describir qué sensaciones físicas estás experimentando? 🦋",
		"Entiendo tu ansiedad. ¿Hay pensamientos específicos que se repiten en tu mente? Podemos trabajar en ellos. ✨",
		"¿Qué situaciones o pensamientos tienden a disparar tu ansiedad? Conocerlos nos ayuda a manejarlos mejor. 🌱",
	),
	"chat.happy": plain(
		"¡Me alegra mucho escuchar eso! ¿Qué ha contribuido a que te sientas tan bien hoy? 🌟",
		"Qué hermoso que te sientes feliz. ¿Te gustaría compartir qué te está trayendo esta alegría? ✨",
		"Es maravilloso verte así. ¿Cómo podemos mantener y cultivar estos sentimientos positivos? 🌸",
	),
	"chat.tired": plain(
		"El cansancio puede afectar mucho nuestro bienestar. ¿Cómo has estado durmiendo últimamente? 😴",
		"Entiendo esa fatiga. ¿Qué actividades te han estado demandando más energía? Veamos cómo equilibrar. ⚖️",
		"¿Has podido tomar descansos regulares? A veces necesitamos pausas más frecuentes de las que creemos. 🌙",
	),
	"chat.default": {
		{text: "Me alegra que hayas compartido eso conmigo. ¿Cómo te sientes al expresar estos pensamientos? 💫"},
		{text: "Cada paso que das hacia el autoconocimiento es valioso.", followUp: true},
		{text: "Tu bienestar emocional es importante.", followUp: true},
	},
	"chat.followup": plain(
		"¿Cómo te sientes físicamente en este momento? A veces nuestro cuerpo nos da pistas importantes. 🧘",
		"¿Hay algo específico que te gustaría cambiar en tu situación actual? 🌱",
		"¿Qué te ha ayudado en el pasado cuando te has sentido así? 💡",
		"¿Te gustaría que exploremos algunas estrategias juntos? Estoy aquí para apoyarte. 🤝",
	),

	"wall.gratitud": plain(
		"Qué hermoso corazón agradecido tienes 💚",
		"La gratitud es el camino hacia la felicidad 🌸",
		"Me encanta ver todo lo bueno que reconoces ✨",
	),
	"wall.logro": plain(
		"¡Estoy tan orgullosa de ti! 🌟",
		"Cada logro merece ser celebrado 🎉",
		"Mira todo lo que has conseguido ⭐",
	),
	"wall.soltar": plain(
		"Soltar es un acto de valentía 🕊️",
		"Está bien dejar ir lo que no te sirve 🌿",
		"Liberar es liberarse 💫",
	),
	"wall.positivo": plain(
		"Qué pensamiento tan luminoso 🌞",
		"Tu mente positiva es tu superpoder ✨",
		"Estos pensamientos nutren tu alma 🌸",
	),
	"wall.libre": plain(
		"Me encanta cuando expresas tu verdad 💭",
		"Tus pensamientos son únicos y valiosos 🦋",
		"Gracias por compartir esto conmigo 💙",
	),

	"motivation.positive": plain(
		"🎉 ¡Qué energía tan increíble tienes hoy!",
		"⭐ Tu actitud positiva es contagiosa",
		"🚀 Aprovecha este momento de claridad mental",
		"🌟 Estás radiante, sigue brillando",
	),
	"motivation.neutral": plain(
		"🌸 Lessy y yo te damos la bienvenida a tu espacio de bienestar",
	),
	"motivation.negative.fatigue": plain(
		"🌙 Tu esfuerzo también merece descanso",
		"💤 Está bien tomarse un respiro, eres humano",
		"🌸 El descanso no es pereza, es autocuidado",
	),
	"motivation.negative.anxiety": plain(
		"🌊 Respira, este momento también pasará",
		"🦋 Tu ansiedad no define tu valor",
		"🌿 Cada respiración te acerca a la calma",
	),
	"motivation.negative.overwhelm": plain(
		"🧩 Un paso a la vez, no necesitas hacer todo hoy",
		"🌱 Está bien no tenerlo todo bajo control",
		"⭐ Eres capaz de más de lo que imaginas",
	),
	"motivation.negative.general": plain(
		"🌟 Cada pequeño paso cuenta, ¡tú puedes!",
		"💪 Eres más fuerte de lo que crees",
		"🌈 Los días difíciles no duran, pero las personas resilientes sí",
	),
}

// VariantCategories lists every category PickVariant accepts, sorted.
func VariantCategories() []string {
	out := make([]string, 0, len(variantTable))
	for k := range variantTable {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Variants returns every text a category can produce, before follow-ups.
func Variants(category string) []string {
	vs := variantTable[category]
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.text
	}
	return out
}

// PickVariant returns one canned text from category, choosing with r.
func PickVariant(category string, r RandSource) (string, error) {
	vs, ok := variantTable[category]
	if !ok || len(vs) == 0 {
		return "", invalid("category", "unknown variant category %q", category)
	}
	if r == nil {
		r = DefaultRand
	}
	v := vs[r.IntN(len(vs))]
	if !v.followUp {
		return v.text, nil
	}
	follow, err := PickVariant("chat.followup", r)
	if err != nil {
		return "", err
	}
	return v.text + " " + follow, nil
}

// ChatCategory maps a message to its reply category by keyword.
func ChatCategory(message string) string {
	m := strings.ToLower(message)
	switch {
	case containsAny(m, "triste", "mal", "deprimido"):
		return "chat.sad"
	case containsAny(m, "estrés", "estresado", "agobiado"):
		return "chat.stress"
	case containsAny(m, "ansiedad", "ansioso", "nervioso"):
		return "chat.anxiety"
	case containsAny(m, "feliz", "bien", "contento"):
		return "chat.happy"
	case containsAny(m, "cansado", "agotado", "fatiga"):
		return "chat.tired"
	default:
		return "chat.default"
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// WallComment is the supportive reply shown under a new calm note.
func WallComment(c NoteCategory, r RandSource) (string, error) {
	if !c.IsValid() {
		return "", invalid("category", "unknown value %q", c)
	}
	return PickVariant("wall."+string(c), r)
}

// MotivationalMessage is the greeting shown for a profile's mood.
func MotivationalMessage(p UserProfile, r RandSource) (string, error) {
	switch p.Mood {
	case MoodNegative:
		st := p.StressType
		if !st.IsValid() {
			st = StressGeneral
		}
		return PickVariant("motivation.negative."+string(st), r)
	case MoodPositive:
		return PickVariant("motivation.positive", r)
	case MoodNeutral:
		return PickVariant("motivation.neutral", r)
	default:
		return "", invalid("mood", "unknown value %q", p.Mood)
	}
}
