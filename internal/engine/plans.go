package engine

const (
	PlanFree    = "free"
	PlanPremium = "premium"
	PlanPro     = "pro"

	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusCancelled = "cancelled"
)

type Plan struct {
	ID       string
	Name     string
	PriceEUR float64
	PriceID  string // checkout price identifier, empty for the free plan
	Features []string
}

var Plans = []Plan{
	{
		ID:   PlanFree,
		Name: "Free",
		Features: []string{
			"Test de estrés básico",
			"Ejercicios de respiración (3)",
			"Gestor de tareas básico",
			"Chat con Lessy limitado",
			"Jardín de calma básico",
			"Música (selección limitada)",
		},
	},
	{
		ID:       PlanPremium,
		Name:     "Premium",
		PriceEUR: 9.99,
		PriceID:  "price_premium_monthly",
		Features: []string{
			"Todo lo de Free +",
			"Test de estrés avanzado",
			"Ejercicios de respiración ilimitados",
			"Planificador académico completo",
			"Chat con Lessy 24/7",
			"Jardín de calma completo",
			"Biblioteca musical completa",
			"Seguimiento de progreso avanzado",
		},
	},
	{
		ID:       PlanPro,
		Name:     "Pro",
		PriceEUR: 19.99,
		PriceID:  "price_pro_monthly",
		Features: []string{
			"Todo lo de Premium +",
			"Sesiones con psicólogos certificados",
			"Coaching académico personalizado",
			"Planes de estudio adaptativos",
			"Acceso prioritario a nuevas funciones",
			"Soporte técnico prioritario",
		},
	},
}

func FindPlan(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// Paid reports whether the plan goes through checkout.
func (p Plan) Paid() bool { return p.PriceID != "" }
