package remote

import (
	"bytes"
	"fmt"
	"html/template"
)

// Email is a rendered message.
type Email struct {
	Subject string
	HTML    string
}

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "welcome"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px; text-align: center; color: white;">
    <h1 style="margin: 0; font-size: 28px;">¡Hola {{.Name}}! 🌟</h1>
    <p style="margin: 10px 0 0 0; font-size: 18px;">Bienvenido a StressLess</p>
  </div>
  <div style="padding: 40px; background: #f8f9fa;">
    <h2 style="color: #333; text-align: center;">🐱 ¡Lessy te da la bienvenida!</h2>
    <p style="color: #666; line-height: 1.6;">Estamos emocionados de tenerte en nuestra comunidad. StressLess está diseñado para ayudarte a manejar el estrés académico y encontrar el equilibrio entre estudios y bienestar.</p>
    <h3 style="color: #667eea;">🚀 Primeros pasos:</h3>
    <ul style="color: #666; line-height: 1.8;">
      <li>Completa tu perfil personalizado</li>
      <li>Realiza el test de estrés inicial</li>
      <li>Explora nuestras técnicas de relajación</li>
      <li>Conoce a Lessy, tu compañera de bienestar</li>
    </ul>
    <p style="text-align: center;"><a href="{{.AppURL}}">Comenzar mi viaje de bienestar</a></p>
  </div>
  <div style="background: #333; color: white; padding: 20px; text-align: center;">Con mucho amor, el equipo de StressLess 💜</div>
</div>{{end}}

{{define "levelUp"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #f093fb 0%, #f5576c 100%); padding: 40px; text-align: center; color: white;">
    <div style="font-size: 80px;">🎉</div>
    <h1 style="margin: 0; font-size: 28px;">¡Nivel {{.Level}} Desbloqueado!</h1>
  </div>
  <div style="padding: 40px; background: #f8f9fa; text-align: center;">
    <h2 style="color: #333;">🐱 ¡Lessy está orgullosa de ti, {{.Name}}!</h2>
    <p style="color: #666; line-height: 1.6;">Has demostrado un compromiso increíble con tu bienestar. Cada nivel que alcanzas es una prueba de tu dedicación al manejo saludable del estrés.</p>
    <p><a href="{{.AppURL}}">Continuar mi progreso</a></p>
  </div>
</div>{{end}}

{{define "taskReminder"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(135deg, #4facfe 0%, #00f2fe 100%); padding: 40px; text-align: center; color: white;">
    <div style="font-size: 60px;">📋</div>
    <h1 style="margin: 0; font-size: 24px;">Recordatorio amigable</h1>
  </div>
  <div style="padding: 40px; background: #f8f9fa;">
    <h2 style="color: #333; text-align: center;">🐱 Lessy te recuerda, {{.Name}}</h2>
    <p style="color: #666; line-height: 1.6;">Tienes algunas tareas pendientes. No te preocupes, ¡vamos paso a paso!</p>
    <h3 style="color: #4facfe;">📝 Tareas pendientes:</h3>
    <ul style="color: #666; line-height: 1.8;">
      {{range .Tasks}}<li>{{.}}</li>{{end}}
    </ul>
    <p style="color: #666;">Recuerda: cada pequeño paso cuenta. ¡Tú puedes! 💪</p>
    <p style="text-align: center;"><a href="{{.AppURL}}">Ver mis tareas</a></p>
  </div>
</div>{{end}}
`))

type templateData struct {
	Name   string
	Level  int
	Tasks  []string
	AppURL string
}

func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}

func displayName(name string) string {
	if name == "" {
		return "estudiante"
	}
	return name
}

func WelcomeEmail(name, appURL string) (Email, error) {
	html, err := render("welcome", templateData{Name: displayName(name), AppURL: appURL})
	if err != nil {
		return Email{}, err
	}
	return Email{Subject: "¡Bienvenido a StressLess! 🐱", HTML: html}, nil
}

func LevelUpEmail(name string, level int, appURL string) (Email, error) {
	name = displayName(name)
	html, err := render("levelUp", templateData{Name: name, Level: level, AppURL: appURL})
	if err != nil {
		return Email{}, err
	}
	return Email{Subject: fmt.Sprintf("¡Felicidades %s! Has alcanzado el nivel %d 🎉", name, level), HTML: html}, nil
}

func TaskReminderEmail(name string, tasks []string, appURL string) (Email, error) {
	name = displayName(name)
	html, err := render("taskReminder", templateData{Name: name, Tasks: tasks, AppURL: appURL})
	if err != nil {
		return Email{}, err
	}
	return Email{Subject: fmt.Sprintf("%s, tienes tareas pendientes 📋", name), HTML: html}, nil
}
