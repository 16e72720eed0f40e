package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"stressless/internal/engine"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// Keep-alive connections of the shared transport close asynchronously.
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

type recorded struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

// recorder is an httptest handler that remembers every request.
type recorder struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	reply    string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.requests = append(r.requests, recorded{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Header: req.Header.Clone(),
		Body:   string(body),
	})
	status, reply := r.status, r.reply
	r.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.requests...)
}

func newServer(t *testing.T, rec *recorder) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchProfile(t *testing.T) {
	rec := &recorder{reply: `[{"id":"u1","name":"Ana","stress_type":"anxiety","level":2,"xp":150,"subscription_plan":"premium","subscription_status":"active"}]`}
	srv := newServer(t, rec)
	c := NewProfileClient(srv.URL+"/", "anon-key", time.Second)

	p, err := c.Fetch(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "Ana", p.Name)
	require.Equal(t, "anxiety", p.StressType)
	require.Equal(t, "premium", p.SubscriptionPlan)

	reqs := rec.all()
	require.Len(t, reqs, 1)
	require.Equal(t, "/rest/v1/users", reqs[0].Path)
	require.Equal(t, "id=eq.u1&select=*", reqs[0].Query)
	require.Equal(t, "anon-key", reqs[0].Header.Get("apikey"))
	require.Equal(t, "Bearer anon-key", reqs[0].Header.Get("Authorization"))
}

func TestFetchMissingProfile(t *testing.T) {
	srv := newServer(t, &recorder{reply: `[]`})
	c := NewProfileClient(srv.URL, "k", time.Second)

	_, err := c.Fetch(context.Background(), "ghost")
	require.ErrorIs(t, err, engine.ErrNotFound)
}

func TestServerErrorIsTransient(t *testing.T) {
	srv := newServer(t, &recorder{status: http.StatusBadGateway, reply: `{"message":"upstream"}`})
	c := NewProfileClient(srv.URL, "k", time.Second)

	err := c.Update(context.Background(), "u1", map[string]any{"xp": 10})
	require.ErrorIs(t, err, engine.ErrTransientRemote)
	require.Contains(t, err.Error(), "502")
}

func TestTimeoutIsTransient(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	c := NewProfileClient(srv.URL, "k", 50*time.Millisecond)
	_, err := c.Fetch(context.Background(), "u1")
	require.ErrorIs(t, err, engine.ErrTransientRemote)
}

func TestCreateProfileSendsRow(t *testing.T) {
	rec := &recorder{status: http.StatusCreated, reply: `[{"id":"u1","subscription_plan":"free","subscription_status":"active"}]`}
	srv := newServer(t, rec)
	c := NewProfileClient(srv.URL, "k", time.Second)

	p := engine.DefaultProfile()
	p.Name = "Leo"
	p.XP = 120
	p.Level = 2
	created, err := c.Create(context.Background(), NewRemoteProfile("u1", p))
	require.NoError(t, err)
	require.Equal(t, "free", created.SubscriptionPlan)

	req := rec.all()[0]
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "return=representation", req.Header.Get("Prefer"))
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &rows))
	require.Len(t, rows, 1)
	require.Equal(t, "Leo", rows[0]["name"])
	require.Equal(t, float64(120), rows[0]["xp"])
	require.Equal(t, "general", rows[0]["stress_type"])
	require.NotContains(t, rows[0], "created_at")
}

func TestEmailSender(t *testing.T) {
	rec := &recorder{reply: `{"id":"em_1"}`}
	srv := newServer(t, rec)
	s := NewEmailSender(srv.URL+"/emails", "re_key", "StressLess <noreply@stressless.app>", time.Second)

	id, err := s.Send(context.Background(), "ana@example.com", "Hola", "<p>hola</p>")
	require.NoError(t, err)
	require.Equal(t, "em_1", id)

	req := rec.all()[0]
	require.Equal(t, "Bearer re_key", req.Header.Get("Authorization"))
	var body emailRequest
	require.NoError(t, json.Unmarshal([]byte(req.Body), &body))
	require.Equal(t, []string{"ana@example.com"}, body.To)
	require.Equal(t, "StressLess <noreply@stressless.app>", body.From)

	_, err = s.Send(context.Background(), " ", "x", "y")
	require.Error(t, err)
}

func TestCheckout(t *testing.T) {
	rec := &recorder{reply: `{"url":"https://pay.example/session/1"}`}
	srv := newServer(t, rec)
	c := NewCheckoutClient(srv.URL, time.Second)

	premium, _ := engine.FindPlan(engine.PlanPremium)
	url, err := c.CreateSession(context.Background(), premium, "u1", "https://stressless.app/")
	require.NoError(t, err)
	require.Equal(t, "https://pay.example/session/1", url)

	var body checkoutRequest
	require.NoError(t, json.Unmarshal([]byte(rec.all()[0].Body), &body))
	require.Equal(t, checkoutRequest{
		PriceID:    "price_premium_monthly",
		UserID:     "u1",
		SuccessURL: "https://stressless.app/success",
		CancelURL:  "https://stressless.app/contact",
	}, body)

	free, _ := engine.FindPlan(engine.PlanFree)
	_, err = c.CreateSession(context.Background(), free, "u1", "")
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = c.CreateSession(context.Background(), premium, "", "")
	require.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestCheckoutWithoutURLFails(t *testing.T) {
	srv := newServer(t, &recorder{reply: `{}`})
	c := NewCheckoutClient(srv.URL, time.Second)
	pro, _ := engine.FindPlan(engine.PlanPro)

	_, err := c.CreateSession(context.Background(), pro, "u1", "")
	require.ErrorIs(t, err, engine.ErrTransientRemote)
}

func TestTemplatesEscapeInput(t *testing.T) {
	msg, err := TaskReminderEmail("Ana", []string{"<script>x</script>", "Ensayo"}, "https://stressless.app")
	require.NoError(t, err)
	require.Equal(t, "Ana, tienes tareas pendientes 📋", msg.Subject)
	require.NotContains(t, msg.HTML, "<script>")
	require.Contains(t, msg.HTML, "<li>Ensayo</li>")

	msg, err = LevelUpEmail("", 4, "https://stressless.app")
	require.NoError(t, err)
	require.Equal(t, "¡Felicidades estudiante! Has alcanzado el nivel 4 🎉", msg.Subject)
	require.Contains(t, msg.HTML, "Nivel 4")

	msg, err = WelcomeEmail("Leo", "https://stressless.app")
	require.NoError(t, err)
	require.True(t, strings.Contains(msg.HTML, "¡Hola Leo!"))
}

type fakeMirror struct {
	mu      sync.Mutex
	patches []map[string]any
	err     error
}

func (f *fakeMirror) Update(_ context.Context, id string, patch map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patch)
	return f.err
}

type fakeMailer struct {
	mu       sync.Mutex
	subjects []string
	to       []string
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.to = append(f.to, to)
	f.subjects = append(f.subjects, subject)
	return "id", nil
}

func TestDispatcherLevelUp(t *testing.T) {
	mirror := &fakeMirror{}
	mail := &fakeMailer{}
	d := NewDispatcher(mirror, mail, DispatcherConfig{Identity: "u1", AppURL: "https://stressless.app"}, nil)

	p := engine.DefaultProfile()
	p.Name = "Ana"
	p.Email = "ana@example.com"
	p.XP = 210
	p.Level = 3
	d.LevelUp(p, 2, 3)
	require.NoError(t, d.Close(context.Background()))

	require.Len(t, mirror.patches, 1)
	require.Equal(t, 210, mirror.patches[0]["xp"])
	require.NotContains(t, mirror.patches[0], "subscription_plan")
	require.Equal(t, []string{"¡Felicidades Ana! Has alcanzado el nivel 3 🎉"}, mail.subjects)

	// Closed dispatchers drop new work.
	d.ProfileChanged(p)
	require.Len(t, mirror.patches, 1)
}

func TestDispatcherSkipsWithoutIdentityOrEmail(t *testing.T) {
	mirror := &fakeMirror{}
	mail := &fakeMailer{}
	d := NewDispatcher(mirror, mail, DispatcherConfig{}, nil)

	d.LevelUp(engine.DefaultProfile(), 1, 2)
	d.SendWelcome(engine.DefaultProfile())
	require.NoError(t, d.Close(context.Background()))

	require.Empty(t, mirror.patches)
	require.Empty(t, mail.subjects)
}

func TestDispatcherFailuresDoNotSurface(t *testing.T) {
	mirror := &fakeMirror{err: engine.ErrTransientRemote}
	d := NewDispatcher(mirror, nil, DispatcherConfig{Identity: "u1"}, nil)
	d.ProfileChanged(engine.DefaultProfile())
	d.ProfileChanged(engine.DefaultProfile())
	require.NoError(t, d.Close(context.Background()))
	require.Len(t, mirror.patches, 2)
}

type fakeLocal struct {
	profile engine.UserProfile
	plan    string
	status  string
}

func (f *fakeLocal) Profile() engine.UserProfile { return f.profile }
func (f *fakeLocal) ApplySubscription(_ context.Context, plan, status string) error {
	f.plan, f.status = plan, status
	return nil
}

type fakeStore struct {
	row     *RemoteProfile
	created []RemoteProfile
	updates []map[string]any
}

func (f *fakeStore) Fetch(_ context.Context, id string) (*RemoteProfile, error) {
	if f.row == nil {
		return nil, engine.ErrNotFound
	}
	return f.row, nil
}

func (f *fakeStore) Create(_ context.Context, p RemoteProfile) (*RemoteProfile, error) {
	f.created = append(f.created, p)
	f.row = &p
	return &p, nil
}

func (f *fakeStore) Update(_ context.Context, id string, patch map[string]any) error {
	f.updates = append(f.updates, patch)
	return nil
}

func TestSyncCreatesAndWelcomes(t *testing.T) {
	store := &fakeStore{}
	local := &fakeLocal{profile: engine.DefaultProfile()}
	welcomed := 0
	s := &Syncer{Store: store, Identity: "u1", Welcome: func(engine.UserProfile) { welcomed++ }}

	res, err := s.Sync(context.Background(), local)
	require.NoError(t, err)
	require.True(t, res.Created)
	require.Len(t, store.created, 1)
	require.Equal(t, "u1", store.created[0].ID)
	require.Equal(t, 1, welcomed)

	res, err = s.Sync(context.Background(), local)
	require.NoError(t, err)
	require.False(t, res.Created)
	require.Len(t, store.updates, 1)
	require.Equal(t, 1, welcomed)
}

func TestSyncAdoptsSubscription(t *testing.T) {
	store := &fakeStore{row: &RemoteProfile{ID: "u1", SubscriptionPlan: "pro", SubscriptionStatus: "active"}}
	local := &fakeLocal{profile: engine.DefaultProfile()}
	s := &Syncer{Store: store, Identity: "u1"}

	res, err := s.Sync(context.Background(), local)
	require.NoError(t, err)
	require.Equal(t, "pro", res.SubscriptionPlan)
	require.Equal(t, "pro", local.plan)
	require.Equal(t, "active", local.status)

	_, err = (&Syncer{Store: store}).Sync(context.Background(), local)
	require.ErrorIs(t, err, engine.ErrInvalidInput)
}
