package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"stressless/internal/storage"
)

var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	svc, err := Open(ctx, db, opts...)
	if err != nil {
		t.Fatalf("open service: %v", err)
	}
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

// reopen builds a second service over the same database.
func reopen(t *testing.T, svc *Service) *Service {
	t.Helper()
	fresh, err := Open(context.Background(), svc.db, WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	return fresh
}

type recordingSync struct {
	changed  int
	levelUps [][2]int
}

func (r *recordingSync) ProfileChanged(UserProfile) { r.changed++ }
func (r *recordingSync) LevelUp(_ UserProfile, from, to int) {
	r.levelUps = append(r.levelUps, [2]int{from, to})
}

func TestLevelForXP(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 99: 1, 100: 2, 199: 2, 250: 3, 1000: 11}
	for xp, want := range cases {
		if got := LevelForXP(xp); got != want {
			t.Fatalf("LevelForXP(%d)=%d, want %d", xp, got, want)
		}
	}
	for xp := 0; xp < 2000; xp += 7 {
		if got, want := LevelForXP(xp), xp/100+1; got != want {
			t.Fatalf("LevelForXP(%d)=%d, want %d", xp, got, want)
		}
	}
	if got := XPRequiredForLevel(3); got != 200 {
		t.Fatalf("XPRequiredForLevel(3)=%d, want 200", got)
	}
}

func TestAwardXPIsMonotonic(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	amounts := []int{5, 95, 1, 120, 30, 49}
	total := 0
	for _, a := range amounts {
		res, err := svc.AwardXP(ctx, a)
		if err != nil {
			t.Fatalf("AwardXP(%d): %v", a, err)
		}
		total += a
		if res.XPAfter != total {
			t.Fatalf("XPAfter=%d, want %d", res.XPAfter, total)
		}
		if res.LevelAfter != LevelForXP(total) {
			t.Fatalf("LevelAfter=%d, want %d", res.LevelAfter, LevelForXP(total))
		}
	}

	p := svc.Profile()
	if p.XP != 300 || p.Level != 4 {
		t.Fatalf("profile xp=%d level=%d, want 300/4", p.XP, p.Level)
	}

	for _, bad := range []int{0, -5} {
		if _, err := svc.AwardXP(ctx, bad); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("AwardXP(%d) err=%v, want ErrInvalidInput", bad, err)
		}
		if _, err := svc.AwardCalmPoints(ctx, bad); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("AwardCalmPoints(%d) err=%v, want ErrInvalidInput", bad, err)
		}
	}
	if got := svc.Profile().XP; got != 300 {
		t.Fatalf("xp changed by rejected award: %d", got)
	}
}

func TestCalmPointsDoNotLevel(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	res, err := svc.AwardCalmPoints(context.Background(), 500)
	if err != nil {
		t.Fatalf("AwardCalmPoints: %v", err)
	}
	if res.LevelUp || res.CalmPoints != 500 {
		t.Fatalf("unexpected result %+v", res)
	}
	if p := svc.Profile(); p.Level != 1 || p.XP != 0 {
		t.Fatalf("level/xp changed: %+v", p)
	}
}

func TestLevelUpNotifiesSync(t *testing.T) {
	rec := &recordingSync{}
	svc, cleanup := newTestService(t, WithProfileSync(rec))
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.AwardXP(ctx, 99); err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	if len(rec.levelUps) != 0 {
		t.Fatalf("unexpected level up: %v", rec.levelUps)
	}
	res, err := svc.AwardXP(ctx, 120)
	if err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	if !res.LevelUp {
		t.Fatalf("expected level up")
	}
	if diff := cmp.Diff([][2]int{{1, 3}}, rec.levelUps); diff != "" {
		t.Fatalf("level ups mismatch (-want +got):\n%s", diff)
	}
}

func TestAddTaskValidation(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	valid := AddTaskInput{Title: "Ensayo", Subject: "Historia", DueDate: "2025-03-12", Priority: PriorityHigh, EstimatedTime: 60}
	bad := []AddTaskInput{
		{Subject: "Historia", DueDate: "2025-03-12", EstimatedTime: 60},
		{Title: "Ensayo", DueDate: "2025-03-12", EstimatedTime: 60},
		{Title: "Ensayo", Subject: "Historia", EstimatedTime: 60},
		{Title: "Ensayo", Subject: "Historia", DueDate: "12/03/2025", EstimatedTime: 60},
		{Title: "Ensayo", Subject: "Historia", DueDate: "2025-03-12", Priority: "urgent", EstimatedTime: 60},
		{Title: "Ensayo", Subject: "Historia", DueDate: "2025-03-12"},
	}
	for i, in := range bad {
		if _, _, err := svc.AddTask(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: err=%v, want ErrInvalidInput", i, err)
		}
	}
	if n := len(svc.Tasks()); n != 0 {
		t.Fatalf("rejected input created %d tasks", n)
	}
	if xp := svc.Profile().XP; xp != 0 {
		t.Fatalf("rejected input granted %d xp", xp)
	}

	task, grant, err := svc.AddTask(ctx, valid)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.ID == "" || task.Completed {
		t.Fatalf("unexpected task %+v", task)
	}
	if grant.XPAfter != 10 {
		t.Fatalf("xp after add=%d, want 10", grant.XPAfter)
	}
}

func TestTaskIDsUnique(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		task, _, err := svc.AddTask(ctx, AddTaskInput{
			Title: fmt.Sprintf("t%d", i), Subject: "Mates", DueDate: "2025-03-20", EstimatedTime: 30,
		})
		if err != nil {
			t.Fatalf("AddTask: %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
	tasks := svc.Tasks()
	if tasks[0].Title != "t0" || tasks[19].Title != "t19" {
		t.Fatalf("tasks not kept in insertion order")
	}
}

func TestToggleTaskGrantsOnEveryCompletion(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	task, _, err := svc.AddTask(ctx, AddTaskInput{Title: "Lectura", Subject: "Filosofía", DueDate: "2025-03-11", EstimatedTime: 45})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	steps := []struct {
		completed bool
		xp        int
	}{
		{true, 25},
		{false, 25},
		{true, 40},
	}
	for i, step := range steps {
		res, err := svc.ToggleTask(ctx, task.ID)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if res.Task.Completed != step.completed {
			t.Fatalf("toggle %d: completed=%v, want %v", i, res.Task.Completed, step.completed)
		}
		if (res.Grant != nil) != step.completed {
			t.Fatalf("toggle %d: grant=%v", i, res.Grant)
		}
		if xp := svc.Profile().XP; xp != step.xp {
			t.Fatalf("toggle %d: xp=%d, want %d", i, xp, step.xp)
		}
	}

	if _, err := svc.ToggleTask(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("toggle unknown err=%v, want ErrNotFound", err)
	}
}

func TestUpdateTaskPatch(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	task, _, err := svc.AddTask(ctx, AddTaskInput{Title: "Lab", Subject: "Química", DueDate: "2025-03-15", EstimatedTime: 90})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	low := PriorityLow
	empty := ""
	if _, err := svc.UpdateTask(ctx, task.ID, TaskPatch{Priority: &low, Title: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err=%v, want ErrInvalidInput", err)
	}
	if got := svc.Tasks()[0]; got.Priority != PriorityMedium {
		t.Fatalf("rejected patch applied: %+v", got)
	}

	updated, err := svc.UpdateTask(ctx, task.ID[:8], TaskPatch{Priority: &low})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Priority != PriorityLow || updated.Title != "Lab" {
		t.Fatalf("unexpected update %+v", updated)
	}
}

func TestMoodStoreKeepsNewest30(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	for i := 1; i <= 31; i++ {
		_, _, err := svc.RecordCheckIn(ctx, CheckInInput{Mood: i%10 + 1, StressLevel: 5, Notes: fmt.Sprintf("n%d", i)})
		if err != nil {
			t.Fatalf("RecordCheckIn %d: %v", i, err)
		}
	}
	entries := svc.MoodEntries()
	if len(entries) != MaxMoodEntries {
		t.Fatalf("len=%d, want %d", len(entries), MaxMoodEntries)
	}
	if entries[0].Notes != "n31" || entries[29].Notes != "n2" {
		t.Fatalf("newest=%q oldest=%q", entries[0].Notes, entries[29].Notes)
	}
	if xp := svc.Profile().XP; xp != 31*15 {
		t.Fatalf("xp=%d, want %d", xp, 31*15)
	}

	if _, _, err := svc.RecordCheckIn(ctx, CheckInInput{Mood: 11, StressLevel: 5}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err=%v, want ErrInvalidInput", err)
	}
}

func TestCheckInStreak(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	for _, d := range []string{"2025-03-05", "2025-03-08", "2025-03-09", "2025-03-10", "2025-03-10"} {
		if _, _, err := svc.RecordCheckIn(ctx, CheckInInput{Mood: 6, StressLevel: 4, Date: d}); err != nil {
			t.Fatalf("RecordCheckIn: %v", err)
		}
	}
	if got := svc.Profile().StreakDays; got != 3 {
		t.Fatalf("streak=%d, want 3", got)
	}
}

func TestAddNote(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, _, err := svc.AddNote(ctx, AddNoteInput{Text: "  ", Color: ColorBlue, Category: CategoryLibre}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err=%v, want ErrInvalidInput", err)
	}
	if _, _, err := svc.AddNote(ctx, AddNoteInput{Text: "hola", Color: "red", Category: CategoryLibre}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err=%v, want ErrInvalidInput", err)
	}

	for _, text := range []string{"primera", "segunda"} {
		if _, _, err := svc.AddNote(ctx, AddNoteInput{Text: text, Color: ColorGreen, Category: CategoryGratitud}); err != nil {
			t.Fatalf("AddNote: %v", err)
		}
	}
	notes := svc.Notes()
	if len(notes) != 2 || notes[0].Text != "segunda" {
		t.Fatalf("notes not newest first: %+v", notes)
	}
	p := svc.Profile()
	if p.CalmPoints != 20 || p.XP != 0 {
		t.Fatalf("calm=%d xp=%d, want 20/0", p.CalmPoints, p.XP)
	}
}

func TestProfileCompletionBonusOnce(t *testing.T) {
	rec := &recordingSync{}
	svc, cleanup := newTestService(t, WithProfileSync(rec))
	defer cleanup()
	ctx := context.Background()

	mood := Mood("sad")
	if _, _, err := svc.UpdateProfile(ctx, ProfilePatch{Mood: &mood}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err=%v, want ErrInvalidInput", err)
	}

	name := "Lucía"
	_, grant, err := svc.UpdateProfile(ctx, ProfilePatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if grant == nil || grant.XPAfter != 50 {
		t.Fatalf("grant=%+v, want +50", grant)
	}

	other := "Lu"
	_, grant, err = svc.UpdateProfile(ctx, ProfilePatch{Name: &other})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if grant != nil {
		t.Fatalf("second save granted %+v", grant)
	}
	if rec.changed != 2 {
		t.Fatalf("ProfileChanged called %d times, want 2", rec.changed)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	name, email := "Mateo", "mateo@example.com"
	st := StressAnxiety
	if _, _, err := svc.UpdateProfile(ctx, ProfilePatch{Name: &name, Email: &email, StressType: &st}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	task, _, err := svc.AddTask(ctx, AddTaskInput{Title: "Repaso", Subject: "Física", DueDate: "2025-03-14", Priority: PriorityLow, EstimatedTime: 25})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if _, err := svc.ToggleTask(ctx, task.ID); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if _, _, err := svc.RecordCheckIn(ctx, CheckInInput{Mood: 7, StressLevel: 3, Notes: "bien"}); err != nil {
		t.Fatalf("RecordCheckIn: %v", err)
	}
	if _, _, err := svc.AddNote(ctx, AddNoteInput{Text: "gracias", Color: ColorPink, Category: CategoryLogro}); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if _, _, err := svc.AddJournalEntry(ctx, "hoy estudié"); err != nil {
		t.Fatalf("AddJournalEntry: %v", err)
	}
	if _, err := svc.WaterPlant(ctx, 1); err != nil {
		t.Fatalf("WaterPlant: %v", err)
	}
	svc.SetSoundEnabled(ctx, false)

	fresh := reopen(t, svc)
	if diff := cmp.Diff(svc.Profile(), fresh.Profile()); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(svc.Tasks(), fresh.Tasks()); diff != "" {
		t.Fatalf("tasks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(svc.MoodEntries(), fresh.MoodEntries()); diff != "" {
		t.Fatalf("moods mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(svc.Notes(), fresh.Notes()); diff != "" {
		t.Fatalf("notes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(svc.Journal(), fresh.Journal()); diff != "" {
		t.Fatalf("journal mismatch (-want +got):\n%s", diff)
	}
	if fresh.SoundEnabled() {
		t.Fatalf("sound preference not restored")
	}
}

func TestCorruptSlotsFallBackToDefaults(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, _, err := svc.AddTask(ctx, AddTaskInput{Title: "x", Subject: "y", DueDate: "2025-03-14", EstimatedTime: 5}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	repo := svc.SlotRepo()
	if err := repo.Put(ctx, SlotTasks, []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, SlotProfile, []byte(`{"mood":"ecstatic","xp":40}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, SlotSound, []byte(`"loud"`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	fresh := reopen(t, svc)
	if n := len(fresh.Tasks()); n != 0 {
		t.Fatalf("tasks=%d, want empty default", n)
	}
	if diff := cmp.Diff(DefaultProfile(), fresh.Profile()); diff != "" {
		t.Fatalf("profile not reset (-want +got):\n%s", diff)
	}
	if !fresh.SoundEnabled() {
		t.Fatalf("sound should default to enabled")
	}
}

func TestLevelRederivedOnLoad(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.SlotRepo().Put(ctx, SlotProfile, []byte(`{"mood":"neutral","stressType":"general","musicPreference":"none","xp":250,"level":9}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got := reopen(t, svc).Profile().Level; got != 3 {
		t.Fatalf("level=%d, want 3", got)
	}
}

func TestRewardLedgerFeedsAchievements(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.Grant(ctx, RewardMeditation); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	achievements, err := svc.Achievements(ctx)
	if err != nil {
		t.Fatalf("Achievements: %v", err)
	}
	earned := map[string]bool{}
	for _, a := range achievements {
		earned[a.ID] = a.Earned
	}
	if !earned["first_meditation"] || earned["assessment"] || earned["first_profile"] {
		t.Fatalf("unexpected achievements %v", earned)
	}
	if n := EarnedCount(achievements); n != 1 {
		t.Fatalf("EarnedCount = %d, want 1", n)
	}
}

func TestFirstRunSeedsEverySlot(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	keys, err := svc.SlotRepo().Keys(context.Background())
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	want := []string{SlotJournal, SlotMoods, SlotNotes, SlotSound, SlotTasks, SlotProfile}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("seeded slots (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultProfile(), reopen(t, svc).Profile()); diff != "" {
		t.Fatalf("seeded profile (-want +got):\n%s", diff)
	}
}
