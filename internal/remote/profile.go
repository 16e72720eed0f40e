package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stressless/internal/engine"
)

// RemoteProfile is a row of the hosted users table.
type RemoteProfile struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Pseudonym          string     `json:"pseudonym,omitempty"`
	Avatar             string     `json:"avatar"`
	Mood               string     `json:"mood"`
	StressType         string     `json:"stress_type"`
	MusicPreference    string     `json:"music_preference"`
	Level              int        `json:"level"`
	XP                 int        `json:"xp"`
	StreakDays         int        `json:"streak_days"`
	CalmPoints         int        `json:"calm_points"`
	SubscriptionPlan   string     `json:"subscription_plan"`
	SubscriptionStatus string     `json:"subscription_status"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// NewRemoteProfile maps a local profile onto a row for identity id.
func NewRemoteProfile(id string, p engine.UserProfile) RemoteProfile {
	return RemoteProfile{
		ID:                 id,
		Email:              p.Email,
		Name:               p.Name,
		Pseudonym:          p.Pseudonym,
		Avatar:             p.Avatar,
		Mood:               string(p.Mood),
		StressType:         string(p.StressType),
		MusicPreference:    string(p.MusicPreference),
		Level:              p.Level,
		XP:                 p.XP,
		StreakDays:         p.StreakDays,
		CalmPoints:         p.CalmPoints,
		SubscriptionPlan:   p.SubscriptionPlan,
		SubscriptionStatus: p.SubscriptionStatus,
	}
}

// MirrorPatch lists the locally owned fields pushed on every change.
// Subscription fields belong to the server and are never pushed.
func MirrorPatch(p engine.UserProfile, now time.Time) map[string]any {
	return map[string]any{
		"name":             p.Name,
		"pseudonym":        p.Pseudonym,
		"email":            p.Email,
		"avatar":           p.Avatar,
		"mood":             string(p.Mood),
		"stress_type":      string(p.StressType),
		"music_preference": string(p.MusicPreference),
		"level":            p.Level,
		"xp":               p.XP,
		"streak_days":      p.StreakDays,
		"calm_points":      p.CalmPoints,
		"updated_at":       now.UTC().Format(time.RFC3339),
	}
}

// ProfileClient is a PostgREST client for the users table.
type ProfileClient struct {
	BaseURL string
	AnonKey string
	HTTP    *http.Client
}

func NewProfileClient(baseURL, anonKey string, timeout time.Duration) *ProfileClient {
	return &ProfileClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		AnonKey: anonKey,
		HTTP:    NewHTTPClient(timeout),
	}
}

func (c *ProfileClient) header() http.Header {
	h := http.Header{}
	h.Set("apikey", c.AnonKey)
	h.Set("Authorization", "Bearer "+c.AnonKey)
	return h
}

func (c *ProfileClient) usersURL(id string) string {
	u := c.BaseURL + "/rest/v1/users"
	if id != "" {
		u += "?id=eq." + url.QueryEscape(id)
	}
	return u
}

// Fetch returns the row for id, or engine.ErrNotFound.
func (c *ProfileClient) Fetch(ctx context.Context, id string) (*RemoteProfile, error) {
	var rows []RemoteProfile
	if err := doJSON(ctx, c.HTTP, http.MethodGet, c.usersURL(id)+"&select=*", c.header(), nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("profile %s: %w", id, engine.ErrNotFound)
	}
	return &rows[0], nil
}

func (c *ProfileClient) Create(ctx context.Context, p RemoteProfile) (*RemoteProfile, error) {
	h := c.header()
	h.Set("Prefer", "return=representation")
	var rows []RemoteProfile
	if err := doJSON(ctx, c.HTTP, http.MethodPost, c.usersURL(""), h, []RemoteProfile{p}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &p, nil
	}
	return &rows[0], nil
}

func (c *ProfileClient) Update(ctx context.Context, id string, patch map[string]any) error {
	h := c.header()
	h.Set("Prefer", "return=minimal")
	return doJSON(ctx, c.HTTP, http.MethodPatch, c.usersURL(id), h, patch, nil)
}
