package engine

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Avatars is the glyph set offered by the profile editor.
var Avatars = []string{
	"🧑‍🎓", "👨‍🎓", "👩‍🎓", "🤓", "😊", "🌟", "🚀", "💪", "🧠", "❤️",
	"🐱", "🐶", "🦋", "🌸", "🌿", "🌊", "🍃", "🌙", "☀️", "🌈",
}

// ProfilePatch lists editable profile fields. Nil fields are kept; progression
// counters are not editable.
type ProfilePatch struct {
	Name            *string
	Pseudonym       *string
	Email           *string
	Avatar          *string
	Mood            *Mood
	StressType      *StressType
	MusicPreference *MusicPreference
}

func (p ProfilePatch) apply(dst *UserProfile) error {
	out := *dst
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if utf8.RuneCountInString(name) > 80 {
			return invalid("name", "too long (max 80)")
		}
		out.Name = name
	}
	if p.Pseudonym != nil {
		out.Pseudonym = strings.TrimSpace(*p.Pseudonym)
	}
	if p.Email != nil {
		email := strings.TrimSpace(*p.Email)
		if email != "" {
			addr, err := mail.ParseAddress(email)
			if err != nil {
				return invalid("email", "%v", err)
			}
			email = addr.Address
		}
		out.Email = email
	}
	if p.Avatar != nil {
		avatar := strings.TrimSpace(*p.Avatar)
		if avatar == "" {
			return invalid("avatar", "is required")
		}
		out.Avatar = avatar
	}
	if p.Mood != nil {
		if !p.Mood.IsValid() {
			return invalid("mood", "unknown value %q", *p.Mood)
		}
		out.Mood = *p.Mood
	}
	if p.StressType != nil {
		if !p.StressType.IsValid() {
			return invalid("stressType", "unknown value %q", *p.StressType)
		}
		out.StressType = *p.StressType
	}
	if p.MusicPreference != nil {
		if !p.MusicPreference.IsValid() {
			return invalid("musicPreference", "unknown value %q", *p.MusicPreference)
		}
		out.MusicPreference = *p.MusicPreference
	}
	*dst = out
	return nil
}

// UpdateProfile applies an edit. The first time a name is set the profile
// completion reward is granted.
func (s *Service) UpdateProfile(ctx context.Context, patch ProfilePatch) (UserProfile, *GrantResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hadName := s.profile.Name != ""
	if err := patch.apply(&s.profile); err != nil {
		return s.profile, nil, err
	}
	s.saveLocked(ctx, SlotProfile, s.profile)
	s.sync.ProfileChanged(s.profile)

	if hadName || s.profile.Name == "" {
		return s.profile, nil, nil
	}
	grant, err := s.grantLocked(ctx, RewardProfileCompleted)
	if err != nil {
		return s.profile, nil, err
	}
	return s.profile, grant, nil
}

func (s *Service) SetMusicPreference(ctx context.Context, pref MusicPreference) error {
	_, _, err := s.UpdateProfile(ctx, ProfilePatch{MusicPreference: &pref})
	return err
}

// ApplySubscription stores the plan and status reported by the remote account.
func (s *Service) ApplySubscription(ctx context.Context, plan, status string) error {
	if _, ok := FindPlan(plan); !ok {
		return invalid("subscriptionPlan", "unknown value %q", plan)
	}
	switch status {
	case StatusActive, StatusInactive, StatusCancelled:
	default:
		return invalid("subscriptionStatus", "unknown value %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.SubscriptionPlan = plan
	s.profile.SubscriptionStatus = status
	s.saveLocked(ctx, SlotProfile, s.profile)
	return nil
}
