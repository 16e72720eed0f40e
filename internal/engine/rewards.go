package engine

// RewardSource names the interaction that earned a reward. It is also the
// ledger key used by achievements.
type RewardSource string

const (
	SourceTaskCompleted    RewardSource = "task_completed"
	SourceTaskAdded        RewardSource = "task_added"
	SourceStressAssessment RewardSource = "stress_assessment"
	SourceMeditation       RewardSource = "meditation"
	SourceChatMessage      RewardSource = "chat_message"
	SourceMoodCheckIn      RewardSource = "mood_checkin"
	SourceJournalEntry     RewardSource = "journal_entry"
	SourceMusicTest        RewardSource = "music_test"
	SourceMusicTrack       RewardSource = "music_track"
	SourceProfileCompleted RewardSource = "profile_completed"
	SourceCalmNote         RewardSource = "calm_note"
	SourceBubblePop        RewardSource = "bubble_pop"
	SourceBubbleRound      RewardSource = "bubble_round"
	SourcePlantWatered     RewardSource = "plant_watered"
	SourcePlantGrown       RewardSource = "plant_grown"
	SourceMandala          RewardSource = "mandala"
	SourcePuzzleStep       RewardSource = "puzzle_step"
	SourcePuzzleCompleted  RewardSource = "puzzle_completed"
	SourceManual           RewardSource = "manual"
)

// Reward is an amount of XP and/or calm points attributed to a source.
type Reward struct {
	Source     RewardSource
	XP         int
	CalmPoints int
}

var (
	RewardTaskCompleted    = Reward{Source: SourceTaskCompleted, XP: 15}
	RewardTaskAdded        = Reward{Source: SourceTaskAdded, XP: 10}
	RewardStressAssessment = Reward{Source: SourceStressAssessment, XP: 30}
	RewardMeditation       = Reward{Source: SourceMeditation, XP: 20}
	RewardChatMessage      = Reward{Source: SourceChatMessage, XP: 5}
	RewardMoodCheckIn      = Reward{Source: SourceMoodCheckIn, XP: 15}
	RewardJournalEntry     = Reward{Source: SourceJournalEntry, XP: 20}
	RewardMusicTest        = Reward{Source: SourceMusicTest, XP: 25}
	RewardMusicTrack       = Reward{Source: SourceMusicTrack, XP: 5}
	RewardProfileCompleted = Reward{Source: SourceProfileCompleted, XP: 50}
	RewardCalmNote         = Reward{Source: SourceCalmNote, CalmPoints: 10}
	RewardBubblePop        = Reward{Source: SourceBubblePop, CalmPoints: 2}
	RewardBubbleRound      = Reward{Source: SourceBubbleRound, XP: 10}
	RewardPlantWatered     = Reward{Source: SourcePlantWatered, CalmPoints: 5}
	RewardPlantGrown       = Reward{Source: SourcePlantGrown, XP: 25, CalmPoints: 30}
	RewardMandala          = Reward{Source: SourceMandala, XP: 20, CalmPoints: 15}
	RewardPuzzleStep       = Reward{Source: SourcePuzzleStep, CalmPoints: 2}
	RewardPuzzleCompleted  = Reward{Source: SourcePuzzleCompleted, XP: 25, CalmPoints: 20}
)

func (r Reward) validate() error {
	if r.XP < 0 {
		return invalid("xp", "must not be negative (got %d)", r.XP)
	}
	if r.CalmPoints < 0 {
		return invalid("calmPoints", "must not be negative (got %d)", r.CalmPoints)
	}
	if r.XP == 0 && r.CalmPoints == 0 {
		return invalid("reward", "empty reward")
	}
	if r.Source == "" {
		return invalid("source", "is required")
	}
	return nil
}
