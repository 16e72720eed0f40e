package engine

import (
	"context"
	"fmt"
)

const (
	BubblesPerRound  = 10
	PuzzleStep       = 10
	PuzzleCompletion = 100
)

type Plant struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Progress    int    `json:"progress"`
	MaxProgress int    `json:"maxProgress"`
}

func (p Plant) Grown() bool { return p.Progress >= p.MaxProgress }

// Emoji shows the growth stage.
func (p Plant) Emoji() string {
	switch {
	case p.Progress <= 0:
		return "🌱"
	case p.Progress*2 < p.MaxProgress:
		return "🌿"
	case p.Progress < p.MaxProgress:
		return "🌸"
	default:
		return "🌺"
	}
}

// GardenState is the relaxation-games progress kept on the profile.
type GardenState struct {
	Plants         []Plant `json:"plants"`
	PuzzleProgress int     `json:"puzzleProgress"`
	BubblesLeft    int     `json:"bubblesLeft"`
}

func NewGardenState() GardenState {
	return GardenState{
		Plants: []Plant{
			{ID: 1, Name: "Semilla de la Paciencia", MaxProgress: 5},
			{ID: 2, Name: "Brote de la Calma", MaxProgress: 8},
			{ID: 3, Name: "Flor de la Serenidad", MaxProgress: 12},
		},
		BubblesLeft: BubblesPerRound,
	}
}

// normalized repairs state written by older versions or edited by hand.
func (g GardenState) normalized() GardenState {
	def := NewGardenState()
	if len(g.Plants) == 0 {
		g.Plants = def.Plants
	} else {
		g.Plants = append([]Plant(nil), g.Plants...)
	}
	for i := range g.Plants {
		g.Plants[i].Progress = max(0, min(g.Plants[i].Progress, g.Plants[i].MaxProgress))
	}
	if g.BubblesLeft <= 0 || g.BubblesLeft > BubblesPerRound {
		g.BubblesLeft = BubblesPerRound
	}
	if g.PuzzleProgress < 0 || g.PuzzleProgress >= PuzzleCompletion {
		g.PuzzleProgress = 0
	}
	return g
}

type GardenResult struct {
	Garden GardenState
	Grants []*GrantResult
}

func (s *Service) gardenResultLocked(ctx context.Context, rewards ...Reward) (*GardenResult, error) {
	res := &GardenResult{}
	for _, r := range rewards {
		g, err := s.grantLocked(ctx, r)
		if err != nil {
			return nil, err
		}
		res.Grants = append(res.Grants, g)
	}
	res.Garden = s.profile.Garden.normalized()
	return res, nil
}

// WaterPlant advances a plant by one step. The final step grants the growth
// reward instead of the watering reward.
func (s *Service) WaterPlant(ctx context.Context, plantID int) (*GardenResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plants := s.profile.Garden.Plants
	idx := -1
	for i, p := range plants {
		if p.ID == plantID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("plant %d: %w", plantID, ErrNotFound)
	}
	if plants[idx].Grown() {
		return nil, invalid("plant", "%s is already fully grown", plants[idx].Name)
	}

	plants = append([]Plant(nil), plants...)
	plants[idx].Progress++
	s.profile.Garden.Plants = plants

	if plants[idx].Grown() {
		return s.gardenResultLocked(ctx, RewardPlantGrown)
	}
	return s.gardenResultLocked(ctx, RewardPlantWatered)
}

// PopBubble pops one bubble of the current round. Clearing a round grants a
// bonus and starts a fresh one.
func (s *Service) PopBubble(ctx context.Context) (*GardenResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile.Garden.BubblesLeft--
	if s.profile.Garden.BubblesLeft > 0 {
		return s.gardenResultLocked(ctx, RewardBubblePop)
	}
	s.profile.Garden.BubblesLeft = BubblesPerRound
	return s.gardenResultLocked(ctx, RewardBubblePop, RewardBubbleRound)
}

func (s *Service) CompleteMandala(ctx context.Context) (*GardenResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gardenResultLocked(ctx, RewardMandala)
}

// AdvancePuzzle places one more piece. Reaching completion grants the puzzle
// reward and resets progress.
func (s *Service) AdvancePuzzle(ctx context.Context) (*GardenResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.profile.Garden.PuzzleProgress + PuzzleStep
	if next >= PuzzleCompletion {
		s.profile.Garden.PuzzleProgress = 0
		return s.gardenResultLocked(ctx, RewardPuzzleCompleted)
	}
	s.profile.Garden.PuzzleProgress = next
	return s.gardenResultLocked(ctx, RewardPuzzleStep)
}
