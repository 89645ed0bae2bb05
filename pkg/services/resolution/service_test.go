package resolution

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadedpez/cardsharp/internal/types"
	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/entities"
	repo "github.com/fadedpez/cardsharp/pkg/repositories/resolution"
	mock_resolution "github.com/fadedpez/cardsharp/pkg/repositories/resolution/mock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// topSource always picks the last candidate, leaving a deck in its original order
type topSource struct{}

func (topSource) Intn(n int) int { return n - 1 }

type ServiceTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	repo    *mock_resolution.MockRepository
	service *Service
	ctx     context.Context
	now     time.Time
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = mock_resolution.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.service = NewService(s.repo, cards.NewShuffler(topSource{}), WithClock(func() time.Time { return s.now }))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) hand(text string) []entities.Card {
	parsed, err := cards.ParseHand(text)
	s.Require().NoError(err)
	return parsed
}

func (s *ServiceTestSuite) attempt(skill entities.SkillCategory, difficulty entities.OutcomeTier) Attempt {
	return Attempt{
		PlayerID:   "player1",
		ChannelID:  "channel1",
		Action:     "  climb the wall ",
		Skill:      skill,
		Difficulty: difficulty,
	}
}

func (s *ServiceTestSuite) TestResolveDrawsFromShuffledDeck() {
	// Setup: an unshuffled deck starts 2♠ 3♠ 4♠ 5♠ 6♠
	var saved *entities.Resolution
	s.repo.EXPECT().SaveResolution(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, resolution *entities.Resolution) error {
			saved = resolution
			return nil
		})

	// Execute
	result, err := s.service.Resolve(s.ctx, s.attempt(entities.SkillForce, entities.TierCritical))

	// Assert
	s.Require().NoError(err)
	s.Same(saved, result)
	s.Equal("2♠ 3♠ 4♠ 5♠ 6♠", cards.FormatHand(result.Cards))
	s.Equal(entities.StraightFlush, result.HandRank)
	s.Equal("Straight Flush, 6 high", result.Description)
	s.Equal(5, result.SkillBonus)
	s.Equal(entities.TierCritical, result.Tier)
	s.True(result.Success)
	s.Equal("climb the wall", result.Action)
	s.Equal(s.now, result.ResolvedAt)
	_, err = uuid.Parse(result.ID)
	s.NoError(err)
}

func (s *ServiceTestSuite) TestTierAndSkillBonus() {
	testCases := []struct {
		name       string
		hand       string
		skill      entities.SkillCategory
		difficulty entities.OutcomeTier
		bonus      int
		tier       entities.OutcomeTier
		success    bool
	}{
		{
			name:       "high card off skill fails",
			hand:       "2♠ 7♥ 9♣ J♦ A♠",
			skill:      entities.SkillCunning,
			difficulty: entities.TierPartial,
			bonus:      1,
			tier:       entities.TierFailure,
			success:    false,
		},
		{
			name:       "two matching cards lift one step",
			hand:       "2♠ 7♥ 9♣ J♦ A♠",
			skill:      entities.SkillForce,
			difficulty: entities.TierPartial,
			bonus:      2,
			tier:       entities.TierPartial,
			success:    true,
		},
		{
			name:       "pair with three hearts for charm",
			hand:       "J♥ J♠ 4♥ 8♥ 2♣",
			skill:      entities.SkillCharm,
			difficulty: entities.TierSuccess,
			bonus:      3,
			tier:       entities.TierSuccess,
			success:    true,
		},
		{
			name:       "flush in skill suit caps at critical",
			hand:       "A♦ J♦ 9♦ 7♦ 3♦",
			skill:      entities.SkillWealth,
			difficulty: entities.TierCritical,
			bonus:      5,
			tier:       entities.TierCritical,
			success:    true,
		},
		{
			name:       "full house short of critical",
			hand:       "10♠ 10♥ 10♣ 5♦ 5♠",
			skill:      entities.SkillCharm,
			difficulty: entities.TierCritical,
			bonus:      1,
			tier:       entities.TierGreatSuccess,
			success:    false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Setup
			s.repo.EXPECT().SaveResolution(s.ctx, gomock.Any()).Return(nil)

			// Execute
			result, err := s.service.ResolveWithHand(s.ctx, s.attempt(tc.skill, tc.difficulty), s.hand(tc.hand))

			// Assert
			s.Require().NoError(err)
			s.Equal(tc.bonus, result.SkillBonus)
			s.Equal(tc.tier, result.Tier)
			s.Equal(tc.success, result.Success)
		})
	}
}

func (s *ServiceTestSuite) TestInvalidAttempts() {
	valid := s.attempt(entities.SkillForce, entities.TierSuccess)

	testCases := []struct {
		name   string
		modify func(a *Attempt)
	}{
		{"missing player", func(a *Attempt) { a.PlayerID = "" }},
		{"missing channel", func(a *Attempt) { a.ChannelID = "" }},
		{"blank action", func(a *Attempt) { a.Action = "   " }},
		{"unknown skill", func(a *Attempt) { a.Skill = "luck" }},
		{"difficulty too low", func(a *Attempt) { a.Difficulty = 0 }},
		{"difficulty too high", func(a *Attempt) { a.Difficulty = 6 }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			attempt := valid
			tc.modify(&attempt)

			// Execute
			result, err := s.service.Resolve(s.ctx, attempt)

			// Assert: the repository mock has no expectations, so nothing may be saved
			s.Nil(result)
			s.ErrorIs(err, ErrInvalidAttempt)
			s.True(types.IsGameError(err, types.ErrInvalidArgument))
		})
	}
}

func (s *ServiceTestSuite) TestResolveWithBadHand() {
	// Execute
	_, err := s.service.ResolveWithHand(s.ctx, s.attempt(entities.SkillForce, entities.TierSuccess), s.hand("As Ks"))

	// Assert
	s.True(types.IsGameError(err, types.ErrInvalidHandSize))
}

func (s *ServiceTestSuite) TestRepositoryFailure() {
	// Setup
	s.repo.EXPECT().SaveResolution(s.ctx, gomock.Any()).Return(errors.New("database is locked"))

	// Execute
	result, err := s.service.Resolve(s.ctx, s.attempt(entities.SkillForce, entities.TierSuccess))

	// Assert
	s.Nil(result)
	s.True(types.IsGameError(err, types.ErrDatabaseError))
	s.ErrorContains(err, "database is locked")
}

func (s *ServiceTestSuite) TestCustomPolicy() {
	// Setup
	service := NewService(s.repo, nil, WithPolicy(everythingSucceeds{}))
	s.repo.EXPECT().SaveResolution(s.ctx, gomock.Any()).Return(nil)

	// Execute
	result, err := service.ResolveWithHand(s.ctx, s.attempt(entities.SkillForce, entities.TierSuccess), s.hand("2♠ 7♥ 9♣ J♦ A♠"))

	// Assert
	s.Require().NoError(err)
	s.Equal(entities.TierSuccess, result.Tier)
	s.Zero(result.SkillBonus)
	s.True(result.Success)
}

type everythingSucceeds struct{}

func (everythingSucceeds) Tier(entities.HandRank) entities.OutcomeTier { return entities.TierSuccess }
func (everythingSucceeds) Skill(entities.Suit) entities.SkillCategory  { return "" }

func (s *ServiceTestSuite) TestShowdown() {
	// Setup
	hands := map[string][]entities.Card{
		"carol": s.hand("J♣ J♦ 4♦ 8♥ 2♥"),
		"alice": s.hand("2♠ 7♥ 9♣ J♦ A♠"),
		"bob":   s.hand("J♠ J♥ 4♣ 8♦ 2♠"),
		"dave":  s.hand("A♠ 2♥ 3♣ 4♦ 5♠"),
	}

	// Execute
	result, err := s.service.Showdown(s.ctx, hands)

	// Assert
	s.Require().NoError(err)
	s.Equal([]string{"dave"}, result.Winners)
	s.Require().Len(result.Standings, 4)
	s.Equal("dave", result.Standings[0].Name)
	s.Equal("bob", result.Standings[1].Name, "Tied hands keep name order")
	s.Equal("carol", result.Standings[2].Name)
	s.Equal("alice", result.Standings[3].Name)
}

func (s *ServiceTestSuite) TestShowdownSplitPot() {
	// Execute
	result, err := s.service.Showdown(s.ctx, map[string][]entities.Card{
		"bob":   s.hand("J♠ J♥ 4♣ 8♦ 2♠"),
		"carol": s.hand("J♣ J♦ 4♦ 8♥ 2♥"),
		"alice": s.hand("2♠ 7♥ 9♣ J♦ A♠"),
	})

	// Assert
	s.Require().NoError(err)
	s.Equal([]string{"bob", "carol"}, result.Winners)
}

func (s *ServiceTestSuite) TestShowdownErrors() {
	_, err := s.service.Showdown(s.ctx, nil)
	s.ErrorIs(err, ErrNoHands)
	s.True(types.IsGameError(err, types.ErrInvalidArgument))

	_, err = s.service.Showdown(s.ctx, map[string][]entities.Card{"short": s.hand("As Ks Qs")})
	s.ErrorContains(err, `hand "short"`)
	s.True(types.IsGameError(err, types.ErrInvalidHandSize))
}

func (s *ServiceTestSuite) TestGet() {
	// Setup
	stored := &entities.Resolution{ID: "r1"}
	s.repo.EXPECT().GetResolution(s.ctx, "r1").Return(stored, nil)
	s.repo.EXPECT().GetResolution(s.ctx, "missing").Return(nil, repo.ErrResolutionNotFound)
	s.repo.EXPECT().GetResolution(s.ctx, "broken").Return(nil, errors.New("io error"))

	// Execute & Assert
	got, err := s.service.Get(s.ctx, "r1")
	s.Require().NoError(err)
	s.Same(stored, got)

	_, err = s.service.Get(s.ctx, "missing")
	s.True(types.IsGameError(err, types.ErrResolutionNotFound))
	s.ErrorIs(err, repo.ErrResolutionNotFound)

	_, err = s.service.Get(s.ctx, "broken")
	s.True(types.IsGameError(err, types.ErrDatabaseError))
}

func (s *ServiceTestSuite) TestHistory() {
	// Setup
	stored := []*entities.Resolution{{ID: "r2"}, {ID: "r1"}}
	s.repo.EXPECT().GetPlayerResolutions(s.ctx, "player1", 10).Return(stored, nil)

	// Execute
	history, err := s.service.History(s.ctx, "player1", 10)

	// Assert
	s.Require().NoError(err)
	s.Equal(stored, history)

	_, err = s.service.History(s.ctx, "", 10)
	s.True(types.IsGameError(err, types.ErrInvalidArgument))
}
