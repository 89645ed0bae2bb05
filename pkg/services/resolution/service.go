package resolution

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/internal/types"
	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/entities"
	repo "github.com/fadedpez/cardsharp/pkg/repositories/resolution"
	"github.com/fadedpez/cardsharp/pkg/services/poker"
	"github.com/google/uuid"
)

var (
	ErrInvalidAttempt = errors.New("invalid attempt")
	ErrNoHands        = errors.New("showdown needs at least one hand")
)

// Attempt is one player's try at an action
type Attempt struct {
	PlayerID   string
	ChannelID  string
	Action     string
	Skill      entities.SkillCategory
	Difficulty entities.OutcomeTier
}

// Standing is one named hand in a showdown
type Standing struct {
	Name       string
	Cards      []entities.Card
	Evaluation *entities.HandEvaluation
}

// ShowdownResult lists every hand strongest first, and who won
type ShowdownResult struct {
	Standings []Standing
	Winners   []string
}

// Service resolves action attempts by dealing and evaluating poker hands
type Service struct {
	repo     repo.Repository
	shuffler *cards.Shuffler
	policy   Policy
	logger   *logging.Logger
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithPolicy replaces DefaultPolicy
func WithPolicy(policy Policy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

// WithLogger sets the service logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logging.OrDefault(logger)
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a resolution service; a nil shuffler uses a randomly seeded one
func NewService(repository repo.Repository, shuffler *cards.Shuffler, opts ...Option) *Service {
	if shuffler == nil {
		shuffler = cards.NewShuffler(nil)
	}

	s := &Service{
		repo:     repository,
		shuffler: shuffler,
		policy:   DefaultPolicy{},
		logger:   logging.Default,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve shuffles a fresh deck, draws a hand and resolves the attempt with it
func (s *Service) Resolve(ctx context.Context, attempt Attempt) (*entities.Resolution, error) {
	if err := validateAttempt(attempt); err != nil {
		return nil, err
	}

	hand, _, err := cards.Draw(s.shuffler.Shuffle(nil), poker.HandSize)
	if err != nil {
		return nil, err
	}

	return s.resolve(ctx, attempt, hand)
}

// ResolveWithHand resolves the attempt with a hand the caller already dealt
func (s *Service) ResolveWithHand(ctx context.Context, attempt Attempt, hand []entities.Card) (*entities.Resolution, error) {
	if err := validateAttempt(attempt); err != nil {
		return nil, err
	}
	return s.resolve(ctx, attempt, hand)
}

func (s *Service) resolve(ctx context.Context, attempt Attempt, hand []entities.Card) (*entities.Resolution, error) {
	eval, err := poker.Evaluate(hand)
	if err != nil {
		return nil, err
	}

	bonus, tier := applyBonus(s.policy, hand, attempt.Skill, s.policy.Tier(eval.Rank))

	resolution := &entities.Resolution{
		ID:          uuid.New().String(),
		PlayerID:    attempt.PlayerID,
		ChannelID:   attempt.ChannelID,
		Action:      strings.TrimSpace(attempt.Action),
		Skill:       attempt.Skill,
		Difficulty:  attempt.Difficulty,
		Cards:       append([]entities.Card(nil), hand...),
		HandRank:    eval.Rank,
		Score:       eval.Score,
		Description: eval.Description,
		SkillBonus:  bonus,
		Tier:        tier,
		Success:     tier >= attempt.Difficulty,
		ResolvedAt:  s.now(),
	}

	if err := s.repo.SaveResolution(ctx, resolution); err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to save resolution", err)
	}

	s.logger.Info("Player %s attempted %q (%s vs %s): %s -> %s",
		resolution.PlayerID, resolution.Action, resolution.Skill, resolution.Difficulty,
		resolution.Description, resolution.Tier)
	return resolution, nil
}

// Showdown evaluates several named hands and ranks them, strongest first.
// Names tied for the best hand all win.
func (s *Service) Showdown(ctx context.Context, hands map[string][]entities.Card) (*ShowdownResult, error) {
	if len(hands) == 0 {
		return nil, types.WrapError(types.ErrInvalidArgument, "no hands to compare", ErrNoHands)
	}

	names := make([]string, 0, len(hands))
	for name := range hands {
		names = append(names, name)
	}
	sort.Strings(names)

	standings := make([]Standing, len(names))
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		eval, err := poker.Evaluate(hands[name])
		if err != nil {
			return nil, fmt.Errorf("hand %q: %w", name, err)
		}
		standings[i] = Standing{Name: name, Cards: hands[name], Evaluation: eval}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return poker.Compare(standings[i].Evaluation, standings[j].Evaluation) > 0
	})

	evals := make([]*entities.HandEvaluation, len(standings))
	for i, standing := range standings {
		evals[i] = standing.Evaluation
	}

	winners := []string{}
	for _, i := range poker.Winners(evals) {
		winners = append(winners, standings[i].Name)
	}

	return &ShowdownResult{Standings: standings, Winners: winners}, nil
}

// Get returns a stored resolution
func (s *Service) Get(ctx context.Context, id string) (*entities.Resolution, error) {
	resolution, err := s.repo.GetResolution(ctx, id)
	if errors.Is(err, repo.ErrResolutionNotFound) {
		return nil, types.WrapError(types.ErrResolutionNotFound, fmt.Sprintf("no resolution %s", id), err)
	}
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load resolution", err)
	}
	return resolution, nil
}

// History returns a player's most recent resolutions, newest first
func (s *Service) History(ctx context.Context, playerID string, limit int) ([]*entities.Resolution, error) {
	if playerID == "" {
		return nil, types.WrapError(types.ErrInvalidArgument, "player ID is required", ErrInvalidAttempt)
	}

	resolutions, err := s.repo.GetPlayerResolutions(ctx, playerID, limit)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load history", err)
	}
	return resolutions, nil
}

func validateAttempt(attempt Attempt) error {
	switch {
	case attempt.PlayerID == "":
		return invalidAttempt("player ID is required")
	case attempt.ChannelID == "":
		return invalidAttempt("channel ID is required")
	case strings.TrimSpace(attempt.Action) == "":
		return invalidAttempt("action is required")
	case !attempt.Skill.Valid():
		return invalidAttempt(fmt.Sprintf("unknown skill %q", attempt.Skill))
	case !attempt.Difficulty.Valid():
		return invalidAttempt(fmt.Sprintf("difficulty must be between %d and %d", entities.TierFailure, entities.TierCritical))
	}
	return nil
}

func invalidAttempt(msg string) error {
	return types.WrapError(types.ErrInvalidArgument, msg, ErrInvalidAttempt)
}
