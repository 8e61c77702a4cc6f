package quiz

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/wordfill/internal/ledger"
	"github.com/abhisek/wordfill/internal/llm"
	"github.com/abhisek/wordfill/internal/router"
	"github.com/abhisek/wordfill/internal/screen"
	"github.com/abhisek/wordfill/internal/screens/summary"
	"github.com/abhisek/wordfill/internal/sentences"
	"github.com/abhisek/wordfill/internal/ui/components"
	"github.com/abhisek/wordfill/internal/ui/layout"
)

const (
	// maxRecent bounds how many past targets are sent as "avoid" hints.
	maxRecent = 10
	// maxReview bounds the review list passed to the source.
	maxReview = 8
)

// QuizScreen asks fill-in-the-blank questions and records the outcome of
// each in the ledger.
type QuizScreen struct {
	ledger *ledger.Ledger
	source sentences.Source
	logger *slog.Logger

	ctx       context.Context
	sessionID string
	started   time.Time

	question *sentences.Question
	choice   components.MultiChoice
	loading  bool

	showingFeedback bool
	lastCorrect     bool
	lastLevel       ledger.Level

	recent     []string
	round      summary.Round
	promotions []summary.Promotion

	errMsg     string // fatal: source could not produce a question
	storageErr string // shown inline, play continues
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New creates a QuizScreen. Each screen is one round with its own session id.
func New(lg *ledger.Ledger, source sentences.Source, logger *slog.Logger) *QuizScreen {
	if logger == nil {
		logger = slog.Default()
	}
	sessionID := uuid.New().String()
	return &QuizScreen{
		ledger:    lg,
		source:    source,
		logger:    logger.With("component", "quiz", "session_id", sessionID),
		ctx:       llm.WithSessionID(context.Background(), sessionID),
		sessionID: sessionID,
		started:   time.Now(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.question != nil || s.loading {
		return nil
	}
	return s.nextQuestion()
}

func (s *QuizScreen) Title() string {
	return "Play"
}

func (s *QuizScreen) HandlesBack() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.showingFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next"},
			{Key: "Esc", Description: "End round"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-4", Description: "Pick"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End round"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return s.handleQuestionReady(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// nextQuestion fetches the next question asynchronously.
func (s *QuizScreen) nextQuestion() tea.Cmd {
	s.loading = true
	s.question = nil
	s.showingFeedback = false

	in := sentences.SourceInput{
		Recent: append([]string(nil), s.recent...),
		Review: s.ledger.ReviewWords(maxReview),
	}
	ctx, source := s.ctx, s.source
	return func() tea.Msg {
		q, err := source.Next(ctx, in)
		return questionReadyMsg{Question: q, Err: err}
	}
}

func (s *QuizScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.logger.Error("no question available", "error", msg.Err)
		if errors.Is(msg.Err, sentences.ErrNoQuestions) {
			s.errMsg = "The sentence bank is empty. Import some sentences first."
		} else {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}

	q := msg.Question
	s.question = q
	s.choice = components.NewMultiChoice(q.Options, indexOf(q.Options, q.Word))
	s.round.Asked++
	s.recent = append(s.recent, q.Word)
	if len(s.recent) > maxRecent {
		s.recent = s.recent[len(s.recent)-maxRecent:]
	}

	s.storageErr = ""
	if err := s.ledger.MarkSeen(s.ctx, q.Word); err != nil {
		s.storageErr = err.Error()
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, s.end()
	}
	if key == "esc" {
		return s, s.end()
	}
	if s.showingFeedback {
		return s, s.nextQuestion()
	}
	if s.question == nil {
		return s, nil
	}

	var chosen bool
	s.choice, chosen = s.choice.Update(msg)
	if chosen {
		s.submit(s.choice.Chosen())
	}
	return s, nil
}

// submit scores choice and records a correct guess.
func (s *QuizScreen) submit(choice string) {
	q := s.question
	s.showingFeedback = true
	s.lastCorrect = q.IsCorrect(choice)

	before := s.ledger.MasteryLevel(q.Word)
	if s.lastCorrect {
		s.round.Correct++
		if err := s.ledger.MarkGuessed(s.ctx, q.Word); err != nil {
			s.storageErr = err.Error()
		}
	}
	s.lastLevel = s.ledger.MasteryLevel(q.Word)
	if s.lastLevel > before {
		s.promote(q.Word, s.lastLevel)
	}

	s.logger.Debug("answer", "word", q.Word, "choice", choice, "correct", s.lastCorrect, "level", s.lastLevel.String())
}

// end leaves the round. A round with answered questions shows its summary.
func (s *QuizScreen) end() tea.Cmd {
	round := s.round
	if s.question != nil && !s.showingFeedback {
		// The question on screen was never answered.
		round.Asked--
	}
	if round.Asked <= 0 {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}

	round.Duration = time.Since(s.started)
	round.Promotions = append([]summary.Promotion(nil), s.promotions...)

	s.logger.Info("round finished", "asked", round.Asked, "correct", round.Correct)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(round)}
	}
}

// promote records that word reached level, keeping first-promotion order.
func (s *QuizScreen) promote(word string, level ledger.Level) {
	for i := range s.promotions {
		if s.promotions[i].Word == word {
			s.promotions[i].Level = level
			return
		}
	}
	s.promotions = append(s.promotions, summary.Promotion{Word: word, Level: level})
}

func indexOf(options []string, word string) int {
	for i, o := range options {
		if o == word {
			return i
		}
	}
	return -1
}
