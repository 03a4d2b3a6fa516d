package survey

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"poisurvey/pkg/utils"
)

// Action is one discrete user or system event applied to a session.
type Action interface {
	action()
}

type GiveConsent struct{}

type SubmitProfile struct {
	Profile Profile
}

// ContentReady is raised once generation for the submitted profile finished.
type ContentReady struct {
	POIs    []POI
	Content map[string]GeneratedContent
}

type SubmitComparison struct {
	Answers StepAnswers
	At      time.Time
}

type SubmitFinal struct {
	Feedback FinalFeedback
}

type Restart struct {
	UserID string
}

func (GiveConsent) action()      {}
func (SubmitProfile) action()    {}
func (ContentReady) action()     {}
func (SubmitComparison) action() {}
func (SubmitFinal) action()      {}
func (Restart) action()          {}

// Outcome names the side effects the caller must perform after a successful
// transition.
type Outcome struct {
	Generate         bool
	FlushComparisons bool
	FlushFinal       bool
}

// Machine reduces (session, action) into the next session state. It never
// performs I/O.
type Machine struct {
	coin func() bool
}

// NewMachine uses coin for the A/B slot draw; nil means a fair random coin.
func NewMachine(coin func() bool) *Machine {
	if coin == nil {
		coin = func() bool { return rand.IntN(2) == 0 }
	}
	return &Machine{coin: coin}
}

func (m *Machine) Coin() bool {
	return m.coin()
}

func (m *Machine) Dispatch(s *Session, a Action) (Outcome, error) {
	switch act := a.(type) {
	case GiveConsent:
		return m.giveConsent(s)
	case SubmitProfile:
		return m.submitProfile(s, act)
	case ContentReady:
		return m.contentReady(s, act)
	case SubmitComparison:
		return m.submitComparison(s, act)
	case SubmitFinal:
		return m.submitFinal(s, act)
	case Restart:
		return m.restart(s, act)
	default:
		return Outcome{}, fmt.Errorf("%w: unknown action %T", utils.ErrInvalidTransition, a)
	}
}

func (m *Machine) giveConsent(s *Session) (Outcome, error) {
	if s.State.Step != StepAwaitingConsent {
		return Outcome{}, fmt.Errorf("%w: consent in %s", utils.ErrInvalidTransition, s.State.Step)
	}
	s.ConsentGiven = true
	s.State = State{Step: StepIntake}
	return Outcome{}, nil
}

func (m *Machine) submitProfile(s *Session, act SubmitProfile) (Outcome, error) {
	if !s.ConsentGiven {
		return Outcome{}, utils.ErrConsentRequired
	}
	if s.State.Step != StepIntake {
		return Outcome{}, fmt.Errorf("%w: intake in %s", utils.ErrInvalidTransition, s.State.Step)
	}
	if problems := ValidateProfile(act.Profile); len(problems) > 0 {
		return Outcome{}, utils.NewValidationError(problems)
	}

	profile := act.Profile
	profile.UserID = s.UserID
	profile.City = strings.TrimSpace(profile.City)
	s.Profile = &profile
	s.State = State{Step: StepGeneratingContent}
	return Outcome{Generate: true}, nil
}

func (m *Machine) contentReady(s *Session, act ContentReady) (Outcome, error) {
	if s.State.Step != StepGeneratingContent {
		return Outcome{}, fmt.Errorf("%w: content ready in %s", utils.ErrInvalidTransition, s.State.Step)
	}
	s.POIs = append([]POI(nil), act.POIs...)
	s.Content = make(map[string]GeneratedContent, len(act.Content))
	for id, c := range act.Content {
		s.Content[id] = c
	}
	if len(s.POIs) == 0 {
		s.State = State{Step: StepClosingSurvey}
		return Outcome{}, nil
	}
	s.State = State{Step: StepComparison, Index: 0}
	return Outcome{}, nil
}

func (m *Machine) submitComparison(s *Session, act SubmitComparison) (Outcome, error) {
	if !s.ConsentGiven {
		return Outcome{}, utils.ErrConsentRequired
	}
	if s.State.Step != StepComparison {
		return Outcome{}, fmt.Errorf("%w: comparison answers in %s", utils.ErrInvalidTransition, s.State.Step)
	}
	if act.Answers.Index != s.State.Index {
		return Outcome{}, fmt.Errorf("%w: got step %d, current step is %d",
			utils.ErrStepMismatch, act.Answers.Index, s.State.Index)
	}
	if problems := ValidateAnswers(act.Answers); len(problems) > 0 {
		return Outcome{}, utils.NewValidationError(problems)
	}

	poi, _ := s.CurrentPOI()
	manualFirst := s.ManualFirst(poi.ID, m.coin)
	s.Answers[act.Answers.Index] = act.Answers
	s.Records = append(s.Records, BuildRecord(s.UserID, poi, manualFirst, act.Answers, act.At))

	if s.State.Index < len(s.POIs)-1 {
		s.State = State{Step: StepComparison, Index: s.State.Index + 1}
		return Outcome{}, nil
	}
	s.State = State{Step: StepClosingSurvey}
	return Outcome{FlushComparisons: true}, nil
}

func (m *Machine) submitFinal(s *Session, act SubmitFinal) (Outcome, error) {
	if s.State.Step != StepClosingSurvey {
		return Outcome{}, fmt.Errorf("%w: final feedback in %s", utils.ErrInvalidTransition, s.State.Step)
	}
	if problems := ValidateFinal(act.Feedback); len(problems) > 0 {
		return Outcome{}, utils.NewValidationError(problems)
	}

	final := act.Feedback
	final.UserID = s.UserID
	final.LotteryEmail = strings.TrimSpace(final.LotteryEmail)
	s.Final = &final
	s.State = State{Step: StepDone}
	return Outcome{FlushFinal: true}, nil
}

func (m *Machine) restart(s *Session, act Restart) (Outcome, error) {
	if act.UserID == "" {
		return Outcome{}, fmt.Errorf("%w: restart needs a fresh user id", utils.ErrInvalidTransition)
	}
	fresh := NewSession(s.ID, act.UserID, s.CreatedAt)
	fresh.ConsentGiven = s.ConsentGiven
	if fresh.ConsentGiven {
		fresh.State = State{Step: StepIntake}
	}
	*s = *fresh
	return Outcome{}, nil
}
