package survey

import (
	"maps"
	"slices"
	"time"
)

type Step string

const (
	StepAwaitingConsent   Step = "awaiting_consent"
	StepIntake            Step = "intake"
	StepGeneratingContent Step = "generating_content"
	StepComparison        Step = "comparison"
	StepClosingSurvey     Step = "closing_survey"
	StepDone              Step = "done"
)

// State is the wizard position. Index is only meaningful for StepComparison.
type State struct {
	Step  Step `json:"step"`
	Index int  `json:"index"`
}

// Session is the whole per-respondent context. It is owned by one session and
// passed explicitly to every handler.
type Session struct {
	ID           string                      `json:"id"`
	UserID       string                      `json:"user_id"`
	State        State                       `json:"state"`
	ConsentGiven bool                        `json:"consent_given"`
	Profile      *Profile                    `json:"profile,omitempty"`
	POIs         []POI                       `json:"pois,omitempty"`
	Content      map[string]GeneratedContent `json:"content,omitempty"`
	Order        map[string]bool             `json:"order,omitempty"`
	Answers      map[int]StepAnswers         `json:"answers,omitempty"`
	Records      []ComparisonRecord          `json:"records,omitempty"`
	Final        *FinalFeedback              `json:"final,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
}

func NewSession(id, userID string, now time.Time) *Session {
	return &Session{
		ID:        id,
		UserID:    userID,
		State:     State{Step: StepAwaitingConsent},
		Content:   map[string]GeneratedContent{},
		Order:     map[string]bool{},
		Answers:   map[int]StepAnswers{},
		CreatedAt: now,
	}
}

// Clone returns a deep copy so an action can be applied tentatively.
func (s *Session) Clone() *Session {
	c := *s
	if s.Profile != nil {
		p := *s.Profile
		p.Hobbies = slices.Clone(s.Profile.Hobbies)
		p.Interests = slices.Clone(s.Profile.Interests)
		p.PreferredTravelStyle = slices.Clone(s.Profile.PreferredTravelStyle)
		c.Profile = &p
	}
	if s.Final != nil {
		f := *s.Final
		c.Final = &f
	}
	c.POIs = slices.Clone(s.POIs)
	c.Records = slices.Clone(s.Records)
	c.Content = maps.Clone(s.Content)
	c.Order = maps.Clone(s.Order)
	c.Answers = maps.Clone(s.Answers)
	if c.Content == nil {
		c.Content = map[string]GeneratedContent{}
	}
	if c.Order == nil {
		c.Order = map[string]bool{}
	}
	if c.Answers == nil {
		c.Answers = map[int]StepAnswers{}
	}
	return &c
}

// ManualFirst reports whether the human-authored variant is shown in slot A
// for the POI. The first call flips the coin; later calls return the stored
// result.
func (s *Session) ManualFirst(poiID string, coin func() bool) bool {
	if s.Order == nil {
		s.Order = map[string]bool{}
	}
	if v, ok := s.Order[poiID]; ok {
		return v
	}
	v := coin()
	s.Order[poiID] = v
	return v
}

// CurrentPOI returns the POI of the current comparison step.
func (s *Session) CurrentPOI() (POI, bool) {
	if s.State.Step != StepComparison || s.State.Index < 0 || s.State.Index >= len(s.POIs) {
		return POI{}, false
	}
	return s.POIs[s.State.Index], true
}

// Shown in place of generated text that could not be produced.
const (
	ErrorTitle       = "[Error generating title]"
	ErrorDescription = "[Error generating description]"
)

// ContentFor returns the generated variant for a POI, or the error
// sentinels if nothing was generated.
func (s *Session) ContentFor(poiID string) GeneratedContent {
	if c, ok := s.Content[poiID]; ok {
		return c
	}
	return GeneratedContent{Title: ErrorTitle, Description: ErrorDescription}
}
