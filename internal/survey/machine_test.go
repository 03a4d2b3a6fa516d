package survey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poisurvey/pkg/utils"
)

func validProfile() Profile {
	return Profile{
		Age:                  34,
		Gender:               "Female",
		MaritalStatus:        "Married",
		HasChildren:          "Yes",
		Nationality:          "German",
		City:                 " Berlin ",
		Disability:           "No",
		Pets:                 "No",
		Profession:           "Engineer",
		Hobbies:              []string{"Reading", "Cooking", "Music"},
		Interests:            []string{"History & Culture", "Food & Cuisine", "Architecture"},
		TravelExperience:     "Intermediate",
		PreferredTravelStyle: []string{"Cultural", "Budget", "Road Trips"},
	}
}

func completeAnswers(index int) StepAnswers {
	return StepAnswers{
		Index: index,
		A:     VariantRatings{Significance: "Agree", Trust: "Very", Clarity: "Clear"},
		B:     VariantRatings{Significance: "Disagree", Trust: "Slightly", Clarity: "Unclear"},
		Preferences: Preferences{
			Engaging:    SlotA,
			Relevant:    SlotB,
			Eager:       BothEqually,
			Title:       SlotA,
			Description: SlotA,
		},
	}
}

func twoPOIs() []POI {
	return []POI{
		{ID: "p1", Title: "Old Bridge", Description: "A stone bridge over the river.", ImageSrc: "bridge.jpg"},
		{ID: "p2", Title: "Town Hall", Description: "Gothic town hall on the market square.", ImageSrc: "hall.jpg"},
	}
}

func alwaysManualFirst() bool { return true }

// sessionAtComparison walks a fresh session up to the first comparison step.
func sessionAtComparison(t *testing.T, m *Machine, pois []POI) *Session {
	t.Helper()
	s := NewSession("sess-1", "user-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	_, err := m.Dispatch(s, GiveConsent{})
	require.NoError(t, err)

	out, err := m.Dispatch(s, SubmitProfile{Profile: validProfile()})
	require.NoError(t, err)
	require.True(t, out.Generate)

	content := make(map[string]GeneratedContent, len(pois))
	for _, p := range pois {
		content[p.ID] = GeneratedContent{Title: "AI " + p.Title, Description: "AI text"}
	}
	_, err = m.Dispatch(s, ContentReady{POIs: pois, Content: content})
	require.NoError(t, err)
	return s
}

func TestMachine_TwoPOIScenarioReachesClosingSurvey(t *testing.T) {
	m := NewMachine(alwaysManualFirst)
	s := sessionAtComparison(t, m, twoPOIs())
	assert.Equal(t, State{Step: StepComparison, Index: 0}, s.State)
	assert.Equal(t, "user-1", s.Profile.UserID)
	assert.Equal(t, "Berlin", s.Profile.City)

	at := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)
	out, err := m.Dispatch(s, SubmitComparison{Answers: completeAnswers(0), At: at})
	require.NoError(t, err)
	assert.False(t, out.FlushComparisons)
	assert.Equal(t, State{Step: StepComparison, Index: 1}, s.State)

	out, err = m.Dispatch(s, SubmitComparison{Answers: completeAnswers(1), At: at})
	require.NoError(t, err)
	assert.True(t, out.FlushComparisons)
	assert.Equal(t, StepClosingSurvey, s.State.Step)

	require.Len(t, s.Records, 2)
	for i, r := range s.Records {
		assert.Equal(t, "user-1", r.UserID)
		assert.Equal(t, s.POIs[i].ID, r.POIID)
		assert.True(t, r.IsManualFirst)
		assert.Equal(t, "Agree", r.ManualSignificance)
		assert.Equal(t, "Disagree", r.AISignificance)
		assert.Equal(t, VersionManual, r.EngagingPreference)
		assert.Equal(t, VersionAI, r.RelevantPreference)
		assert.Equal(t, BothEqually, r.EagerPreference)
	}

	out, err = m.Dispatch(s, SubmitFinal{Feedback: FinalFeedback{Comments: "nice"}})
	require.NoError(t, err)
	assert.True(t, out.FlushFinal)
	assert.Equal(t, StepDone, s.State.Step)
	assert.Equal(t, "user-1", s.Final.UserID)
}

func TestMachine_ShortHobbyListIsRejected(t *testing.T) {
	m := NewMachine(alwaysManualFirst)
	s := NewSession("sess-1", "user-1", time.Now())
	_, err := m.Dispatch(s, GiveConsent{})
	require.NoError(t, err)

	p := validProfile()
	p.Hobbies = []string{"Reading", "Music"}
	out, err := m.Dispatch(s, SubmitProfile{Profile: p})

	require.ErrorIs(t, err, utils.ErrValidation)
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Problems, "select at least 3 hobbies")
	assert.False(t, out.Generate)
	assert.Equal(t, StepIntake, s.State.Step)
	assert.Nil(t, s.Profile)
}

func TestMachine_IntakeRequiresConsent(t *testing.T) {
	m := NewMachine(alwaysManualFirst)
	s := NewSession("sess-1", "user-1", time.Now())

	_, err := m.Dispatch(s, SubmitProfile{Profile: validProfile()})
	assert.ErrorIs(t, err, utils.ErrConsentRequired)
	assert.Equal(t, StepAwaitingConsent, s.State.Step)
}

func TestMachine_ResubmittingAStepIsRejected(t *testing.T) {
	m := NewMachine(alwaysManualFirst)
	s := sessionAtComparison(t, m, twoPOIs())

	_, err := m.Dispatch(s, SubmitComparison{Answers: completeAnswers(0), At: time.Now()})
	require.NoError(t, err)

	_, err = m.Dispatch(s, SubmitComparison{Answers: completeAnswers(0), At: time.Now()})
	assert.ErrorIs(t, err, utils.ErrStepMismatch)
	assert.Len(t, s.Records, 1)
	assert.Equal(t, 1, s.State.Index)
}

func TestMachine_IncompleteAnswersListUnansweredQuestions(t *testing.T) {
	m := NewMachine(alwaysManualFirst)
	s := sessionAtComparison(t, m, twoPOIs())

	a := completeAnswers(0)
	a.B.Trust = ""
	a.Preferences.Title = NoSelection
	_, err := m.Dispatch(s, SubmitComparison{Answers: a, At: time.Now()})

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 2)
	assert.Contains(t, verr.Problems, "which title was more appealing?")
	assert.Empty(t, s.Records)
	assert.Equal(t, 0, s.State.Index)
}

func TestMachine_EmptyCatalogSkipsToClosingSurvey(t *testing.T) {
	m := NewMachine(alwaysManualFirst)
	s := sessionAtComparison(t, m, nil)

	assert.Equal(t, StepClosingSurvey, s.State.Step)
	assert.Empty(t, s.Records)
}

func TestMachine_SlotOrderIsDrawnOncePerPOI(t *testing.T) {
	flips := 0
	coin := func() bool {
		flips++
		return flips%2 == 0
	}
	s := NewSession("sess-1", "user-1", time.Now())

	first := s.ManualFirst("p1", coin)
	for range 5 {
		assert.Equal(t, first, s.ManualFirst("p1", coin))
	}
	assert.Equal(t, 1, flips)

	s.ManualFirst("p2", coin)
	assert.Equal(t, 2, flips)
}

func TestMachine_SlotOrderSurvivesFailedSubmission(t *testing.T) {
	draws := []bool{false, true}
	coin := func() bool {
		v := draws[0]
		draws = draws[1:]
		return v
	}
	m := NewMachine(coin)
	s := sessionAtComparison(t, m, twoPOIs())

	// the page render draws the order before any answer arrives
	manualFirst := s.ManualFirst("p1", m.Coin)
	require.False(t, manualFirst)

	bad := completeAnswers(0)
	bad.A.Clarity = ""
	_, err := m.Dispatch(s, SubmitComparison{Answers: bad, At: time.Now()})
	require.Error(t, err)

	_, err = m.Dispatch(s, SubmitComparison{Answers: completeAnswers(0), At: time.Now()})
	require.NoError(t, err)

	r := s.Records[0]
	assert.False(t, r.IsManualFirst)
	// slot A held the generated variant
	assert.Equal(t, "Agree", r.AISignificance)
	assert.Equal(t, "Disagree", r.ManualSignificance)
	assert.Equal(t, VersionAI, r.EngagingPreference)
	assert.Equal(t, VersionManual, r.RelevantPreference)
}

func TestMachine_RestartKeepsConsentAndClearsEverythingElse(t *testing.T) {
	m := NewMachine(alwaysManualFirst)
	s := sessionAtComparison(t, m, twoPOIs())
	_, err := m.Dispatch(s, SubmitComparison{Answers: completeAnswers(0), At: time.Now()})
	require.NoError(t, err)

	_, err = m.Dispatch(s, Restart{UserID: "user-2"})
	require.NoError(t, err)

	assert.Equal(t, "sess-1", s.ID)
	assert.Equal(t, "user-2", s.UserID)
	assert.True(t, s.ConsentGiven)
	assert.Equal(t, State{Step: StepIntake}, s.State)
	assert.Nil(t, s.Profile)
	assert.Empty(t, s.POIs)
	assert.Empty(t, s.Records)
	assert.Empty(t, s.Order)
	assert.Empty(t, s.Answers)
}

func TestMachine_RestartWithoutConsentReturnsToConsent(t *testing.T) {
	m := NewMachine(nil)
	s := NewSession("sess-1", "user-1", time.Now())

	_, err := m.Dispatch(s, Restart{UserID: "user-2"})
	require.NoError(t, err)
	assert.Equal(t, StepAwaitingConsent, s.State.Step)
	assert.False(t, s.ConsentGiven)
}

func TestMachine_FinalFeedbackOutsideClosingIsRejected(t *testing.T) {
	m := NewMachine(alwaysManualFirst)
	s := sessionAtComparison(t, m, twoPOIs())

	_, err := m.Dispatch(s, SubmitFinal{Feedback: FinalFeedback{}})
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)
	assert.Equal(t, StepComparison, s.State.Step)
}

func TestSession_CloneIsIndependent(t *testing.T) {
	m := NewMachine(alwaysManualFirst)
	s := sessionAtComparison(t, m, twoPOIs())

	c := s.Clone()
	_, err := m.Dispatch(c, SubmitComparison{Answers: completeAnswers(0), At: time.Now()})
	require.NoError(t, err)
	c.Profile.Hobbies[0] = "Gaming"

	assert.Empty(t, s.Records)
	assert.Empty(t, s.Order)
	assert.Equal(t, 0, s.State.Index)
	assert.Equal(t, "Reading", s.Profile.Hobbies[0])
}

func TestSession_ContentForMissingPOIShowsErrorSentinel(t *testing.T) {
	s := NewSession("sess-1", "user-1", time.Now())
	c := s.ContentFor("nope")
	assert.Equal(t, "[Error generating title]", c.Title)
	assert.Equal(t, "[Error generating description]", c.Description)
}
