package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"poisurvey/internal/repositories"
	"poisurvey/internal/survey"
	"poisurvey/pkg/logger"
	"poisurvey/pkg/memcache"
	"poisurvey/pkg/utils"
)

type staticCatalog struct {
	pois []survey.POI
	err  error
}

func (c staticCatalog) Load(context.Context) ([]survey.POI, error) {
	return c.pois, c.err
}

// flakyRecorder fails the next n flushes before delegating.
type flakyRecorder struct {
	RecorderServiceInterface
	mu       sync.Mutex
	failures int
}

func (r *flakyRecorder) FlushComparisons(ctx context.Context, p survey.Profile, recs []survey.ComparisonRecord) (string, error) {
	r.mu.Lock()
	if r.failures > 0 {
		r.failures--
		r.mu.Unlock()
		return "", utils.ErrPersistence
	}
	r.mu.Unlock()
	return r.RecorderServiceInterface.FlushComparisons(ctx, p, recs)
}

type SurveyServiceSuite struct {
	suite.Suite
	resultsDir string
	cacheDir   string
	store      memcache.SessionStore
	client     *fakeContentClient
	recorder   *flakyRecorder
	catalog    *staticCatalog
	svc        *SurveyService
	ids        int
}

func TestSurveyServiceSuite(t *testing.T) {
	suite.Run(t, new(SurveyServiceSuite))
}

func (s *SurveyServiceSuite) SetupTest() {
	s.resultsDir = s.T().TempDir()
	s.client = echoClient()
	s.catalog = &staticCatalog{pois: testPOIs()[:2]}
	s.cacheDir = s.T().TempDir()
	s.store = memcache.NewMemorySessions(time.Hour)
	s.recorder = &flakyRecorder{
		RecorderServiceInterface: NewRecorderService(repositories.NewExportRepository(s.resultsDir), nil, logger.NewNop()),
	}

	s.svc = s.newService(s.client)
	s.ids = 0
	s.svc.newID = func() string {
		s.ids++
		return "id-" + string(rune('a'+s.ids))
	}
}

// newService builds a service sharing the suite's session store, content
// cache and recorder, as a second instance would.
func (s *SurveyServiceSuite) newService(client utils.ContentClientInterface) *SurveyService {
	personalization := NewPersonalizationService(client,
		repositories.NewContentCacheRepository(s.cacheDir), logger.NewNop(),
		PersonalizationConfig{Timeout: time.Second, Concurrency: 2})
	return NewSurveyService(s.store, s.catalog, personalization,
		s.recorder, survey.NewMachine(func() bool { return true }), logger.NewNop())
}

func (s *SurveyServiceSuite) TearDownTest() {
	s.svc.Shutdown()
}

func (s *SurveyServiceSuite) intakeProfile() survey.Profile {
	return survey.Profile{
		Age:                  29,
		Gender:               "Male",
		MaritalStatus:        "Single",
		HasChildren:          "No",
		Nationality:          "Irish",
		City:                 "Dublin",
		Disability:           "No",
		Pets:                 "Yes",
		Profession:           "Student",
		Hobbies:              []string{"Gaming", "Sports", "Music"},
		Interests:            []string{"Nightlife", "Festivals", "Local Experiences"},
		TravelExperience:     "Beginner",
		PreferredTravelStyle: []string{"Budget", "Backpacking", "Solo"},
	}
}

func (s *SurveyServiceSuite) answers(index int) survey.StepAnswers {
	return survey.StepAnswers{
		Index: index,
		A:     survey.VariantRatings{Significance: "Agree", Trust: "Very", Clarity: "Clear"},
		B:     survey.VariantRatings{Significance: "Neutral", Trust: "Moderately", Clarity: "Neutral"},
		Preferences: survey.Preferences{
			Engaging: survey.SlotA, Relevant: survey.SlotA, Eager: survey.SlotB,
			Title: survey.BothEqually, Description: survey.SlotA,
		},
	}
}

// toComparison walks a new session through consent, intake and generation.
func (s *SurveyServiceSuite) toComparison() *survey.Session {
	ctx := context.Background()
	sess, err := s.svc.CreateSession(ctx)
	s.Require().NoError(err)

	_, err = s.svc.GiveConsent(ctx, sess.ID)
	s.Require().NoError(err)

	sess, err = s.svc.SubmitProfile(ctx, sess.ID, s.intakeProfile())
	s.Require().NoError(err)
	s.Equal(survey.StepGeneratingContent, sess.State.Step)

	s.Require().Eventually(func() bool {
		cur, err := s.svc.GetSession(ctx, sess.ID)
		return err == nil && cur.State.Step != survey.StepGeneratingContent
	}, 2*time.Second, 5*time.Millisecond)

	sess, err = s.svc.GetSession(ctx, sess.ID)
	s.Require().NoError(err)
	return sess
}

func (s *SurveyServiceSuite) TestTwoPOIRunWritesTwoRows() {
	ctx := context.Background()
	sess := s.toComparison()
	s.Equal(survey.State{Step: survey.StepComparison, Index: 0}, sess.State)
	s.Len(sess.Content, 2)

	progress, err := s.svc.Progress(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(2, progress.Done)
	s.Equal(2, progress.Total)
	s.False(progress.Running)

	view, err := s.svc.CurrentComparison(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal("Old Bridge", view.A.Title)
	s.Equal("p1", view.POIID)

	for i := 0; i < 2; i++ {
		sess, err = s.svc.SubmitComparison(ctx, sess.ID, s.answers(i))
		s.Require().NoError(err)
	}
	s.Equal(survey.StepClosingSurvey, sess.State.Step)

	matches, err := filepath.Glob(filepath.Join(s.resultsDir, "survey_responses_*.csv"))
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	rows := readCSV(s.T(), matches[0])
	s.Len(rows, 3)
	userCol := column(rows[0], "user_id")
	for _, row := range rows[1:] {
		s.Equal(sess.UserID, row[userCol])
	}

	three := 3
	sess, err = s.svc.SubmitFinal(ctx, sess.ID, survey.FinalFeedback{OverallRating: &three})
	s.Require().NoError(err)
	s.Equal(survey.StepDone, sess.State.Step)
	finals, err := filepath.Glob(filepath.Join(s.resultsDir, "final_responses_*.csv"))
	s.Require().NoError(err)
	s.Len(finals, 1)
}

func (s *SurveyServiceSuite) TestFailedFlushKeepsLastStep() {
	ctx := context.Background()
	sess := s.toComparison()
	s.recorder.failures = 1

	sess, err := s.svc.SubmitComparison(ctx, sess.ID, s.answers(0))
	s.Require().NoError(err)

	_, err = s.svc.SubmitComparison(ctx, sess.ID, s.answers(1))
	s.ErrorIs(err, utils.ErrPersistence)

	cur, err := s.svc.GetSession(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(survey.State{Step: survey.StepComparison, Index: 1}, cur.State)
	s.Len(cur.Records, 1)

	cur, err = s.svc.SubmitComparison(ctx, sess.ID, s.answers(1))
	s.Require().NoError(err)
	s.Equal(survey.StepClosingSurvey, cur.State.Step)
	s.Len(cur.Records, 2)
}

func (s *SurveyServiceSuite) TestSlotOrderStableAcrossRenders() {
	ctx := context.Background()
	sess := s.toComparison()

	first, err := s.svc.CurrentComparison(ctx, sess.ID)
	s.Require().NoError(err)
	for range 3 {
		again, err := s.svc.CurrentComparison(ctx, sess.ID)
		s.Require().NoError(err)
		s.Equal(first, again)
	}
}

func (s *SurveyServiceSuite) TestCatalogFailureBlocksIntake() {
	ctx := context.Background()
	s.catalog.err = utils.ErrCatalogUnavailable

	sess, err := s.svc.CreateSession(ctx)
	s.Require().NoError(err)
	_, err = s.svc.GiveConsent(ctx, sess.ID)
	s.Require().NoError(err)

	_, err = s.svc.SubmitProfile(ctx, sess.ID, s.intakeProfile())
	s.ErrorIs(err, utils.ErrCatalogUnavailable)

	cur, err := s.svc.GetSession(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(survey.StepIntake, cur.State.Step)
}

func (s *SurveyServiceSuite) TestRestartStartsFreshRespondent() {
	ctx := context.Background()
	sess := s.toComparison()

	restarted, err := s.svc.Restart(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.ID, restarted.ID)
	s.NotEqual(sess.UserID, restarted.UserID)
	s.Equal(survey.StepIntake, restarted.State.Step)

	progress, err := s.svc.Progress(ctx, sess.ID)
	s.Require().NoError(err)
	s.Zero(progress.Total)
}

// interruptedIntake submits the intake on a service whose generation never
// finishes and shuts it down, leaving the session in generating_content.
func (s *SurveyServiceSuite) interruptedIntake() *survey.Session {
	ctx := context.Background()
	stuck := s.newService(blockingClient{})
	stuck.newID = s.svc.newID

	sess, err := stuck.CreateSession(ctx)
	s.Require().NoError(err)
	_, err = stuck.GiveConsent(ctx, sess.ID)
	s.Require().NoError(err)
	sess, err = stuck.SubmitProfile(ctx, sess.ID, s.intakeProfile())
	s.Require().NoError(err)
	stuck.Shutdown()

	cur, err := s.store.Get(ctx, sess.ID)
	s.Require().NoError(err)
	s.Require().Equal(survey.StepGeneratingContent, cur.State.Step)
	return cur
}

func (s *SurveyServiceSuite) TestInterruptedGenerationResumesOnAnotherInstance() {
	ctx := context.Background()
	sess := s.interruptedIntake()

	progress, err := s.svc.Progress(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(survey.StepGeneratingContent, progress.Step)

	s.Require().Eventually(func() bool {
		cur, err := s.svc.GetSession(ctx, sess.ID)
		return err == nil && cur.State.Step == survey.StepComparison
	}, 2*time.Second, 5*time.Millisecond)

	s.Equal(2, s.client.Calls())
	view, err := s.svc.CurrentComparison(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal("Your Old", view.B.Title)

	progress, err = s.svc.Progress(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(2, progress.Done)
	s.False(progress.Running)
}

func (s *SurveyServiceSuite) TestResumedGenerationUsesCachedContent() {
	ctx := context.Background()
	sess := s.interruptedIntake()

	cached := map[string]survey.GeneratedContent{
		"p1": {Title: "Cached bridge", Description: "From cache."},
		"p2": {Title: "Cached hall", Description: "From cache."},
	}
	s.Require().NoError(repositories.NewContentCacheRepository(s.cacheDir).Save(sess.UserID, cached))

	s.Require().Eventually(func() bool {
		cur, err := s.svc.GetSession(ctx, sess.ID)
		return err == nil && cur.State.Step == survey.StepComparison
	}, 2*time.Second, 5*time.Millisecond)

	s.Zero(s.client.Calls())
	cur, err := s.svc.GetSession(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(cached, cur.Content)
}

func (s *SurveyServiceSuite) TestUnknownSession() {
	_, err := s.svc.GiveConsent(context.Background(), "nope")
	s.ErrorIs(err, utils.ErrSessionNotFound)
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	k := newKeyedMutex()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("s1")
			mu.Lock()
			active++
			maxSeen = max(maxSeen, active)
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	require.Empty(t, k.locks)
}
