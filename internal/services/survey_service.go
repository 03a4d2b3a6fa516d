package services

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"poisurvey/internal/models/response_models"
	"poisurvey/internal/survey"
	"poisurvey/pkg/logger"
	"poisurvey/pkg/memcache"
	"poisurvey/pkg/utils"
)

type SurveyServiceInterface interface {
	CreateSession(ctx context.Context) (*survey.Session, error)
	GetSession(ctx context.Context, sessionID string) (*survey.Session, error)
	GiveConsent(ctx context.Context, sessionID string) (*survey.Session, error)
	// SubmitProfile validates the intake and starts content generation in
	// the background. The session then waits in generating_content.
	SubmitProfile(ctx context.Context, sessionID string, profile survey.Profile) (*survey.Session, error)
	Progress(ctx context.Context, sessionID string) (*response_models.ProgressResponse, error)
	CurrentComparison(ctx context.Context, sessionID string) (*response_models.ComparisonView, error)
	SubmitComparison(ctx context.Context, sessionID string, answers survey.StepAnswers) (*survey.Session, error)
	SubmitFinal(ctx context.Context, sessionID string, feedback survey.FinalFeedback) (*survey.Session, error)
	Restart(ctx context.Context, sessionID string) (*survey.Session, error)
	// Shutdown cancels running generations and waits for them.
	Shutdown()
}

type generationProgress struct {
	userID  string
	done    int
	total   int
	running bool
	err     string
}

type SurveyService struct {
	store           memcache.SessionStore
	catalog         CatalogServiceInterface
	personalization PersonalizationServiceInterface
	recorder        RecorderServiceInterface
	machine         *survey.Machine
	log             *logger.Logger
	assetPrefix     string

	locks *keyedMutex

	progressMu sync.Mutex
	progress   map[string]*generationProgress

	bg     context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	now   func() time.Time
	newID func() string
}

func NewSurveyService(
	store memcache.SessionStore,
	catalog CatalogServiceInterface,
	personalization PersonalizationServiceInterface,
	recorder RecorderServiceInterface,
	machine *survey.Machine,
	log *logger.Logger,
) *SurveyService {
	bg, cancel := context.WithCancel(context.Background())
	return &SurveyService{
		store:           store,
		catalog:         catalog,
		personalization: personalization,
		recorder:        recorder,
		machine:         machine,
		log:             log.With("service", "SurveyService"),
		assetPrefix:     "/assets",
		locks:           newKeyedMutex(),
		progress:        make(map[string]*generationProgress),
		bg:              bg,
		cancel:          cancel,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

func (s *SurveyService) CreateSession(ctx context.Context) (*survey.Session, error) {
	sess := survey.NewSession(s.newID(), s.newID(), s.now())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save new session: %w", err)
	}
	s.log.Info("session created", "session_id", sess.ID, "user_id", sess.UserID)
	return sess, nil
}

func (s *SurveyService) GetSession(ctx context.Context, sessionID string) (*survey.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.resumeGeneration(ctx, sess)
	return sess, nil
}

func (s *SurveyService) GiveConsent(ctx context.Context, sessionID string) (*survey.Session, error) {
	return s.apply(ctx, sessionID, survey.GiveConsent{})
}

func (s *SurveyService) SubmitProfile(ctx context.Context, sessionID string, profile survey.Profile) (*survey.Session, error) {
	return s.apply(ctx, sessionID, survey.SubmitProfile{Profile: profile})
}

func (s *SurveyService) SubmitComparison(ctx context.Context, sessionID string, answers survey.StepAnswers) (*survey.Session, error) {
	return s.apply(ctx, sessionID, survey.SubmitComparison{Answers: answers, At: s.now()})
}

func (s *SurveyService) SubmitFinal(ctx context.Context, sessionID string, feedback survey.FinalFeedback) (*survey.Session, error) {
	feedback.Timestamp = s.now()
	return s.apply(ctx, sessionID, survey.SubmitFinal{Feedback: feedback})
}

func (s *SurveyService) Restart(ctx context.Context, sessionID string) (*survey.Session, error) {
	sess, err := s.apply(ctx, sessionID, survey.Restart{UserID: s.newID()})
	if err != nil {
		return nil, err
	}
	s.progressMu.Lock()
	delete(s.progress, sessionID)
	s.progressMu.Unlock()
	return sess, nil
}

// apply runs one action against a copy of the session. The copy replaces the
// stored session only when the action and all of its effects succeeded, so a
// failed flush leaves the respondent on the step they can retry.
func (s *SurveyService) apply(ctx context.Context, sessionID string, action survey.Action) (*survey.Session, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	current, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	next := current.Clone()

	out, err := s.machine.Dispatch(next, action)
	if err != nil {
		return nil, err
	}

	var pois []survey.POI
	if out.Generate {
		if pois, err = s.catalog.Load(ctx); err != nil {
			s.log.Error("catalog unavailable at intake", "session_id", sessionID, "error", err)
			return nil, err
		}
	}
	if out.FlushComparisons {
		if _, err := s.recorder.FlushComparisons(ctx, *next.Profile, next.Records); err != nil {
			return nil, err
		}
	}
	if out.FlushFinal {
		if _, err := s.recorder.FlushFinal(ctx, *next.Final); err != nil {
			return nil, err
		}
	}

	// claimed before the save so a concurrent poll does not resume it
	if out.Generate {
		s.claimGeneration(next.ID, next.UserID, len(pois))
	}
	if err := s.store.Save(ctx, next); err != nil {
		if out.Generate {
			s.progressMu.Lock()
			delete(s.progress, next.ID)
			s.progressMu.Unlock()
		}
		return nil, fmt.Errorf("save session: %w", err)
	}

	if out.Generate {
		s.launchGeneration(next.ID, next.UserID, pois, *next.Profile)
	}
	return next, nil
}

// resumeGeneration restarts content generation for a session left in
// generating_content without a running generation in this process, e.g.
// after a shutdown, a failed save or on another instance sharing the store.
// The per-user content cache makes a resumed run cheap.
func (s *SurveyService) resumeGeneration(ctx context.Context, sess *survey.Session) {
	if sess.State.Step != survey.StepGeneratingContent || s.bg.Err() != nil {
		return
	}

	unlock := s.locks.Lock(sess.ID)
	defer unlock()

	// a generation may have saved its result since sess was read
	sess, err := s.store.Get(ctx, sess.ID)
	if err != nil || sess.State.Step != survey.StepGeneratingContent || sess.Profile == nil {
		return
	}

	s.progressMu.Lock()
	if p, ok := s.progress[sess.ID]; ok && p.userID == sess.UserID && p.running {
		s.progressMu.Unlock()
		return
	}
	s.progress[sess.ID] = &generationProgress{userID: sess.UserID, running: true}
	s.progressMu.Unlock()

	pois, err := s.catalog.Load(ctx)
	if err != nil {
		s.log.Error("catalog unavailable, cannot resume generation", "session_id", sess.ID, "error", err)
		s.updateProgress(sess.ID, sess.UserID, func(p *generationProgress) {
			p.running = false
			p.err = err.Error()
		})
		return
	}
	s.log.Info("resuming content generation", "session_id", sess.ID, "user_id", sess.UserID)
	s.claimGeneration(sess.ID, sess.UserID, len(pois))
	s.launchGeneration(sess.ID, sess.UserID, pois, *sess.Profile)
}

func (s *SurveyService) claimGeneration(sessionID, userID string, total int) {
	s.progressMu.Lock()
	s.progress[sessionID] = &generationProgress{userID: userID, total: total, running: true}
	s.progressMu.Unlock()
}

func (s *SurveyService) launchGeneration(sessionID, userID string, pois []survey.POI, profile survey.Profile) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.generate(sessionID, userID, pois, profile)
	}()
}

// generate always leaves its progress entry not running, so a run that did
// not reach comparison can be resumed.
func (s *SurveyService) generate(sessionID, userID string, pois []survey.POI, profile survey.Profile) {
	stopped := func(reason string) {
		s.updateProgress(sessionID, userID, func(p *generationProgress) {
			p.running = false
			p.err = reason
		})
	}

	content, err := s.personalization.GenerateAll(s.bg, userID, pois, profile, func(done, total int) {
		s.updateProgress(sessionID, userID, func(p *generationProgress) {
			p.done, p.total = done, total
		})
	})
	if err != nil {
		s.log.Error("content generation aborted", "session_id", sessionID, "user_id", userID, "error", err)
		stopped(err.Error())
		return
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	ctx := context.Background()
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		s.log.Warn("session gone before content was ready", "session_id", sessionID, "error", err)
		stopped(err.Error())
		return
	}
	// a restart in the meantime gave the session a new respondent
	if sess.UserID != userID || sess.State.Step != survey.StepGeneratingContent {
		s.log.Info("discarding content for a superseded respondent", "session_id", sessionID, "user_id", userID)
		return
	}
	if _, err := s.machine.Dispatch(sess, survey.ContentReady{POIs: pois, Content: content}); err != nil {
		s.log.Error("content ready rejected", "session_id", sessionID, "error", err)
		stopped(err.Error())
		return
	}
	s.updateProgress(sessionID, userID, func(p *generationProgress) {
		p.running = false
	})
	if err := s.store.Save(ctx, sess); err != nil {
		s.log.Error("could not save session after generation", "session_id", sessionID, "error", err)
		stopped(err.Error())
	}
}

func (s *SurveyService) updateProgress(sessionID, userID string, fn func(p *generationProgress)) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	if p, ok := s.progress[sessionID]; ok && p.userID == userID {
		fn(p)
	}
}

func (s *SurveyService) Progress(ctx context.Context, sessionID string) (*response_models.ProgressResponse, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.resumeGeneration(ctx, sess)
	resp := &response_models.ProgressResponse{Step: sess.State.Step}

	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	if p, ok := s.progress[sessionID]; ok && p.userID == sess.UserID {
		resp.Done, resp.Total, resp.Running, resp.Error = p.done, p.total, p.running, p.err
	} else if len(sess.POIs) > 0 {
		resp.Done, resp.Total = len(sess.POIs), len(sess.POIs)
	}
	return resp, nil
}

// CurrentComparison renders the current step. The first render of a POI
// draws its slot order, which is stored with the session.
func (s *SurveyService) CurrentComparison(ctx context.Context, sessionID string) (*response_models.ComparisonView, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	poi, ok := sess.CurrentPOI()
	if !ok {
		return nil, fmt.Errorf("%w: no comparison in %s", utils.ErrInvalidTransition, sess.State.Step)
	}

	_, drawn := sess.Order[poi.ID]
	manualFirst := sess.ManualFirst(poi.ID, s.machine.Coin)
	if !drawn {
		if err := s.store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("save slot order: %w", err)
		}
	}

	manual := response_models.VariantView{Title: poi.Title, Description: poi.Description}
	generated := sess.ContentFor(poi.ID)
	ai := response_models.VariantView{Title: generated.Title, Description: generated.Description}

	view := &response_models.ComparisonView{
		Index:             sess.State.Index,
		Total:             len(sess.POIs),
		POIID:             poi.ID,
		A:                 manual,
		B:                 ai,
		RatingScale:       survey.RatingScale,
		TrustScale:        survey.TrustScale,
		ClarityScale:      survey.ClarityScale,
		PreferenceOptions: survey.PreferenceOptions,
	}
	if !manualFirst {
		view.A, view.B = ai, manual
	}
	if poi.ImageSrc != "" {
		view.ImageURL = path.Join(s.assetPrefix, poi.ImageSrc)
	}
	return view, nil
}

func (s *SurveyService) Shutdown() {
	s.cancel()
	s.wg.Wait()
}
