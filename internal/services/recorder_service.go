package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lib/pq"

	"poisurvey/internal/models/db_models"
	"poisurvey/internal/models/response_models"
	"poisurvey/internal/repositories"
	"poisurvey/internal/survey"
	"poisurvey/pkg/logger"
	"poisurvey/pkg/utils"
)

const (
	SurveyExportPrefix = "survey_responses"
	FinalExportPrefix  = "final_responses"
)

var (
	ProfileColumns = []string{
		"user_id", "age", "gender", "marital_status", "has_children",
		"nationality", "city", "disability", "pets", "profession",
		"hobbies", "interests", "travel_experience", "preferred_travel_style",
	}
	RecordColumns = []string{
		"poi_id", "poi_title", "is_manual_first",
		"manual_significance", "manual_trust", "manual_clarity",
		"ai_significance", "ai_trust", "ai_clarity",
		"engaging_preference", "relevant_preference", "eager_preference",
		"title_preference", "description_preference", "already_visited",
		"timestamp",
	}
	FinalColumns = []string{
		"user_id", "timestamp", "overall_rating", "comments", "adaptation_rating",
		"ai_comfort_rating", "final_feedback", "lottery_email",
	}
)

type RecorderServiceInterface interface {
	// FlushComparisons writes every record of a respondent, each row carrying
	// the full profile, and returns the file path.
	FlushComparisons(ctx context.Context, profile survey.Profile, records []survey.ComparisonRecord) (string, error)
	FlushFinal(ctx context.Context, feedback survey.FinalFeedback) (string, error)

	ListComparisons(ctx context.Context, page, pageSize int) (*response_models.Page[db_models.ComparisonRecordRow], error)
	ListFinal(ctx context.Context, page, pageSize int) (*response_models.Page[db_models.FinalFeedbackRow], error)
}

type RecorderService struct {
	exports repositories.ExportRepositoryInterface
	// mirror is nil when no database is configured.
	mirror repositories.ResponseRepositoryInterface
	log    *logger.Logger
	now    func() time.Time
}

func NewRecorderService(
	exports repositories.ExportRepositoryInterface,
	mirror repositories.ResponseRepositoryInterface,
	log *logger.Logger,
) *RecorderService {
	return &RecorderService{
		exports: exports,
		mirror:  mirror,
		log:     log.With("service", "RecorderService"),
		now:     time.Now,
	}
}

func (s *RecorderService) FlushComparisons(ctx context.Context, profile survey.Profile, records []survey.ComparisonRecord) (string, error) {
	header := append(append([]string{}, ProfileColumns...), RecordColumns...)
	profileCells := profileRow(profile)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, append(append([]string{}, profileCells...), recordRow(r)...))
	}

	path, err := s.exports.Write(SurveyExportPrefix, s.now(), header, rows)
	if err != nil {
		s.log.Error("could not write survey responses", "user_id", profile.UserID, "error", err)
		return "", err
	}
	s.log.Info("survey responses saved", "user_id", profile.UserID, "rows", len(rows), "file", path)

	if s.mirror != nil {
		mirrored := make([]db_models.ComparisonRecordRow, 0, len(records))
		for _, r := range records {
			mirrored = append(mirrored, comparisonRowModel(filepath.Base(path), profile, r))
		}
		if err := s.mirror.InsertComparisons(ctx, mirrored); err != nil {
			s.log.Warn("response mirror insert failed", "user_id", profile.UserID, "error", err)
		}
	}
	return path, nil
}

func (s *RecorderService) FlushFinal(ctx context.Context, feedback survey.FinalFeedback) (string, error) {
	if feedback.Timestamp.IsZero() {
		feedback.Timestamp = s.now()
	}
	row := []string{
		feedback.UserID,
		utils.FormatRecordTime(feedback.Timestamp),
		ratingCell(feedback.OverallRating),
		feedback.Comments,
		ratingCell(feedback.AdaptationRating),
		ratingCell(feedback.AIComfortRating),
		feedback.FinalFeedback,
		feedback.LotteryEmail,
	}

	path, err := s.exports.Write(FinalExportPrefix, s.now(), FinalColumns, [][]string{row})
	if err != nil {
		s.log.Error("could not write final responses", "user_id", feedback.UserID, "error", err)
		return "", err
	}
	s.log.Info("final responses saved", "user_id", feedback.UserID, "file", path)

	if s.mirror != nil {
		m := &db_models.FinalFeedbackRow{
			ExportFile:       filepath.Base(path),
			UserID:           feedback.UserID,
			Timestamp:        feedback.Timestamp,
			OverallRating:    feedback.OverallRating,
			Comments:         feedback.Comments,
			AdaptationRating: feedback.AdaptationRating,
			AIComfortRating:  feedback.AIComfortRating,
			FinalFeedback:    feedback.FinalFeedback,
			LotteryEmail:     feedback.LotteryEmail,
		}
		if err := s.mirror.InsertFinal(ctx, m); err != nil {
			s.log.Warn("response mirror insert failed", "user_id", feedback.UserID, "error", err)
		}
	}
	return path, nil
}

func (s *RecorderService) ListComparisons(ctx context.Context, page, pageSize int) (*response_models.Page[db_models.ComparisonRecordRow], error) {
	if s.mirror == nil {
		return nil, utils.ErrMirrorDisabled
	}
	rows, total, err := s.mirror.ListComparisons(ctx, page, pageSize)
	if err != nil {
		s.log.Error("list comparison records", "error", err)
		return nil, utils.ErrDatabaseError
	}
	return response_models.NewPage(rows, page, pageSize, total), nil
}

func (s *RecorderService) ListFinal(ctx context.Context, page, pageSize int) (*response_models.Page[db_models.FinalFeedbackRow], error) {
	if s.mirror == nil {
		return nil, utils.ErrMirrorDisabled
	}
	rows, total, err := s.mirror.ListFinal(ctx, page, pageSize)
	if err != nil {
		s.log.Error("list final feedback", "error", err)
		return nil, utils.ErrDatabaseError
	}
	return response_models.NewPage(rows, page, pageSize, total), nil
}

func profileRow(p survey.Profile) []string {
	return []string{
		p.UserID,
		strconv.Itoa(p.Age),
		p.Gender,
		p.MaritalStatus,
		p.HasChildren,
		p.Nationality,
		p.City,
		p.Disability,
		p.Pets,
		p.Profession,
		listCell(p.Hobbies),
		listCell(p.Interests),
		p.TravelExperience,
		listCell(p.PreferredTravelStyle),
	}
}

func recordRow(r survey.ComparisonRecord) []string {
	return []string{
		r.POIID,
		r.POITitle,
		strconv.FormatBool(r.IsManualFirst),
		r.ManualSignificance,
		r.ManualTrust,
		r.ManualClarity,
		r.AISignificance,
		r.AITrust,
		r.AIClarity,
		r.EngagingPreference,
		r.RelevantPreference,
		r.EagerPreference,
		r.TitlePreference,
		r.DescriptionPreference,
		r.AlreadyVisited,
		utils.FormatRecordTime(r.Timestamp),
	}
}

func comparisonRowModel(file string, p survey.Profile, r survey.ComparisonRecord) db_models.ComparisonRecordRow {
	return db_models.ComparisonRecordRow{
		ExportFile:            file,
		UserID:                r.UserID,
		Age:                   p.Age,
		Gender:                p.Gender,
		MaritalStatus:         p.MaritalStatus,
		HasChildren:           p.HasChildren,
		Nationality:           p.Nationality,
		City:                  p.City,
		Disability:            p.Disability,
		Pets:                  p.Pets,
		Profession:            p.Profession,
		Hobbies:               pq.StringArray(p.Hobbies),
		Interests:             pq.StringArray(p.Interests),
		TravelExperience:      p.TravelExperience,
		PreferredTravelStyle:  pq.StringArray(p.PreferredTravelStyle),
		POIID:                 r.POIID,
		POITitle:              r.POITitle,
		IsManualFirst:         r.IsManualFirst,
		ManualSignificance:    r.ManualSignificance,
		ManualTrust:           r.ManualTrust,
		ManualClarity:         r.ManualClarity,
		AISignificance:        r.AISignificance,
		AITrust:               r.AITrust,
		AIClarity:             r.AIClarity,
		EngagingPreference:    r.EngagingPreference,
		RelevantPreference:    r.RelevantPreference,
		EagerPreference:       r.EagerPreference,
		TitlePreference:       r.TitlePreference,
		DescriptionPreference: r.DescriptionPreference,
		AlreadyVisited:        r.AlreadyVisited,
		Timestamp:             r.Timestamp,
	}
}

// listCell encodes a list column as a JSON array.
func listCell(values []string) string {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return string(raw)
}

func ratingCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
