package db_models

import (
	"time"

	"github.com/lib/pq"
)

// ComparisonRecordRow mirrors one row of a survey_responses CSV export: the
// respondent profile followed by the per-POI answers.
type ComparisonRecordRow struct {
	BaseModel
	ExportFile string `gorm:"type:text;index"`

	UserID               string         `gorm:"type:text;not null;index"`
	Age                  int            `gorm:"type:int"`
	Gender               string         `gorm:"type:text"`
	MaritalStatus        string         `gorm:"type:text"`
	HasChildren          string         `gorm:"type:text"`
	Nationality          string         `gorm:"type:text"`
	City                 string         `gorm:"type:text"`
	Disability           string         `gorm:"type:text"`
	Pets                 string         `gorm:"type:text"`
	Profession           string         `gorm:"type:text"`
	Hobbies              pq.StringArray `gorm:"type:text[]"`
	Interests            pq.StringArray `gorm:"type:text[]"`
	TravelExperience     string         `gorm:"type:text"`
	PreferredTravelStyle pq.StringArray `gorm:"type:text[]"`

	POIID                 string    `gorm:"type:text;not null;index"`
	POITitle              string    `gorm:"type:text"`
	IsManualFirst         bool      `gorm:"not null"`
	ManualSignificance    string    `gorm:"type:text"`
	ManualTrust           string    `gorm:"type:text"`
	ManualClarity         string    `gorm:"type:text"`
	AISignificance        string    `gorm:"type:text"`
	AITrust               string    `gorm:"type:text"`
	AIClarity             string    `gorm:"type:text"`
	EngagingPreference    string    `gorm:"type:text"`
	RelevantPreference    string    `gorm:"type:text"`
	EagerPreference       string    `gorm:"type:text"`
	TitlePreference       string    `gorm:"type:text"`
	DescriptionPreference string    `gorm:"type:text"`
	AlreadyVisited        string    `gorm:"type:text"`
	Timestamp             time.Time `gorm:"not null"`
}

func (ComparisonRecordRow) TableName() string { return "comparison_records" }

type FinalFeedbackRow struct {
	BaseModel
	ExportFile string `gorm:"type:text;index"`

	UserID           string    `gorm:"type:text;not null;index"`
	Timestamp        time.Time `gorm:"not null"`
	OverallRating    *int      `gorm:"type:int;check:overall_rating BETWEEN 1 AND 5"`
	Comments         string    `gorm:"type:text"`
	AdaptationRating *int      `gorm:"type:int;check:adaptation_rating BETWEEN 1 AND 5"`
	AIComfortRating  *int      `gorm:"type:int;check:ai_comfort_rating BETWEEN 1 AND 5"`
	FinalFeedback    string    `gorm:"type:text"`
	LotteryEmail     string    `gorm:"type:text"`
}

func (FinalFeedbackRow) TableName() string { return "final_feedbacks" }
