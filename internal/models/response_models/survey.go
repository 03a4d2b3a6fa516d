package response_models

import "poisurvey/internal/survey"

type SessionResponse struct {
	Token string        `json:"token"`
	State StateResponse `json:"state"`
}

type StateResponse struct {
	SessionID    string      `json:"session_id"`
	UserID       string      `json:"user_id"`
	Step         survey.Step `json:"step"`
	Index        int         `json:"index"`
	Total        int         `json:"total"`
	ConsentGiven bool        `json:"consent_given"`
}

func NewStateResponse(s *survey.Session) StateResponse {
	return StateResponse{
		SessionID:    s.ID,
		UserID:       s.UserID,
		Step:         s.State.Step,
		Index:        s.State.Index,
		Total:        len(s.POIs),
		ConsentGiven: s.ConsentGiven,
	}
}

type ProgressResponse struct {
	Step    survey.Step `json:"step"`
	Done    int         `json:"done"`
	Total   int         `json:"total"`
	Running bool        `json:"running"`
	Error   string      `json:"error,omitempty"`
}

type VariantView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ComparisonView is what one comparison step shows: both variants in their
// randomized slots. Which slot holds the original is not disclosed.
type ComparisonView struct {
	Index             int         `json:"index"`
	Total             int         `json:"total"`
	POIID             string      `json:"poi_id"`
	ImageURL          string      `json:"image_url"`
	A                 VariantView `json:"a"`
	B                 VariantView `json:"b"`
	RatingScale       []string    `json:"rating_scale"`
	TrustScale        []string    `json:"trust_scale"`
	ClarityScale      []string    `json:"clarity_scale"`
	PreferenceOptions []string    `json:"preference_options"`
}

type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

func NewPage[T any](items []T, page, pageSize int, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Page: page, PageSize: pageSize, Total: total}
}
