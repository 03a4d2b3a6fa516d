package request_models

import (
	"strings"

	"poisurvey/internal/survey"
)

type IntakeRequest struct {
	Age                  int      `json:"age" binding:"gte=0,lte=120"`
	Gender               string   `json:"gender"`
	MaritalStatus        string   `json:"marital_status"`
	HasChildren          string   `json:"has_children"`
	Nationality          string   `json:"nationality"`
	City                 string   `json:"city"`
	Disability           string   `json:"disability"`
	Pets                 string   `json:"pets"`
	Profession           string   `json:"profession"`
	ProfessionOther      string   `json:"profession_other"`
	Hobbies              []string `json:"hobbies"`
	Interests            []string `json:"interests"`
	TravelExperience     string   `json:"travel_experience"`
	PreferredTravelStyle []string `json:"preferred_travel_style"`
}

// ToProfile replaces a profession of "Other" by the typed text.
func (r IntakeRequest) ToProfile() survey.Profile {
	profession := r.Profession
	if profession == "Other" {
		if other := strings.TrimSpace(r.ProfessionOther); other != "" {
			profession = other
		}
	}

	return survey.Profile{
		Age:                  r.Age,
		Gender:               r.Gender,
		MaritalStatus:        r.MaritalStatus,
		HasChildren:          r.HasChildren,
		Nationality:          r.Nationality,
		City:                 r.City,
		Disability:           r.Disability,
		Pets:                 r.Pets,
		Profession:           profession,
		Hobbies:              r.Hobbies,
		Interests:            r.Interests,
		TravelExperience:     r.TravelExperience,
		PreferredTravelStyle: r.PreferredTravelStyle,
	}
}

type RatingsRequest struct {
	Significance string `json:"significance"`
	Trust        string `json:"trust"`
	Clarity      string `json:"clarity"`
}

type ComparisonRequest struct {
	A              RatingsRequest `json:"a"`
	B              RatingsRequest `json:"b"`
	Engaging       string         `json:"engaging"`
	Relevant       string         `json:"relevant"`
	Eager          string         `json:"eager"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	AlreadyVisited string         `json:"already_visited"`
}

func (r ComparisonRequest) ToAnswers(index int) survey.StepAnswers {
	return survey.StepAnswers{
		Index: index,
		A:     survey.VariantRatings(r.A),
		B:     survey.VariantRatings(r.B),
		Preferences: survey.Preferences{
			Engaging:    r.Engaging,
			Relevant:    r.Relevant,
			Eager:       r.Eager,
			Title:       r.Title,
			Description: r.Description,
		},
		AlreadyVisited: r.AlreadyVisited,
	}
}

type FinalRequest struct {
	OverallRating    *int   `json:"overall_rating" binding:"omitempty,min=1,max=5"`
	Comments         string `json:"comments"`
	AdaptationRating *int   `json:"adaptation_rating" binding:"omitempty,min=1,max=5"`
	AIComfortRating  *int   `json:"ai_comfort_rating" binding:"omitempty,min=1,max=5"`
	FinalFeedback    string `json:"final_feedback"`
	LotteryEmail     string `json:"lottery_email"`
}

func (r FinalRequest) ToFeedback() survey.FinalFeedback {
	return survey.FinalFeedback{
		OverallRating:    r.OverallRating,
		Comments:         r.Comments,
		AdaptationRating: r.AdaptationRating,
		AIComfortRating:  r.AIComfortRating,
		FinalFeedback:    r.FinalFeedback,
		LotteryEmail:     r.LotteryEmail,
	}
}
