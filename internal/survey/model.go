package survey

import "time"

type POI struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageSrc    string `json:"imagesrc"`
}

type Profile struct {
	UserID               string   `json:"user_id"`
	Age                  int      `json:"age"`
	Gender               string   `json:"gender"`
	MaritalStatus        string   `json:"marital_status"`
	HasChildren          string   `json:"has_children"`
	Nationality          string   `json:"nationality"`
	City                 string   `json:"city"`
	Disability           string   `json:"disability"`
	Pets                 string   `json:"pets"`
	Profession           string   `json:"profession"`
	Hobbies              []string `json:"hobbies"`
	Interests            []string `json:"interests"`
	TravelExperience     string   `json:"travel_experience"`
	PreferredTravelStyle []string `json:"preferred_travel_style"`
}

type GeneratedContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// VariantRatings holds the three Likert answers given for one displayed
// variant.
type VariantRatings struct {
	Significance string `json:"significance"`
	Trust        string `json:"trust"`
	Clarity      string `json:"clarity"`
}

// Preferences are slot answers: A, B or Both equally.
type Preferences struct {
	Engaging    string `json:"engaging"`
	Relevant    string `json:"relevant"`
	Eager       string `json:"eager"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StepAnswers is everything answered on one comparison step, as shown to the
// respondent (slot A / slot B).
type StepAnswers struct {
	Index          int            `json:"index"`
	A              VariantRatings `json:"a"`
	B              VariantRatings `json:"b"`
	Preferences    Preferences    `json:"preferences"`
	AlreadyVisited string         `json:"already_visited"`
}

// ComparisonRecord is one exported row per POI. Ratings and preferences are
// resolved to the source (manual or AI), not the slot.
type ComparisonRecord struct {
	UserID                string    `json:"user_id"`
	POIID                 string    `json:"poi_id"`
	POITitle              string    `json:"poi_title"`
	IsManualFirst         bool      `json:"is_manual_first"`
	ManualSignificance    string    `json:"manual_significance"`
	ManualTrust           string    `json:"manual_trust"`
	ManualClarity         string    `json:"manual_clarity"`
	AISignificance        string    `json:"ai_significance"`
	AITrust               string    `json:"ai_trust"`
	AIClarity             string    `json:"ai_clarity"`
	EngagingPreference    string    `json:"engaging_preference"`
	RelevantPreference    string    `json:"relevant_preference"`
	EagerPreference       string    `json:"eager_preference"`
	TitlePreference       string    `json:"title_preference"`
	DescriptionPreference string    `json:"description_preference"`
	AlreadyVisited        string    `json:"already_visited"`
	Timestamp             time.Time `json:"timestamp"`
}

type FinalFeedback struct {
	UserID           string    `json:"user_id"`
	Timestamp        time.Time `json:"timestamp"`
	OverallRating    *int      `json:"overall_rating"`
	Comments         string    `json:"comments"`
	AdaptationRating *int      `json:"adaptation_rating"`
	AIComfortRating  *int      `json:"ai_comfort_rating"`
	FinalFeedback    string    `json:"final_feedback"`
	LotteryEmail     string    `json:"lottery_email"`
}

// BuildRecord resolves slot answers into a source-keyed record.
func BuildRecord(userID string, poi POI, manualFirst bool, answers StepAnswers, at time.Time) ComparisonRecord {
	manual, ai := answers.A, answers.B
	if !manualFirst {
		manual, ai = answers.B, answers.A
	}
	resolve := func(slot string) string {
		return ResolvePreference(slot, manualFirst)
	}
	return ComparisonRecord{
		UserID:                userID,
		POIID:                 poi.ID,
		POITitle:              poi.Title,
		IsManualFirst:         manualFirst,
		ManualSignificance:    manual.Significance,
		ManualTrust:           manual.Trust,
		ManualClarity:         manual.Clarity,
		AISignificance:        ai.Significance,
		AITrust:               ai.Trust,
		AIClarity:             ai.Clarity,
		EngagingPreference:    resolve(answers.Preferences.Engaging),
		RelevantPreference:    resolve(answers.Preferences.Relevant),
		EagerPreference:       resolve(answers.Preferences.Eager),
		TitlePreference:       resolve(answers.Preferences.Title),
		DescriptionPreference: resolve(answers.Preferences.Description),
		AlreadyVisited:        answers.AlreadyVisited,
		Timestamp:             at,
	}
}

// ResolvePreference maps a slot answer to the source label.
func ResolvePreference(slot string, manualFirst bool) string {
	switch slot {
	case SlotA:
		if manualFirst {
			return VersionManual
		}
		return VersionAI
	case SlotB:
		if manualFirst {
			return VersionAI
		}
		return VersionManual
	default:
		return slot
	}
}
