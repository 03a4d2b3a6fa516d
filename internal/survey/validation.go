package survey

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
)

// ValidateProfile lists every problem with an intake submission. An empty
// result means the profile is accepted.
func ValidateProfile(p Profile) []string {
	var problems []string

	if p.Age < 0 || p.Age > 120 {
		problems = append(problems, "age must be between 0 and 120")
	}
	problems = appendChoice(problems, p.Gender, GenderOptions, "select your gender")
	problems = appendChoice(problems, p.MaritalStatus, MaritalStatusOptions, "select your marital status")
	problems = appendChoice(problems, p.HasChildren, YesNoOptions, "tell us whether you have children")
	problems = appendChoice(problems, p.Nationality, Nationalities, "select your nationality")
	if strings.TrimSpace(p.City) == "" {
		problems = append(problems, "enter your current city")
	}
	problems = appendChoice(problems, p.Disability, YesNoOptions, "tell us about accessibility needs")
	problems = appendChoice(problems, p.Pets, YesNoOptions, "tell us whether you travel with pets")
	if strings.TrimSpace(p.Profession) == "" || p.Profession == "Other" {
		problems = append(problems, "specify your profession")
	}
	problems = appendChoice(problems, p.TravelExperience, TravelExperienceLevels, "select your travel experience level")

	problems = appendSelections(problems, p.Hobbies, Hobbies, "hobbies", "hobby")
	problems = appendSelections(problems, p.Interests, TravelInterests, "travel interests", "travel interest")
	problems = appendSelections(problems, p.PreferredTravelStyle, TravelStyles, "travel styles", "travel style")

	return problems
}

func appendChoice(problems []string, value string, options []string, missing string) []string {
	if value == "" {
		return append(problems, missing)
	}
	if !slices.Contains(options, value) {
		return append(problems, fmt.Sprintf("%q is not a valid choice (%s)", value, missing))
	}
	return problems
}

func appendSelections(problems []string, values, options []string, plural, singular string) []string {
	seen := make(map[string]bool, len(values))
	distinct := 0
	for _, v := range values {
		if !slices.Contains(options, v) {
			problems = append(problems, fmt.Sprintf("unknown %s %q", singular, v))
			continue
		}
		if !seen[v] {
			seen[v] = true
			distinct++
		}
	}
	if distinct < MinSelections {
		problems = append(problems, fmt.Sprintf("select at least %d %s", MinSelections, plural))
	}
	return problems
}

// ValidateAnswers lists the unanswered or invalid questions of one
// comparison step.
func ValidateAnswers(a StepAnswers) []string {
	var problems []string
	for _, v := range []struct {
		label   string
		ratings VariantRatings
	}{{"POI A", a.A}, {"POI B", a.B}} {
		problems = appendScale(problems, v.ratings.Significance, RatingScale,
			v.label+": does the description communicate the significance of the place?")
		problems = appendScale(problems, v.ratings.Trust, TrustScale,
			v.label+": how trustworthy does this description appear to be?")
		problems = appendScale(problems, v.ratings.Clarity, ClarityScale,
			v.label+": how clear and complete is the information provided?")
	}
	problems = appendScale(problems, a.Preferences.Engaging, PreferenceOptions,
		"which description was more engaging?")
	problems = appendScale(problems, a.Preferences.Relevant, PreferenceOptions,
		"which description provided more relevant information?")
	problems = appendScale(problems, a.Preferences.Eager, PreferenceOptions,
		"based on which description would you be more eager to visit this place?")
	problems = appendScale(problems, a.Preferences.Title, PreferenceOptions,
		"which title was more appealing?")
	problems = appendScale(problems, a.Preferences.Description, PreferenceOptions,
		"overall, which description was better?")
	return problems
}

func appendScale(problems []string, value string, scale []string, question string) []string {
	if value == "" || value == NoSelection || !slices.Contains(scale, value) {
		return append(problems, question)
	}
	return problems
}

// ValidateFinal checks the closing questionnaire. Ratings may be left
// unanswered.
func ValidateFinal(f FinalFeedback) []string {
	var problems []string
	for _, r := range []struct {
		name  string
		value *int
	}{
		{"overall rating", f.OverallRating},
		{"adaptation rating", f.AdaptationRating},
		{"AI comfort rating", f.AIComfortRating},
	} {
		if r.value != nil && (*r.value < 1 || *r.value > 5) {
			problems = append(problems, r.name+" must be between 1 and 5")
		}
	}
	if email := strings.TrimSpace(f.LotteryEmail); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			problems = append(problems, "enter a valid email address")
		}
	}
	return problems
}
