package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Profile)
		want   []string
	}{
		{
			name:   "valid",
			modify: func(p *Profile) {},
		},
		{
			name:   "age out of range",
			modify: func(p *Profile) { p.Age = 121 },
			want:   []string{"age must be between 0 and 120"},
		},
		{
			name:   "duplicate hobbies do not count twice",
			modify: func(p *Profile) { p.Hobbies = []string{"Reading", "Reading", "Music"} },
			want:   []string{"select at least 3 hobbies"},
		},
		{
			name:   "unknown interest",
			modify: func(p *Profile) { p.Interests = append(p.Interests, "Skydiving") },
			want:   []string{`unknown travel interest "Skydiving"`},
		},
		{
			name:   "too few travel styles",
			modify: func(p *Profile) { p.PreferredTravelStyle = []string{"Solo"} },
			want:   []string{"select at least 3 travel styles"},
		},
		{
			name:   "blank city and unspecified profession",
			modify: func(p *Profile) { p.City = "  "; p.Profession = "Other" },
			want:   []string{"enter your current city", "specify your profession"},
		},
		{
			name:   "missing gender",
			modify: func(p *Profile) { p.Gender = "" },
			want:   []string{"select your gender"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.modify(&p)
			assert.Equal(t, tt.want, ValidateProfile(p))
		})
	}
}

func TestValidateAnswers_EmptyStepListsEveryQuestion(t *testing.T) {
	problems := ValidateAnswers(StepAnswers{})
	assert.Len(t, problems, 11)
	assert.Contains(t, problems, "POI A: how trustworthy does this description appear to be?")
	assert.Contains(t, problems, "overall, which description was better?")
}

func TestValidateAnswers_FamiliarityIsOptional(t *testing.T) {
	a := completeAnswers(0)
	a.AlreadyVisited = ""
	assert.Empty(t, ValidateAnswers(a))
}

func TestValidateFinal(t *testing.T) {
	zero, three, six := 0, 3, 6

	assert.Empty(t, ValidateFinal(FinalFeedback{}))
	assert.Empty(t, ValidateFinal(FinalFeedback{OverallRating: &three, LotteryEmail: "a@b.de"}))
	assert.Equal(t,
		[]string{"overall rating must be between 1 and 5", "AI comfort rating must be between 1 and 5"},
		ValidateFinal(FinalFeedback{OverallRating: &zero, AIComfortRating: &six}))
	assert.Equal(t,
		[]string{"enter a valid email address"},
		ValidateFinal(FinalFeedback{LotteryEmail: "not-an-email"}))
}

func TestResolvePreference(t *testing.T) {
	assert.Equal(t, VersionManual, ResolvePreference(SlotA, true))
	assert.Equal(t, VersionAI, ResolvePreference(SlotB, true))
	assert.Equal(t, VersionAI, ResolvePreference(SlotA, false))
	assert.Equal(t, VersionManual, ResolvePreference(SlotB, false))
	assert.Equal(t, BothEqually, ResolvePreference(BothEqually, false))
}
