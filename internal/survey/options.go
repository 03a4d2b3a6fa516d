package survey

// Option lists offered by the intake form and the rating questions. Profile
// and answer validation only accepts values from these lists.

var Nationalities = []string{
	"German", "Afghan", "Albanian", "Algerian", "American", "Andorran", "Angolan", "Antiguan",
	"Argentine", "Armenian", "Australian", "Austrian", "Azerbaijani", "Bahamian", "Bahraini",
	"Bangladeshi", "Barbadian", "Belarusian", "Belgian", "Belizean", "Beninese", "Bhutanese",
	"Bolivian", "Bosnian", "Brazilian", "British", "Bruneian", "Bulgarian", "Burkinabe", "Burmese",
	"Burundian", "Cambodian", "Cameroonian", "Canadian", "Cape Verdean", "Central African", "Chadian",
	"Chilean", "Chinese", "Colombian", "Comoran", "Congolese", "Costa Rican", "Croatian", "Cuban",
	"Cypriot", "Czech", "Danish", "Djiboutian", "Dominican", "Dutch", "East Timorese", "Ecuadorian",
	"Egyptian", "Emirati", "English", "Equatorial Guinean", "Eritrean", "Estonian", "Ethiopian",
	"Fijian", "Filipino", "Finnish", "French", "Gabonese", "Gambian", "Georgian", "Ghanaian", "Greek",
	"Grenadian", "Guatemalan", "Guinean", "Guyanese", "Haitian", "Honduran", "Hungarian", "Icelandic",
	"Indian", "Indonesian", "Iranian", "Iraqi", "Irish", "Israeli", "Italian", "Ivorian", "Jamaican",
	"Japanese", "Jordanian", "Kazakhstani", "Kenyan", "Korean", "Kuwaiti", "Kyrgyz", "Laotian",
	"Latvian", "Lebanese", "Liberian", "Libyan", "Lithuanian", "Luxembourg", "Macedonian", "Malagasy",
	"Malawian", "Malaysian", "Maldivian", "Malian", "Maltese", "Mauritanian", "Mauritian", "Mexican",
	"Moldovan", "Monacan", "Mongolian", "Montenegrin", "Moroccan", "Mozambican", "Namibian",
	"Nepalese", "New Zealand", "Nicaraguan", "Nigerian", "Norwegian", "Omani", "Pakistani",
	"Panamanian", "Papua New Guinean", "Paraguayan", "Peruvian", "Polish", "Portuguese", "Qatari",
	"Romanian", "Russian", "Rwandan", "Saint Lucian", "Salvadoran", "Samoan", "Saudi", "Scottish",
	"Senegalese", "Serbian", "Seychellois", "Sierra Leonean", "Singaporean", "Slovak", "Slovenian",
	"Solomon Islander", "Somali", "South African", "Spanish", "Sri Lankan", "Sudanese", "Surinamese",
	"Swazi", "Swedish", "Swiss", "Syrian", "Taiwanese", "Tajik", "Tanzanian", "Thai", "Togolese",
	"Tongan", "Trinidadian", "Tunisian", "Turkish", "Turkmen", "Tuvaluan", "Ugandan", "Ukrainian",
	"Uruguayan", "Uzbekistani", "Venezuelan", "Vietnamese", "Welsh", "Yemeni", "Zambian",
	"Zimbabwean",
}

var ProfessionTypes = []string{
	"Student", "Academic/Professor", "Engineer", "Doctor/Healthcare",
	"Business/Finance", "Artist/Creative", "Government/Public Service",
	"Self-employed", "Retired", "Other",
}

var Hobbies = []string{
	"Reading", "Writing", "Sports", "Music", "Cooking", "Gaming",
	"Photography", "Art", "Dancing", "Gardening", "Traveling",
	"Movies/TV", "Technology", "Fashion", "Fitness", "Other",
}

var TravelStyles = []string{
	"Luxury", "Budget", "Adventure", "Cultural", "Relaxation",
	"Family-friendly", "Solo", "Group Tours", "Road Trips",
	"Backpacking", "Eco-tourism",
}

var TravelInterests = []string{
	"History & Culture", "Nature & Outdoors", "Food & Cuisine",
	"Architecture", "Art & Museums", "Shopping", "Local Experiences",
	"Family Activities", "Adventure Sports", "Relaxation",
	"Photography", "Religious Sites", "Nightlife", "Festivals",
}

var TravelExperienceLevels = []string{"Beginner", "Intermediate", "Experienced", "Expert"}

var GenderOptions = []string{"Male", "Female", "Non-binary", "Prefer not to say"}

var MaritalStatusOptions = []string{
	"Single", "Married", "In a Relationship", "Divorced", "Widowed", "Prefer not to say",
}

var YesNoOptions = []string{"No", "Yes"}

// Five-point scales, ordered from 1 to 5.
var (
	RatingScale  = []string{"Strongly Disagree", "Disagree", "Neutral", "Agree", "Strongly Agree"}
	TrustScale   = []string{"Not at all", "Slightly", "Moderately", "Very", "Extremely"}
	ClarityScale = []string{"Very Unclear", "Unclear", "Neutral", "Clear", "Very Clear"}
)

// Slot answers for the comparative questions.
const (
	SlotA       = "A"
	SlotB       = "B"
	BothEqually = "Both equally"
	NoSelection = "No Selection"
)

var PreferenceOptions = []string{SlotA, SlotB, BothEqually}

// Source labels written to exports. "Version A" always denotes the
// human-authored original and "Version B" the generated variant, whatever
// slot each was shown in.
const (
	VersionManual = "Version A"
	VersionAI     = "Version B"
)

// MinSelections is the minimum number of hobbies, interests and travel
// styles an intake must carry.
const MinSelections = 3

// Options bundles every list for the form endpoint.
type Options struct {
	Nationalities          []string `json:"nationalities"`
	ProfessionTypes        []string `json:"profession_types"`
	Hobbies                []string `json:"hobbies"`
	TravelStyles           []string `json:"travel_styles"`
	TravelInterests        []string `json:"travel_interests"`
	TravelExperienceLevels []string `json:"travel_experience_levels"`
	GenderOptions          []string `json:"gender_options"`
	MaritalStatusOptions   []string `json:"marital_status_options"`
	YesNoOptions           []string `json:"yes_no_options"`
	RatingScale            []string `json:"rating_scale"`
	TrustScale             []string `json:"trust_scale"`
	ClarityScale           []string `json:"clarity_scale"`
	PreferenceOptions      []string `json:"preference_options"`
	MinSelections          int      `json:"min_selections"`
}

func AllOptions() Options {
	return Options{
		Nationalities:          Nationalities,
		ProfessionTypes:        ProfessionTypes,
		Hobbies:                Hobbies,
		TravelStyles:           TravelStyles,
		TravelInterests:        TravelInterests,
		TravelExperienceLevels: TravelExperienceLevels,
		GenderOptions:          GenderOptions,
		MaritalStatusOptions:   MaritalStatusOptions,
		YesNoOptions:           YesNoOptions,
		RatingScale:            RatingScale,
		TrustScale:             TrustScale,
		ClarityScale:           ClarityScale,
		PreferenceOptions:      PreferenceOptions,
		MinSelections:          MinSelections,
	}
}
