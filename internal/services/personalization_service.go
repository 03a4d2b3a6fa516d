package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"poisurvey/internal/repositories"
	"poisurvey/internal/survey"
	"poisurvey/pkg/logger"
	"poisurvey/pkg/utils"
)

const (
	ErrorTitle       = survey.ErrorTitle
	ErrorDescription = survey.ErrorDescription

	notSpecified = "Not specified"
)

// ProgressFunc is told how many POIs of a batch are finished.
type ProgressFunc func(done, total int)

type PersonalizationServiceInterface interface {
	// Generate never fails: any endpoint problem yields the error sentinels.
	Generate(ctx context.Context, poi survey.POI, profile survey.Profile) survey.GeneratedContent
	// GenerateAll returns one entry per POI, reusing the user's cache when it
	// exists. It only errors when ctx is done before the batch finished.
	GenerateAll(ctx context.Context, userID string, pois []survey.POI, profile survey.Profile, progress ProgressFunc) (map[string]survey.GeneratedContent, error)
}

type PersonalizationConfig struct {
	Timeout     time.Duration
	Concurrency int
}

type PersonalizationService struct {
	client utils.ContentClientInterface
	cache  repositories.ContentCacheRepositoryInterface
	log    *logger.Logger
	cfg    PersonalizationConfig
}

func NewPersonalizationService(
	client utils.ContentClientInterface,
	cache repositories.ContentCacheRepositoryInterface,
	log *logger.Logger,
	cfg PersonalizationConfig,
) *PersonalizationService {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &PersonalizationService{
		client: client,
		cache:  cache,
		log:    log.With("service", "PersonalizationService"),
		cfg:    cfg,
	}
}

func (s *PersonalizationService) Generate(ctx context.Context, poi survey.POI, profile survey.Profile) survey.GeneratedContent {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	titleLimit := utf8.RuneCountInString(poi.Title)
	descriptionLimit := utf8.RuneCountInString(poi.Description)

	resp, err := s.client.GenerateContent(ctx, utils.ContentRequest{
		SystemPrompt: buildSystemPrompt(titleLimit, descriptionLimit),
		UserPrompt:   buildUserPrompt(poi, profile, titleLimit, descriptionLimit),
	})
	if err != nil {
		s.log.Warn("content generation failed", "poi_id", poi.ID, "user_id", profile.UserID, "error", err)
		return survey.GeneratedContent{Title: ErrorTitle, Description: ErrorDescription}
	}

	return survey.GeneratedContent{
		Title:       TruncateAtWord(resp.Title, titleLimit),
		Description: TruncateAtWord(resp.Description, descriptionLimit),
	}
}

func (s *PersonalizationService) GenerateAll(
	ctx context.Context,
	userID string,
	pois []survey.POI,
	profile survey.Profile,
	progress ProgressFunc,
) (map[string]survey.GeneratedContent, error) {
	if progress == nil {
		progress = func(int, int) {}
	}

	cached, ok, err := s.cache.Load(userID)
	if err != nil {
		s.log.Warn("ignoring unreadable content cache", "user_id", userID, "error", err)
	}
	if ok {
		s.log.Debug("content cache hit", "user_id", userID, "entries", len(cached))
		progress(len(pois), len(pois))
		return cached, nil
	}

	var (
		mu      sync.Mutex
		done    int
		content = make(map[string]survey.GeneratedContent, len(pois))
	)
	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Concurrency)

	started := time.Now()
	for _, poi := range pois {
		g.Go(func() error {
			c := s.Generate(ctx, poi, profile)

			mu.Lock()
			defer mu.Unlock()
			content[poi.ID] = c
			done++
			progress(done, len(pois))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generation for user %s interrupted: %w", userID, err)
	}
	s.log.Info("generated personalised content",
		"user_id", userID, "pois", len(pois), "duration", time.Since(started))

	if err := s.cache.Save(userID, content); err != nil {
		s.log.Warn("could not write content cache", "user_id", userID, "error", err)
	}
	return content, nil
}

// TruncateAtWord shortens text to at most limit runes, cutting at the last
// whitespace at or before the limit. Text without such a whitespace becomes
// empty rather than ending mid-word.
func TruncateAtWord(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	if unicode.IsSpace(runes[limit]) {
		return strings.TrimRightFunc(string(runes[:limit]), unicode.IsSpace)
	}
	for i := limit - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return strings.TrimRightFunc(string(runes[:i]), unicode.IsSpace)
		}
	}
	return ""
}

func buildSystemPrompt(titleLimit, descriptionLimit int) string {
	return fmt.Sprintf(`You are an expert travel writer and content creator. Your task is to create engaging,
informative titles and descriptions for Points of Interest (POIs) that capture attention and provide value to potential visitors.
Focus on unique aspects, cultural significance, and visitor experience. Consider the visitor's family situation and adapt the content
to highlight relevant aspects (e.g., family-friendly features, romantic spots for couples, social venues for singles).

IMPORTANT LENGTH CONSTRAINTS:
- The description MUST NOT exceed %d characters
- The title MUST NOT exceed %d characters
- Be concise while maintaining informativeness

Answer with a JSON object with the fields "title" and "description".`, descriptionLimit, titleLimit)
}

func buildUserPrompt(poi survey.POI, p survey.Profile, titleLimit, descriptionLimit int) string {
	var b strings.Builder
	b.WriteString("Create a title and description for this Point of Interest, personalized for the following user:\n")
	fmt.Fprintf(&b, "User Age: %s\n", orNotSpecified(ageText(p.Age)))
	fmt.Fprintf(&b, "User Gender: %s\n", orNotSpecified(p.Gender))
	fmt.Fprintf(&b, "Marital Status: %s\n", orNotSpecified(p.MaritalStatus))
	fmt.Fprintf(&b, "Have Children: %s\n", orNotSpecified(p.HasChildren))
	fmt.Fprintf(&b, "Nationality: %s\n", orNotSpecified(p.Nationality))
	fmt.Fprintf(&b, "Current City: %s\n", orNotSpecified(p.City))
	fmt.Fprintf(&b, "Accessibility Needs: %s\n", orNotSpecified(p.Disability))
	fmt.Fprintf(&b, "Travels With Pets: %s\n", orNotSpecified(p.Pets))
	fmt.Fprintf(&b, "User Interests: %s\n", orNotSpecified(strings.Join(p.Interests, ", ")))
	fmt.Fprintf(&b, "User Travel Experience: %s\n", orNotSpecified(p.TravelExperience))
	fmt.Fprintf(&b, "Profession: %s\n", orNotSpecified(p.Profession))
	fmt.Fprintf(&b, "Hobbies: %s\n", orNotSpecified(strings.Join(p.Hobbies, ", ")))
	fmt.Fprintf(&b, "Preferred Travel Style: %s\n", orNotSpecified(strings.Join(p.PreferredTravelStyle, ", ")))
	if tone := lifeStageTone(p); tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", tone)
	}
	b.WriteString("\nPoint of Interest:\n")
	fmt.Fprintf(&b, "Original Title: %s\n", poi.Title)
	fmt.Fprintf(&b, "Original Description: %s\n", poi.Description)
	b.WriteString("\nSTRICT LENGTH REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Your description MUST be %d characters or less\n", descriptionLimit)
	fmt.Fprintf(&b, "- Your title MUST be %d characters or less", titleLimit)
	return b.String()
}

// lifeStageTone steers the framing by family situation.
func lifeStageTone(p survey.Profile) string {
	switch {
	case p.HasChildren == "Yes":
		return "highlight family-friendly features and what children can enjoy"
	case p.MaritalStatus == "Married" || p.MaritalStatus == "In a Relationship":
		return "highlight romantic and shared experiences for couples"
	case p.MaritalStatus == "Single":
		return "highlight social opportunities and places to meet people"
	default:
		return ""
	}
}

func ageText(age int) string {
	if age <= 0 {
		return ""
	}
	return fmt.Sprint(age)
}

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return notSpecified
	}
	return v
}
