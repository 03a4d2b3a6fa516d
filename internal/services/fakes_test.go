package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"poisurvey/pkg/utils"
)

// fakeContentClient answers from a callback and counts calls.
type fakeContentClient struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	answer  func(req utils.ContentRequest) (utils.ContentResponse, error)
}

func (f *fakeContentClient) GenerateContent(_ context.Context, req utils.ContentRequest) (utils.ContentResponse, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, req.UserPrompt)
	f.mu.Unlock()
	return f.answer(req)
}

func (f *fakeContentClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// echoClient returns the original title with a prefix and a description
// much longer than any limit.
func echoClient() *fakeContentClient {
	return &fakeContentClient{answer: func(req utils.ContentRequest) (utils.ContentResponse, error) {
		title := between(req.UserPrompt, "Original Title: ", "\n")
		return utils.ContentResponse{
			Title:       "Your " + title,
			Description: strings.Repeat("lovely place to visit ", 30),
		}, nil
	}}
}

// failingFor fails every request whose prompt mentions the given title.
func failingFor(title string) *fakeContentClient {
	return &fakeContentClient{answer: func(req utils.ContentRequest) (utils.ContentResponse, error) {
		if strings.Contains(req.UserPrompt, "Original Title: "+title+"\n") {
			return utils.ContentResponse{}, errors.New("endpoint timeout")
		}
		return utils.ContentResponse{Title: "Short", Description: "Short text."}, nil
	}}
}

func between(s, start, end string) string {
	i := strings.Index(s, start)
	if i < 0 {
		return ""
	}
	s = s[i+len(start):]
	if j := strings.Index(s, end); j >= 0 {
		return s[:j]
	}
	return s
}

// blockingClient never answers before its context ends.
type blockingClient struct{}

func (blockingClient) GenerateContent(ctx context.Context, _ utils.ContentRequest) (utils.ContentResponse, error) {
	<-ctx.Done()
	return utils.ContentResponse{}, ctx.Err()
}
