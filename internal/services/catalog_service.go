package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"poisurvey/internal/survey"
	"poisurvey/pkg/utils"
)

type CatalogServiceInterface interface {
	// Load re-reads the catalog file and returns its POIs in file order.
	Load(ctx context.Context) ([]survey.POI, error)
}

type catalogFile struct {
	Categories []struct {
		Name  string       `json:"name"`
		Color string       `json:"color"`
		POIs  []survey.POI `json:"pois"`
	} `json:"categories"`
}

type CatalogService struct {
	path string
}

func NewCatalogService(path string) CatalogServiceInterface {
	return &CatalogService{path: path}
}

func (s *CatalogService) Load(ctx context.Context) ([]survey.POI, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrCatalogUnavailable, err)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON: %v", utils.ErrCatalogUnavailable, s.path, err)
	}

	pois := make([]survey.POI, 0)
	seen := make(map[string]bool)
	for _, category := range file.Categories {
		for _, poi := range category.POIs {
			id := strings.TrimSpace(poi.ID)
			if id == "" {
				return nil, fmt.Errorf("%w: POI %q in category %q has no id",
					utils.ErrCatalogUnavailable, poi.Title, category.Name)
			}
			if seen[id] {
				return nil, fmt.Errorf("%w: duplicate POI id %q", utils.ErrCatalogUnavailable, id)
			}
			seen[id] = true
			poi.ID = id
			pois = append(pois, poi)
		}
	}
	return pois, nil
}
