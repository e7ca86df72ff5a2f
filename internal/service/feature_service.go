package service

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mahfuzul873/m873/internal/model"
	appErr "github.com/mahfuzul873/m873/internal/pkg/errors"
	"github.com/mahfuzul873/m873/internal/pkg/timeutil"
)

type FeatureStore interface {
	Create(ctx context.Context, feature *model.Feature) error
	Get(ctx context.Context, id string) (*model.Feature, error)
	List(ctx context.Context, status string) ([]model.Feature, error)
	Update(ctx context.Context, feature *model.Feature) error
	Delete(ctx context.Context, id string) error
}

// PublicFeature is the rendered shape served to the marketing site:
// description markdown converted to HTML.
type PublicFeature struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DescriptionHTML string `json:"description_html"`
	Status          string `json:"status"`
	SortOrder       int    `json:"sort_order"`
	Link            string `json:"link"`
}

type FeatureService struct {
	features FeatureStore
	md       goldmark.Markdown
}

func NewFeatureService(features FeatureStore) *FeatureService {
	return &FeatureService{
		features: features,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (s *FeatureService) Create(ctx context.Context, feature *model.Feature) (*model.Feature, error) {
	if err := validateFeature(feature); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	feature.ID = newID()
	feature.Ctime = now
	feature.Mtime = now
	if err := s.features.Create(ctx, feature); err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *FeatureService) Update(ctx context.Context, feature *model.Feature) (*model.Feature, error) {
	if feature.ID == "" {
		return nil, appErr.ErrInvalid
	}
	if err := validateFeature(feature); err != nil {
		return nil, err
	}
	feature.Mtime = timeutil.NowUnix()
	if err := s.features.Update(ctx, feature); err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *FeatureService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErr.ErrInvalid
	}
	return s.features.Delete(ctx, id)
}

func (s *FeatureService) List(ctx context.Context, status string) ([]model.Feature, error) {
	if status != "" && status != model.FeatureStatusActive && status != model.FeatureStatusUpcoming {
		return nil, appErr.ErrInvalid
	}
	return s.features.List(ctx, status)
}

// ListPublic returns features ordered by sort_order with descriptions
// rendered to HTML.
func (s *FeatureService) ListPublic(ctx context.Context, status string) ([]PublicFeature, error) {
	features, err := s.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]PublicFeature, 0, len(features))
	for _, feature := range features {
		html, err := s.renderMarkdown(feature.Description)
		if err != nil {
			html = feature.Description
		}
		out = append(out, PublicFeature{
			ID:              feature.ID,
			Title:           feature.Title,
			DescriptionHTML: html,
			Status:          feature.Status,
			SortOrder:       feature.SortOrder,
			Link:            feature.Link,
		})
	}
	return out, nil
}

func (s *FeatureService) renderMarkdown(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func validateFeature(feature *model.Feature) error {
	if feature == nil || feature.Title == "" {
		return appErr.ErrInvalid
	}
	if feature.Status == "" {
		feature.Status = model.FeatureStatusUpcoming
	}
	if feature.Status != model.FeatureStatusActive && feature.Status != model.FeatureStatusUpcoming {
		return appErr.ErrInvalid
	}
	return nil
}
