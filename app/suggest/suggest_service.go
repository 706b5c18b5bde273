package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mahesh-hegde/instante/app/dataset"
	"github.com/mahesh-hegde/instante/app/visualizer"
)

const DefaultCacheTTL = 30 * time.Minute

// SuggestionService answers the analyze and explain endpoints. Suggestions
// are computed once per dataset and cached.
type SuggestionService struct {
	datasets *dataset.DatasetService
	engine   *visualizer.Engine
	gen      Generator
	md       *MarkdownRenderer
	cache    *cache.Cache
}

func NewSuggestionService(datasets *dataset.DatasetService, engine *visualizer.Engine, gen Generator, ttl time.Duration) *SuggestionService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &SuggestionService{
		datasets: datasets,
		engine:   engine,
		gen:      gen,
		md:       NewMarkdownRenderer(),
		cache:    cache.New(ttl, 2*ttl),
	}
}

func cacheKey(id string) string {
	return "analysis_" + id
}

func (s *SuggestionService) Analyze(ctx context.Context, id string) (*Analysis, error) {
	ds, profile, err := s.datasets.Info(ctx, id)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.suggestions(ctx, id, ds, profile)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		FileID:            id,
		Suggestions:       suggestions,
		DataOverview:      overviewOf(profile),
		AnalysisTimestamp: time.Now().Format(time.RFC3339),
	}, nil
}

func (s *SuggestionService) suggestions(ctx context.Context, id string, ds *dataset.Dataset, profile *dataset.Profile) ([]Suggestion, error) {
	if v, found := s.cache.Get(cacheKey(id)); found {
		slog.Info("returning cached analysis", "file_id", id)
		return v.([]Suggestion), nil
	}

	generated, err := s.gen.Suggest(ctx, ds, profile)
	if err != nil {
		return nil, fmt.Errorf("generating suggestions for %s: %w", id, err)
	}

	out := make([]Suggestion, 0, len(generated))
	for _, sg := range generated {
		if err := visualizer.Validate(sg.ChartType, sg.Parameters, ds); err != nil {
			slog.Warn("skipping invalid suggestion", "file_id", id, "title", sg.Title, "err", err)
			continue
		}
		html, err := s.md.ToHTML(sg.Insight, profile.Columns)
		if err != nil {
			return nil, fmt.Errorf("rendering insight %q: %w", sg.Title, err)
		}
		sg.InsightHTML = html
		out = append(out, sg)
	}

	s.cache.Set(cacheKey(id), out, cache.DefaultExpiration)
	slog.Info("generated chart suggestions", "file_id", id, "count", len(out))
	return out, nil
}

// Invalidate drops the cached suggestions of a dataset.
func (s *SuggestionService) Invalidate(id string) {
	s.cache.Delete(cacheKey(id))
}

// Explain computes the chart described by req and describes it in Markdown
// and HTML.
func (s *SuggestionService) Explain(ctx context.Context, req visualizer.Request) (*Explanation, error) {
	payload, err := s.engine.Compute(ctx, req)
	if err != nil {
		return nil, err
	}
	ds, err := s.datasets.Get(ctx, req.DatasetID)
	if err != nil {
		return nil, err
	}

	md := ExplainMarkdown(req.ChartType, req.Parameters, payload)
	html, err := s.md.ToHTML(md, ds.ColumnNames())
	if err != nil {
		return nil, fmt.Errorf("rendering explanation: %w", err)
	}
	return &Explanation{
		Title:    visualizer.Title(req.ChartType, req.Parameters),
		Markdown: md,
		HTML:     html,
	}, nil
}
