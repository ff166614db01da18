package search

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-talent-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-talent-marketplace/internal/domain/repository"
)

const (
	defaultSize = 10
	maxSize     = 50
)

const profileMapping = `{
  "mappings": {
    "properties": {
      "id":              {"type": "keyword"},
      "userId":          {"type": "keyword"},
      "skills":          {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "portfolio":       {"type": "keyword", "index": false},
      "availability":    {"type": "keyword"},
      "hourlyRate":      {"type": "double"},
      "experienceLevel": {"type": "keyword"},
      "bio":             {"type": "text"},
      "createdAt":       {"type": "date"},
      "updatedAt":       {"type": "date"}
    }
  }
}`

// ProfileIndex stores profile documents keyed by owner id.
// A ProfileIndex without a client indexes nothing and finds nothing.
type ProfileIndex struct {
	ES     *elasticsearch.Client
	Name   string
	Logger *logrus.Logger
}

func NewProfileIndex(es *elasticsearch.Client, name string, logger *logrus.Logger) *ProfileIndex {
	return &ProfileIndex{ES: es, Name: name, Logger: logger}
}

func (i *ProfileIndex) enabled() bool { return i != nil && i.ES != nil && i.Name != "" }

// EnsureIndex creates the index with explicit mappings if it does not exist yet.
func (i *ProfileIndex) EnsureIndex(ctx context.Context) error {
	if !i.enabled() {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := esapi.IndicesExistsRequest{Index: []string{i.Name}}.Do(c, i.ES)
	if err != nil {
		return errors.Wrap(err, "check profile index")
	}
	_ = res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{Index: i.Name, Body: strings.NewReader(profileMapping)}.Do(c, i.ES)
	if err != nil {
		return errors.Wrap(err, "create profile index")
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return errors.Errorf("create profile index: %s", res.Status())
	}
	return nil
}

func (i *ProfileIndex) Index(ctx context.Context, p *entity.Profile) error {
	if !i.enabled() {
		return nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encode profile document")
	}
	req := esapi.IndexRequest{Index: i.Name, DocumentID: p.UserID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return errors.Wrap(err, "index profile")
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if i.Logger != nil {
			i.Logger.WithField("status", res.Status()).WithField("user_id", p.UserID).Warn("es index response error")
		}
		return errors.Errorf("index profile: %s", res.Status())
	}
	return nil
}

// Search runs a relevance query over skills and bio with exact-match filters.
func (i *ProfileIndex) Search(ctx context.Context, q repository.ProfileQuery) ([]entity.Profile, error) {
	if !i.enabled() {
		return []entity.Profile{}, nil
	}
	b, err := json.Marshal(buildQuery(q))
	if err != nil {
		return nil, errors.Wrap(err, "encode search query")
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := i.ES.Search(i.ES.Search.WithContext(c), i.ES.Search.WithIndex(i.Name), i.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, errors.Wrap(err, "search profiles")
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, errors.Errorf("search profiles: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.Profile `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "decode search response")
	}

	out := make([]entity.Profile, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func buildQuery(q repository.ProfileQuery) map[string]any {
	size := q.Size
	if size <= 0 || size > maxSize {
		size = defaultSize
	}

	var must any = map[string]any{"match_all": map[string]any{}}
	if text := strings.TrimSpace(q.Text); text != "" {
		must = map[string]any{
			"multi_match": map[string]any{
				"query":  text,
				"fields": []string{"skills^2", "bio"},
			},
		}
	}

	filters := make([]any, 0, 2)
	if q.Availability != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"availability": q.Availability}})
	}
	if q.ExperienceLevel != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"experienceLevel": q.ExperienceLevel}})
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filters,
			},
		},
		"size": size,
	}
}

var _ repository.ProfileSearchIndex = (*ProfileIndex)(nil)
