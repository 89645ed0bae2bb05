package resolution

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadedpez/cardsharp/pkg/entities"
	mock_resolution "github.com/fadedpez/cardsharp/pkg/repositories/resolution/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// recordedRequest is what the fake cluster saw
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeCluster answers Elasticsearch requests from a handler and records them
type fakeCluster struct {
	mu       sync.Mutex
	requests []recordedRequest
	handle   func(req recordedRequest) (int, string)
}

func (f *fakeCluster) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	recorded := recordedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Body:   string(body),
	}

	f.mu.Lock()
	f.requests = append(f.requests, recorded)
	f.mu.Unlock()

	status, payload := f.handle(recorded)
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("X-Elastic-Product", "Elasticsearch")
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(payload)),
		Request:    req,
	}, nil
}

// find returns recorded requests whose path ends with pathSuffix; an empty method matches any
func (f *fakeCluster) find(method, pathSuffix string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	var found []recordedRequest
	for _, req := range f.requests {
		if (method == "" || req.Method == method) && strings.HasSuffix(req.Path, pathSuffix) {
			found = append(found, req)
		}
	}
	return found
}

type ElasticsearchRepositoryTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	base     *mock_resolution.MockRepository
	cluster  *fakeCluster
	ctx      context.Context
	indexMap bool
}

func (s *ElasticsearchRepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.base = mock_resolution.NewMockRepository(s.ctrl)
	s.ctx = context.Background()
	s.indexMap = false
	s.cluster = &fakeCluster{handle: s.defaultHandler}
}

func TestElasticsearchRepositorySuite(t *testing.T) {
	suite.Run(t, new(ElasticsearchRepositoryTestSuite))
}

// defaultHandler behaves like an empty cluster that accepts everything
func (s *ElasticsearchRepositoryTestSuite) defaultHandler(req recordedRequest) (int, string) {
	switch {
	case req.Method == http.MethodHead:
		if s.indexMap {
			return http.StatusOK, ""
		}
		return http.StatusNotFound, ""
	case req.Method == http.MethodPut && req.Path == "/test_resolutions":
		s.indexMap = true
		return http.StatusOK, `{"acknowledged":true,"index":"test_resolutions"}`
	case strings.Contains(req.Path, "/_doc/"):
		return http.StatusCreated, `{"result":"created"}`
	case strings.HasSuffix(req.Path, "/_delete_by_query"):
		return http.StatusOK, `{"deleted":3}`
	}
	return http.StatusOK, `{"hits":{"total":{"value":0},"hits":[]}}`
}

func (s *ElasticsearchRepositoryTestSuite) newRepo() *ElasticsearchRepository {
	repo, err := NewElasticsearchRepository(s.base, &ElasticsearchConfig{
		URL:         "http://es.test:9200",
		IndexPrefix: "test",
		Transport:   s.cluster,
	}, nil)
	s.Require().NoError(err)
	return repo
}

func (s *ElasticsearchRepositoryTestSuite) TestCreatesIndexWithMapping() {
	// Execute
	repo := s.newRepo()

	// Assert
	s.Equal("test_resolutions", repo.Index())
	created := s.cluster.find(http.MethodPut, "/test_resolutions")
	s.Require().Len(created, 1)
	s.Contains(created[0].Body, `"hand_rank": { "type": "integer" }`)
	s.Contains(created[0].Body, `"resolved_at": { "type": "date" }`)
}

func (s *ElasticsearchRepositoryTestSuite) TestExistingIndexIsKept() {
	// Setup
	s.indexMap = true

	// Execute
	s.newRepo()

	// Assert
	s.Empty(s.cluster.find(http.MethodPut, "/test_resolutions"))
}

func (s *ElasticsearchRepositoryTestSuite) TestIndexCreationFailure() {
	// Setup
	s.cluster.handle = func(req recordedRequest) (int, string) {
		if req.Method == http.MethodHead {
			return http.StatusNotFound, ""
		}
		return http.StatusBadRequest, `{"error":{"type":"illegal_argument_exception"}}`
	}

	// Execute
	repo, err := NewElasticsearchRepository(s.base, &ElasticsearchConfig{
		URL:         "http://es.test:9200",
		IndexPrefix: "test",
		Transport:   s.cluster,
	}, nil)

	// Assert
	s.Nil(repo)
	s.ErrorContains(err, "error creating resolution index")
}

func (s *ElasticsearchRepositoryTestSuite) TestSaveWritesBaseThenIndexes() {
	// Setup
	repo := s.newRepo()
	resolution := testResolution("r1", "p1", "c1", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.base.EXPECT().SaveResolution(s.ctx, resolution).Return(nil)

	// Execute
	err := repo.SaveResolution(s.ctx, resolution)

	// Assert
	s.Require().NoError(err)
	indexed := s.cluster.find("", "/test_resolutions/_doc/r1")
	s.Require().Len(indexed, 1)
	s.Contains(indexed[0].Query, "refresh=true")

	var doc ESResolution
	s.Require().NoError(json.Unmarshal([]byte(indexed[0].Body), &doc))
	s.Equal("p1", doc.PlayerID)
	s.Equal([]string{"As", "Ah", "10c", "7d", "2c"}, doc.Cards)
	s.Equal("Pair", doc.HandRankName)
}

func (s *ElasticsearchRepositoryTestSuite) TestSaveStopsWhenBaseFails() {
	// Setup
	repo := s.newRepo()
	resolution := testResolution("r1", "p1", "c1", time.Now())
	s.base.EXPECT().SaveResolution(s.ctx, resolution).Return(errors.New("disk full"))

	// Execute
	err := repo.SaveResolution(s.ctx, resolution)

	// Assert
	s.ErrorContains(err, "disk full")
	s.Empty(s.cluster.find("", "/test_resolutions/_doc/r1"))
}

func (s *ElasticsearchRepositoryTestSuite) TestGetPlayerResolutionsSearchesIndex() {
	// Setup
	repo := s.newRepo()
	doc := toESResolution(testResolution("r9", "p1", "c1", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	source, err := json.Marshal(doc)
	s.Require().NoError(err)

	s.cluster.handle = func(req recordedRequest) (int, string) {
		if strings.HasSuffix(req.Path, "/_search") {
			return http.StatusOK, `{"hits":{"total":{"value":2},"hits":[{"_source":` + string(source) +
				`},{"_source":{"id":"bad","cards":["zz"]}}]}}`
		}
		return s.defaultHandler(req)
	}

	// Execute
	results, err := repo.GetPlayerResolutions(s.ctx, "p1", 5)

	// Assert
	s.Require().NoError(err)
	s.Require().Len(results, 1, "Unreadable documents should be skipped")
	s.Equal("r9", results[0].ID)
	s.Equal(entities.Pair, results[0].HandRank)
	s.Len(results[0].Cards, 5)

	searches := s.cluster.find("", "/test_resolutions/_search")
	s.Require().Len(searches, 1)
	s.Contains(searches[0].Body, `"player_id":"p1"`)
	s.Contains(searches[0].Query, "size=5")
}

func (s *ElasticsearchRepositoryTestSuite) TestCategoryCounts() {
	// Setup
	repo := s.newRepo()
	s.cluster.handle = func(req recordedRequest) (int, string) {
		if strings.HasSuffix(req.Path, "/_search") {
			return http.StatusOK, `{"hits":{"hits":[]},"aggregations":{"hand_ranks":{"buckets":[
				{"key":1,"doc_count":7},{"key":2,"doc_count":4},{"key":6,"doc_count":1}]}}}`
		}
		return s.defaultHandler(req)
	}

	// Execute
	counts, err := repo.CategoryCounts(s.ctx, "p1")

	// Assert
	s.Require().NoError(err)
	s.Equal(map[entities.HandRank]int{
		entities.HighCard: 7,
		entities.Pair:     4,
		entities.Flush:    1,
	}, counts)
}

func (s *ElasticsearchRepositoryTestSuite) TestSearchError() {
	// Setup
	repo := s.newRepo()
	s.cluster.handle = func(req recordedRequest) (int, string) {
		if strings.HasSuffix(req.Path, "/_search") {
			return http.StatusInternalServerError, `{"error":"boom"}`
		}
		return s.defaultHandler(req)
	}

	// Execute
	_, err := repo.CategoryCounts(s.ctx, "p1")

	// Assert
	s.ErrorContains(err, "error aggregating hand ranks")
}

func (s *ElasticsearchRepositoryTestSuite) TestPruneBefore() {
	// Setup
	repo := s.newRepo()
	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s.base.EXPECT().PruneBefore(s.ctx, cutoff).Return(3, nil)

	// Execute
	pruned, err := repo.PruneBefore(s.ctx, cutoff)

	// Assert
	s.Require().NoError(err)
	s.Equal(3, pruned)
	deletes := s.cluster.find("", "/test_resolutions/_delete_by_query")
	s.Require().Len(deletes, 1)
	s.Contains(deletes[0].Body, `"lt": "2024-03-01T00:00:00Z"`)
}

func (s *ElasticsearchRepositoryTestSuite) TestDelegatedReads() {
	// Setup
	repo := s.newRepo()
	expected := testResolution("r1", "p1", "c1", time.Now())
	s.base.EXPECT().GetResolution(s.ctx, "r1").Return(expected, nil)
	s.base.EXPECT().GetChannelResolutions(s.ctx, "c1", 10).Return([]*entities.Resolution{expected}, nil)
	s.base.EXPECT().Close().Return(nil)

	// Execute
	got, err := repo.GetResolution(s.ctx, "r1")
	s.Require().NoError(err)
	channel, err := repo.GetChannelResolutions(s.ctx, "c1", 10)
	s.Require().NoError(err)

	// Assert
	s.Same(expected, got)
	s.Len(channel, 1)
	s.NoError(repo.Close())
}
