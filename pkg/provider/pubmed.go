package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NCATS-Tangerine/rhea-beacon/internal/metrics"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/NCATS-Tangerine/rhea-beacon/pkg/sparql"
	"github.com/hashicorp/go-retryablehttp"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// PubMed defaults.
const (
	DefaultPubMedURL       = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
	DefaultPubMedTool      = "knowledge_beacon"
	DefaultPubMedBatchSize = 50
	// NCBI allows three requests per second without an API key.
	DefaultPubMedInterval = 333 * time.Millisecond
)

// PubMedOptions configures a PubMed client.
type PubMedOptions struct {
	URL         string
	Tool        string
	Email       string
	BatchSize   int
	MinInterval time.Duration
	// CacheSize bounds the summary cache; <= 0 disables it.
	CacheSize int
	// RetryMax is the number of retries of a failed batch. Each retry waits
	// for the rate limiter as well as the backoff.
	RetryMax     int
	RetryWaitMin time.Duration
	HTTPClient   *http.Client
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
}

// Summary is the bibliographic data of one article. Empty fields are unknown.
type Summary struct {
	PMID    string
	Title   string
	PubDate string
}

// PubMed fetches article summaries from NCBI E-utilities in batches,
// spacing requests by at least MinInterval.
type PubMed struct {
	opts    PubMedOptions
	http    *retryablehttp.Client
	limiter *rate.Limiter
	cache   *lru.Cache[string, Summary]
	logger  *zap.Logger
}

// NewPubMed creates a new PubMed client.
func NewPubMed(opts PubMedOptions) (*PubMed, error) {
	if opts.URL == "" {
		opts.URL = DefaultPubMedURL
	}
	if opts.Tool == "" {
		opts.Tool = DefaultPubMedTool
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultPubMedBatchSize
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = DefaultPubMedInterval
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	p := &PubMed{
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(opts.MinInterval), 1),
		logger:  opts.Logger,
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = opts.HTTPClient
	rc.RetryMax = max(opts.RetryMax, 0)
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
		rc.RetryWaitMax = 4 * opts.RetryWaitMin
	}
	rc.Backoff = p.backoff
	rc.Logger = sparql.RetryLogger(opts.Logger)
	p.http = rc
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, Summary](opts.CacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "create pubmed cache")
		}
		p.cache = cache
	}
	return p, nil
}

// NormalizePMID reduces a PubMed IRI or CURIE to its bare identifier.
func NormalizePMID(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	for _, prefix := range []string{strings.ToUpper(sparql.PubMedNamespace), "PMID:", "PUBMED:"} {
		id = strings.TrimPrefix(id, prefix)
	}
	return id
}

// Summaries returns the summaries of ids keyed by normalised PMID. Articles
// that could not be fetched are absent from the result. Only a cancelled
// context is reported as an error.
func (p *PubMed) Summaries(ctx context.Context, ids []string) (map[string]Summary, error) {
	out := make(map[string]Summary, len(ids))

	var pending []string
	seen := make(map[string]bool)
	for _, id := range ids {
		pmid := NormalizePMID(id)
		if pmid == "" || seen[pmid] {
			continue
		}
		seen[pmid] = true
		if p.cache != nil {
			if s, ok := p.cache.Get(pmid); ok {
				out[pmid] = s
				continue
			}
		}
		pending = append(pending, pmid)
	}

	for start := 0; start < len(pending); start += p.opts.BatchSize {
		end := min(start+p.opts.BatchSize, len(pending))
		batch := pending[start:end]

		if err := p.limiter.Wait(ctx); err != nil {
			return out, errors.Wrap(err, "wait for pubmed rate limit")
		}

		summaries, err := p.fetch(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			p.opts.Metrics.CountPubMedBatch("error")
			p.logger.Warn("pubmed batch failed", zap.Int("size", len(batch)), zap.Error(err))
			continue
		}
		p.opts.Metrics.CountPubMedBatch("ok")

		for _, s := range summaries {
			out[s.PMID] = s
			if p.cache != nil {
				p.cache.Add(s.PMID, s)
			}
		}
	}
	return out, nil
}

// backoff spaces retries by the usual exponential backoff and never sooner
// than the rate limiter allows.
func (p *PubMed) backoff(minWait, maxWait time.Duration, attempt int, resp *http.Response) time.Duration {
	wait := retryablehttp.DefaultBackoff(minWait, maxWait, attempt, resp)
	return max(wait, p.limiter.Reserve().Delay())
}

type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type esummaryDoc struct {
	UID     string `json:"uid"`
	Title   string `json:"title"`
	PubDate string `json:"pubdate"`
	Error   string `json:"error"`
}

func (p *PubMed) fetch(ctx context.Context, pmids []string) ([]Summary, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("retmode", "json")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("tool", p.opts.Tool)
	params.Set("email", p.opts.Email)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, p.opts.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build pubmed request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, errors.Upstream(err, "pubmed esummary")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Upstream(fmt.Errorf("status code %d", resp.StatusCode), "pubmed esummary")
	}

	var data esummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.Upstream(err, "decode pubmed esummary")
	}

	var out []Summary
	for key, raw := range data.Result {
		if key == "uids" {
			continue
		}
		var doc esummaryDoc
		if err := json.Unmarshal(raw, &doc); err != nil || doc.Error != "" {
			continue
		}
		if doc.UID == "" {
			doc.UID = key
		}
		out = append(out, Summary{PMID: doc.UID, Title: doc.Title, PubDate: doc.PubDate})
	}
	return out, nil
}
