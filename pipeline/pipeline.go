// Package pipeline orchestrates one analysis run: criteria extraction,
// marketplace scraping, scoring, clustering, labeling and trend scoring.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Hammad1029/trend-finder/analytics"
	"github.com/Hammad1029/trend-finder/cache"
	"github.com/Hammad1029/trend-finder/clustering"
	"github.com/Hammad1029/trend-finder/config"
	"github.com/Hammad1029/trend-finder/database"
	"github.com/Hammad1029/trend-finder/dataforseo"
	"github.com/Hammad1029/trend-finder/keywords"
	"github.com/Hammad1029/trend-finder/llm"
	"github.com/Hammad1029/trend-finder/realtime"
	"github.com/Hammad1029/trend-finder/scoring"
	"github.com/Hammad1029/trend-finder/trends"
)

// LanguageModel covers the two model calls a run makes
type LanguageModel interface {
	ExtractCriteria(ctx context.Context, userRequest string) (*llm.Extraction, error)
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// ProductSearcher runs one marketplace keyword search
type ProductSearcher interface {
	SearchKeyword(ctx context.Context, keyword, region string) ([]database.ProductMetric, error)
}

// TrendFetcher looks up search-interest series for a keyword set
type TrendFetcher interface {
	Explore(ctx context.Context, keywords []string) (*dataforseo.ExploreResponse, error)
}

// Runner executes analysis runs end to end
type Runner struct {
	cfg         config.PipelineConfig
	repo        *database.Repository
	broker      *realtime.Broker
	model       LanguageModel
	searcher    ProductSearcher
	trendsAPI   TrendFetcher
	trendsCache *cache.TrendsCache

	scorer    *scoring.Scorer
	clusterer *clustering.Clusterer
	labeler   *keywords.Extractor
	analyzer  *trends.Analyzer
}

// NewRunner wires a runner from its collaborators. trendsCache and broker
// may be nil; both degrade to no-ops.
func NewRunner(
	cfg *config.Config,
	repo *database.Repository,
	broker *realtime.Broker,
	model LanguageModel,
	searcher ProductSearcher,
	trendsAPI TrendFetcher,
	trendsCache *cache.TrendsCache,
) *Runner {
	return &Runner{
		cfg:         cfg.Pipeline,
		repo:        repo,
		broker:      broker,
		model:       model,
		searcher:    searcher,
		trendsAPI:   trendsAPI,
		trendsCache: trendsCache,
		scorer:      scoring.NewScorer(cfg.Scoring),
		clusterer:   clustering.NewClusterer(cfg.Clustering),
		labeler:     keywords.NewExtractor(cfg.Keywords),
		analyzer:    trends.NewAnalyzer(cfg.Trends),
	}
}

// Run executes one analysis run. The request must already be persisted in
// pending state; every failure path lands it in failed with a reason.
func (r *Runner) Run(ctx context.Context, req *database.Request) {
	start := time.Now()
	log.Printf("🚀 Run %s started: %q", req.PublicID, req.UserRequest)

	criteria, err := r.extract(ctx, req)
	if err != nil {
		r.fail(req, fmt.Sprintf("criteria extraction failed: %v", err))
		return
	}

	products, err := r.scrape(ctx, req, criteria)
	if err != nil {
		r.fail(req, fmt.Sprintf("scraping failed: %v", err))
		return
	}
	if len(products) == 0 {
		r.fail(req, "no products found for the extracted keywords")
		return
	}

	if err := r.clusterAndScore(ctx, req, products); err != nil {
		r.fail(req, fmt.Sprintf("clustering failed: %v", err))
		return
	}

	if err := r.repo.UpdateRequestStatus(req.ID, database.StatusCompleted); err != nil {
		log.Printf("⚠️  Run %s: failed to mark completed: %v", req.PublicID, err)
	}
	r.broker.Progress(req.PublicID, database.StatusCompleted, "")
	log.Printf("✅ Run %s completed in %v (%d products)", req.PublicID, time.Since(start).Round(time.Millisecond), len(products))
}

// extract turns the free-text request into persisted search criteria
func (r *Runner) extract(ctx context.Context, req *database.Request) (*database.SearchCriteria, error) {
	r.setStatus(req, database.StatusExtracting, "extracting search criteria")

	ext, err := r.model.ExtractCriteria(ctx, req.UserRequest)
	if err != nil {
		return nil, err
	}

	criteria := &database.SearchCriteria{
		RequestID:         req.ID,
		PrimaryKeywords:   ext.PrimaryKeywords,
		NegativeKeywords:  ext.NegativeKeywords,
		TargetRegion:      ext.TargetRegion,
		PriceMin:          ext.PriceMin,
		PriceMax:          ext.PriceMax,
		Currency:          ext.Currency,
		VerticalCategory:  ext.VerticalCategory,
		TimeHorizonMonths: ext.TimeHorizonMonths,
	}
	if err := r.repo.SaveSearchCriteria(criteria); err != nil {
		return nil, fmt.Errorf("failed to save criteria: %w", err)
	}

	log.Printf("📋 Run %s: extracted %d keywords (region %s)", req.PublicID, len(criteria.PrimaryKeywords), criteria.TargetRegion)
	return criteria, nil
}

// scrape searches every extracted keyword, scores and embeds the listings,
// and persists them. A single failing keyword is logged and skipped; the run
// fails only when every keyword fails.
func (r *Runner) scrape(ctx context.Context, req *database.Request, criteria *database.SearchCriteria) ([]database.ProductMetric, error) {
	r.setStatus(req, database.StatusScraping, "searching marketplace listings")

	searchKeywords := criteria.PrimaryKeywords
	if r.cfg.DevMode && len(searchKeywords) > 1 {
		searchKeywords = searchKeywords[:1]
		log.Printf("⚠️  Run %s: dev mode, scraping first keyword only", req.PublicID)
	}

	var products []database.ProductMetric
	seen := make(map[string]struct{})
	failures := 0
	for _, kw := range searchKeywords {
		listings, err := r.searcher.SearchKeyword(ctx, kw, criteria.TargetRegion)
		if err != nil {
			failures++
			log.Printf("⚠️  Run %s: search for %q failed: %v", req.PublicID, kw, err)
			continue
		}
		for _, p := range listings {
			// the same listing can rank for several keywords
			if _, dup := seen[p.UniqueID]; dup {
				continue
			}
			seen[p.UniqueID] = struct{}{}

			p.RequestID = req.ID
			p.KeywordSearched = kw
			p.Score = r.scorer.Score(scoring.ProductSignals{
				Description:    p.Description,
				ReviewCount:    p.ReviewCount,
				SalesLastMonth: p.SalesLastMonth,
				SearchRanking:  p.SearchRanking,
				Sponsored:      p.Sponsored,
			})
			products = append(products, p)
		}
	}
	if failures == len(searchKeywords) {
		return nil, fmt.Errorf("all %d keyword searches failed", failures)
	}

	if err := r.embed(ctx, products); err != nil {
		return nil, err
	}
	if err := r.repo.SaveProducts(products); err != nil {
		return nil, fmt.Errorf("failed to save products: %w", err)
	}

	log.Printf("🛒 Run %s: %d unique products from %d keywords", req.PublicID, len(products), len(searchKeywords))
	return products, nil
}

// embed attaches a description embedding to every product, in place
func (r *Runner) embed(ctx context.Context, products []database.ProductMetric) error {
	if len(products) == 0 {
		return nil
	}

	texts := make([]string, len(products))
	for i, p := range products {
		texts[i] = p.Description
	}

	vectors, err := r.model.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}
	for i := range products {
		products[i].Embedding = vectors[i]
	}
	return nil
}

// ClusterResult pairs one computed cluster with the indexes of its member
// products in the input slice.
type ClusterResult struct {
	Cluster database.ProductCluster
	Members []int
}

// clusterAndScore groups the products, analyzes every cluster and persists
// the results with membership backfilled onto the product rows.
func (r *Runner) clusterAndScore(ctx context.Context, req *database.Request, products []database.ProductMetric) error {
	r.setStatus(req, database.StatusClustering, "clustering and scoring opportunities")

	results, err := r.AnalyzeProducts(ctx, req.ID, products)
	if err != nil {
		return err
	}

	for i := range results {
		cluster := &results[i].Cluster
		if err := r.repo.SaveCluster(cluster); err != nil {
			return fmt.Errorf("failed to save cluster %d: %w", cluster.Label, err)
		}

		ids := make([]uint, 0, len(results[i].Members))
		for _, idx := range results[i].Members {
			ids = append(ids, products[idx].ID)
		}
		if err := r.repo.AssignProductsToCluster(ids, cluster.ID); err != nil {
			return fmt.Errorf("failed to assign products to cluster %d: %w", cluster.Label, err)
		}

		if r.broker != nil {
			r.broker.Broadcast("cluster_scored", map[string]interface{}{
				"request_id":  req.PublicID,
				"label":       cluster.Label,
				"trend_label": cluster.TrendLabel,
				"final_score": cluster.TrendFinalScore,
				"keywords":    []string(cluster.TrendKeywords),
			})
		}
	}

	log.Printf("📊 Run %s: %d clusters scored", req.PublicID, len(results))
	return nil
}

// AnalyzeProducts runs the analysis stage on already-scored products:
// clustering on the embeddings, keyword labeling, member statistics and the
// trend verdict per cluster. Noise products belong to no cluster and produce
// no record. Trend lookups fan out on a bounded pool; a failed lookup
// degrades that cluster to an all-zero trend verdict instead of failing the
// run.
func (r *Runner) AnalyzeProducts(ctx context.Context, requestID uint, products []database.ProductMetric) ([]ClusterResult, error) {
	embeddings := make([][]float64, len(products))
	for i, p := range products {
		embeddings[i] = p.Embedding
	}

	labels, err := r.clusterer.Fit(embeddings)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(products))
	for i, p := range products {
		texts[i] = p.Description
	}
	clusterLabels := r.labeler.LabelAllClusters(texts, labels)

	members := make(map[int][]int)
	for i, label := range labels {
		if label == clustering.Noise {
			continue
		}
		members[label] = append(members[label], i)
	}

	ordered := make([]int, 0, len(members))
	for label := range members {
		ordered = append(ordered, label)
	}
	sort.Ints(ordered)

	results := make([]ClusterResult, len(ordered))
	pool := NewWorkerPool(r.cfg.ClusterWorkers, r.cfg.TrendRateLimitMs)
	var mu sync.Mutex

	for slot, label := range ordered {
		slot, label := slot, label
		pool.Submit(func() {
			res := r.analyzeCluster(ctx, requestID, label, members[label], products, clusterLabels[label])
			mu.Lock()
			results[slot] = res
			mu.Unlock()
		})
	}
	pool.Wait()

	return results, nil
}

// analyzeCluster computes one cluster's statistics, label and trend verdict
func (r *Runner) analyzeCluster(ctx context.Context, requestID uint, label int, memberIdx []int, products []database.ProductMetric, kw keywords.ClusterKeywords) ClusterResult {
	summarized := make([]analytics.Product, len(memberIdx))
	for i, idx := range memberIdx {
		p := products[idx]
		summarized[i] = analytics.Product{
			Price:          p.Price,
			Rating:         p.Rating,
			ReviewCount:    p.ReviewCount,
			SalesLastMonth: p.SalesLastMonth,
			SearchRanking:  p.SearchRanking,
			Score:          p.Score,
		}
	}
	stats := analytics.Compute(summarized)

	trendKeywords := topPhrases(kw, r.cfg.TrendKeywordsLimit)
	series := r.fetchTrend(ctx, trendKeywords)
	verdict := r.analyzer.Analyze(series, stats.AverageSalesLastMonth, stats.AverageReviewCount)

	return ClusterResult{
		Members: memberIdx,
		Cluster: database.ProductCluster{
			RequestID:     requestID,
			Label:         label,
			TrendKeywords: trendKeywords,

			ClusterSize:           stats.ClusterSize,
			MinPrice:              stats.MinPrice,
			MaxPrice:              stats.MaxPrice,
			AveragePrice:          stats.AveragePrice,
			AverageSalesLastMonth: stats.AverageSalesLastMonth,
			AverageRating:         stats.AverageRating,
			AverageReviewCount:    stats.AverageReviewCount,
			AverageSearchRanking:  stats.AverageSearchRanking,
			AverageProductScore:   stats.AverageProductScore,

			TrendFinalScore:      verdict.FinalScore,
			TrendLabel:           string(verdict.Label),
			TrendExplanation:     verdict.Explanation,
			TrendSearchScore:     verdict.SearchScore,
			TrendMarketScore:     verdict.MarketScore,
			TrendSlope:           verdict.Slope,
			TrendVolatility:      verdict.Volatility,
			TrendSalesVolume:     verdict.SalesVolume,
			TrendSaturationRatio: verdict.SaturationRatio,
		},
	}
}

// fetchTrend resolves a keyword set to its search-interest series, consulting
// the cache first. Lookup failures and empty keyword sets yield a nil series.
func (r *Runner) fetchTrend(ctx context.Context, trendKeywords []string) []trends.SeriesPoint {
	if len(trendKeywords) == 0 || r.trendsAPI == nil {
		return nil
	}

	res, hit := r.trendsCache.Get(ctx, trendKeywords)
	if !hit {
		var err error
		res, err = r.trendsAPI.Explore(ctx, trendKeywords)
		if err != nil {
			log.Printf("⚠️  Trend lookup failed for %v: %v", trendKeywords, err)
			return nil
		}
		if err := r.trendsCache.Set(ctx, trendKeywords, res); err == nil {
			log.Printf("🧠 Cached trend series for %v", trendKeywords)
		}
	}

	raw := res.FirstSeries()
	series := make([]trends.SeriesPoint, len(raw))
	for i, p := range raw {
		series[i] = trends.SeriesPoint{Timestamp: p.Timestamp, Values: p.Values}
	}
	return series
}

// topPhrases returns up to limit keyword phrases, best first
func topPhrases(kw keywords.ClusterKeywords, limit int) []string {
	n := len(kw.Keywords)
	if limit > 0 && n > limit {
		n = limit
	}
	phrases := make([]string, 0, n)
	for _, k := range kw.Keywords[:n] {
		phrases = append(phrases, k.Phrase)
	}
	return phrases
}

func (r *Runner) setStatus(req *database.Request, status, detail string) {
	if err := r.repo.UpdateRequestStatus(req.ID, status); err != nil {
		log.Printf("⚠️  Run %s: status update to %s failed: %v", req.PublicID, status, err)
	}
	r.broker.Progress(req.PublicID, status, detail)
}

func (r *Runner) fail(req *database.Request, reason string) {
	log.Printf("⚠️  Run %s failed: %s", req.PublicID, reason)
	if err := r.repo.FailRequest(req.ID, reason); err != nil {
		log.Printf("⚠️  Run %s: failed to record failure: %v", req.PublicID, err)
	}
	r.broker.Progress(req.PublicID, database.StatusFailed, reason)
}
