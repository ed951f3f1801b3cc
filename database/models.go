package database

import (
	"time"

	"github.com/lib/pq"
)

// Run statuses, in pipeline order
const (
	StatusPending    = "pending"
	StatusExtracting = "extracting"
	StatusScraping   = "scraping"
	StatusClustering = "clustering"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Request is one analysis run triggered by a free-text user request
type Request struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PublicID    string    `gorm:"type:uuid;uniqueIndex" json:"public_id"`
	UserRequest string    `gorm:"size:255" json:"user_request"`
	Status      string    `gorm:"size:20;index" json:"status"`
	Error       string    `gorm:"size:1000" json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	SearchCriteria *SearchCriteria  `gorm:"constraint:OnDelete:CASCADE" json:"search_criteria,omitempty"`
	Products       []ProductMetric  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Clusters       []ProductCluster `gorm:"constraint:OnDelete:CASCADE" json:"clusters,omitempty"`
}

// SearchCriteria are the shopping-search parameters extracted from the
// user's request
type SearchCriteria struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	RequestID uint `gorm:"index" json:"request_id"`

	PrimaryKeywords   pq.StringArray `gorm:"type:text[]" json:"primary_keywords"`
	NegativeKeywords  pq.StringArray `gorm:"type:text[]" json:"negative_keywords"`
	TargetRegion      string         `gorm:"size:10" json:"target_region"`
	PriceMin          int            `json:"price_min"`
	PriceMax          int            `json:"price_max"`
	Currency          string         `gorm:"size:10" json:"currency"`
	VerticalCategory  string         `gorm:"size:50" json:"vertical_category"`
	TimeHorizonMonths int            `json:"time_horizon_in_months"`
}

// ProductMetric is one scraped listing with its signals, opportunity score
// and description embedding. ClusterID is backfilled once clustering runs;
// noise products keep it nil.
type ProductMetric struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	RequestID uint  `gorm:"index" json:"request_id"`
	ClusterID *uint `gorm:"index" json:"cluster_id,omitempty"`

	KeywordSearched  string  `gorm:"size:255" json:"keyword_searched"`
	Platform         string  `gorm:"size:50" json:"platform"`
	UniqueID         string  `gorm:"size:50" json:"unique_id"`
	Description      string  `gorm:"size:1000" json:"description"`
	Price            float64 `json:"price"`
	Currency         string  `gorm:"size:10" json:"currency"`
	ImageURL         string  `gorm:"size:255" json:"image_url"`
	PlatformCategory string  `gorm:"size:50" json:"platform_category"`
	PlatformRegion   string  `gorm:"size:10" json:"platform_region"`

	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"review_count"`
	SalesLastMonth int     `json:"sales_last_month"`
	SearchRanking  int     `json:"search_ranking"`
	Sponsored      bool    `json:"sponsored"`
	Score          int     `json:"score"`

	Embedding pq.Float64Array `gorm:"type:float8[]" json:"-"`
}

// ProductCluster is one persisted market-opportunity cluster: its keyword
// label, summary statistics and trend verdict.
type ProductCluster struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	RequestID uint `gorm:"index" json:"request_id"`

	Label         int            `json:"label"`
	TrendKeywords pq.StringArray `gorm:"type:text[]" json:"trend_keywords"`

	// Cluster statistics
	ClusterSize           int     `json:"cluster_size"`
	MinPrice              float64 `json:"min_price"`
	MaxPrice              float64 `json:"max_price"`
	AveragePrice          float64 `json:"average_price"`
	AverageSalesLastMonth int     `json:"average_sales_last_month"`
	AverageRating         float64 `json:"average_rating"`
	AverageReviewCount    int     `json:"average_review_count"`
	AverageSearchRanking  int     `json:"average_search_ranking"`
	AverageProductScore   float64 `json:"average_product_score"`

	// Trend analytics
	TrendFinalScore      int     `json:"trend_final_score"`
	TrendLabel           string  `gorm:"size:50" json:"trend_label"`
	TrendExplanation     string  `gorm:"size:1000" json:"trend_explanation"`
	TrendSearchScore     float64 `json:"trend_search_score"`
	TrendMarketScore     float64 `json:"trend_market_score"`
	TrendSlope           float64 `json:"trend_slope"`
	TrendVolatility      float64 `json:"trend_volatility"`
	TrendSalesVolume     int     `json:"trend_sales_volume"`
	TrendSaturationRatio float64 `json:"trend_saturation_ratio"`

	CreatedAt time.Time `json:"created_at"`
}
