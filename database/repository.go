package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository provides access to analysis runs and their artifacts
type Repository struct {
	db *Database
}

// NewRepository creates a repository backed by the given connection
func NewRepository(db *Database) *Repository {
	return &Repository{db: db}
}

// InitSchema migrates all tables
func (r *Repository) InitSchema() error {
	if err := r.db.DB().AutoMigrate(
		&Request{},
		&SearchCriteria{},
		&ProductMetric{},
		&ProductCluster{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}

// CreateRequest persists a new run in pending state
func (r *Repository) CreateRequest(req *Request) error {
	return r.db.DB().Create(req).Error
}

// UpdateRequestStatus moves a run through the pipeline stages
func (r *Repository) UpdateRequestStatus(requestID uint, status string) error {
	return r.db.DB().Model(&Request{}).Where("id = ?", requestID).
		Update("status", status).Error
}

// FailRequest marks a run failed with the given reason
func (r *Repository) FailRequest(requestID uint, reason string) error {
	return r.db.DB().Model(&Request{}).Where("id = ?", requestID).
		Updates(map[string]interface{}{"status": StatusFailed, "error": reason}).Error
}

// SaveSearchCriteria persists the extracted criteria for a run
func (r *Repository) SaveSearchCriteria(criteria *SearchCriteria) error {
	return r.db.DB().Create(criteria).Error
}

// SaveProducts persists scraped products in one batch
func (r *Repository) SaveProducts(products []ProductMetric) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.DB().CreateInBatches(products, 100).Error
}

// SaveCluster persists one cluster record
func (r *Repository) SaveCluster(cluster *ProductCluster) error {
	return r.db.DB().Create(cluster).Error
}

// AssignProductsToCluster backfills cluster membership on the products
func (r *Repository) AssignProductsToCluster(productIDs []uint, clusterID uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.DB().Model(&ProductMetric{}).Where("id IN ?", productIDs).
		Update("cluster_id", clusterID).Error
}

// GetRequestByPublicID loads a run with its criteria and clusters
func (r *Repository) GetRequestByPublicID(publicID string) (*Request, error) {
	var req Request
	err := r.db.DB().
		Preload("SearchCriteria").
		Preload("Clusters").
		Where("public_id = ?", publicID).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetRecentRequests returns the latest runs, newest first
func (r *Repository) GetRecentRequests(limit int) ([]Request, error) {
	var reqs []Request
	err := r.db.DB().
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}

// GetProductsByRequest returns every product scraped for a run
func (r *Repository) GetProductsByRequest(requestID uint) ([]ProductMetric, error) {
	var products []ProductMetric
	err := r.db.DB().
		Where("request_id = ?", requestID).
		Order("id").
		Find(&products).Error
	return products, err
}

// GetClustersByRequest returns a run's clusters ordered by trend score
func (r *Repository) GetClustersByRequest(requestID uint) ([]ProductCluster, error) {
	var clusters []ProductCluster
	err := r.db.DB().
		Where("request_id = ?", requestID).
		Order("trend_final_score DESC").
		Find(&clusters).Error
	return clusters, err
}

// IsNotFound reports whether err is a missing-record error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
