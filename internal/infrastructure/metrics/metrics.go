package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResourcesCreated    = "resources_created_total"
	ResourcesUpdated    = "resources_updated_total"
	ResourcesDeleted    = "resources_deleted_total"
	ResourceViews       = "resource_views_total"
	ResourceDownloads   = "resource_downloads_total"
	OrphanedBlobs       = "orphaned_blobs_cleaned_total"
	AccountsCreated     = "accounts_created_total"
	SessionsRevoked     = "sessions_revoked_total"
	AppRequests         = "app_requests_total"
	StorageUploadFailed = "storage_upload_failed_total"
)

func counterOpts() prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: "eduxchange",
		Name:      "general_counters",
	}
}

// NewCounter registers the counter with the default registry.
func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(counterOpts(), []string{"result"})
}

// NewUnregistered is for tests.
func NewUnregistered() *prometheus.CounterVec {
	return prometheus.NewCounterVec(counterOpts(), []string{"result"})
}
