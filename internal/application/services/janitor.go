package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"eduxchange/internal/application/ports"
	"eduxchange/internal/infrastructure/metrics"
	"eduxchange/internal/infrastructure/mq"
)

// BlobJanitor removes the blobs of deleted resources. It consumes the
// resource event stream.
type BlobJanitor struct {
	objects  ports.ObjectStore
	logger   *zap.Logger
	mCounter *prometheus.CounterVec
}

func NewBlobJanitor(objects ports.ObjectStore, logger *zap.Logger, mCounter *prometheus.CounterVec) *BlobJanitor {
	return &BlobJanitor{objects: objects, logger: logger, mCounter: mCounter}
}

func (j *BlobJanitor) HandleEvent(ctx context.Context, routingKey string, body []byte) error {
	if routingKey != mq.ResourceDeleted {
		j.logger.Debug("resource event", zap.String("action", routingKey), zap.Int("bytes", len(body)))
		return nil
	}

	var e mq.Event
	if err := json.Unmarshal(body, &e); err != nil {
		return fmt.Errorf("decode %s event: %w", routingKey, err)
	}
	if e.ObjectKey == "" {
		return nil
	}

	if err := j.objects.Delete(ctx, e.ObjectKey); err != nil {
		return fmt.Errorf("delete blob %s: %w", e.ObjectKey, err)
	}

	j.mCounter.WithLabelValues(metrics.OrphanedBlobs).Inc()
	j.logger.Info("resource blob removed",
		zap.String("resource_id", e.ResourceID),
		zap.String("key", e.ObjectKey),
	)

	return nil
}
