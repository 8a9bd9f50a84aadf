package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"eduxchange/internal/application/ports"
	domain "eduxchange/internal/domain/resource"
	"eduxchange/internal/infrastructure/metrics"
	"eduxchange/internal/infrastructure/mq"
	"eduxchange/internal/infrastructure/tracing"
)

var ErrNoAttachment = errors.New("resource has nothing to download")

const octetStream = "application/octet-stream"

type ResourceService struct {
	objects            ports.ObjectStore
	resourceRepository domain.Repository
	events             ports.EventPublisher
	logger             *zap.Logger
	mCounter           *prometheus.CounterVec
	tracer             trace.Tracer
	now                func() time.Time
}

func NewResourceService(
	objects ports.ObjectStore,
	resourceRepository domain.Repository,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *ResourceService {
	return &ResourceService{
		objects:            objects,
		resourceRepository: resourceRepository,
		events:             events,
		logger:             logger,
		mCounter:           mCounter,
		tracer:             otel.Tracer(tracing.TracerName),
		now:                time.Now,
	}
}

func (rs *ResourceService) CreateResource(
	ctx context.Context,
	userID uuid.UUID,
	in domain.Resource,
	file *multipart.FileHeader,
) (_ *domain.Resource, err error) {
	ctx, span := rs.tracer.Start(ctx, "ResourceService.CreateResource",
		trace.WithAttributes(attribute.String("resource.type", string(in.Type))))
	defer func() { endSpan(span, err) }()

	if err = in.Check(file != nil); err != nil {
		return nil, err
	}

	in.ID = uuid.Nil
	in.UserID = userID
	in.Tags = domain.NormalizeTags(in.Tags)

	var key string
	if file != nil {
		key, err = rs.upload(ctx, userID, file, &in)
		if err != nil {
			rs.mCounter.WithLabelValues(metrics.StorageUploadFailed).Inc()
			return nil, err
		}
	}

	out, err := rs.resourceRepository.CreateResource(ctx, &in)
	if err != nil {
		if key != "" {
			rs.removeOrphan(ctx, key)
		}
		return nil, err
	}

	rs.publish(ctx, mq.ResourceCreated, out)
	rs.mCounter.WithLabelValues(metrics.ResourcesCreated).Inc()

	return out, nil
}

// upload stores the file and fills the attachment fields of r.
func (rs *ResourceService) upload(
	ctx context.Context,
	userID uuid.UUID,
	fh *multipart.FileHeader,
	r *domain.Resource,
) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	contentType, err := detectContentType(fh.Header.Get("Content-Type"), f)
	if err != nil {
		return "", err
	}

	key := genStorageKey(userID, fh.Filename, contentType, rs.now())
	if err = rs.objects.Upload(ctx, key, f, fh.Size, contentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	url := rs.objects.PublicURL(key)
	name := displayFileName(fh.Filename)
	size := fh.Size
	r.FileURL = &url
	r.FileName = &name
	r.FileSize = &size
	r.MimeType = &contentType

	return key, nil
}

// detectContentType trusts the declared type unless it is missing or
// generic, in which case the content is sniffed and rewound.
func detectContentType(declared string, f io.ReadSeeker) (string, error) {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != octetStream {
		return declared, nil
	}

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	return mt.String(), nil
}

// removeOrphan deletes a blob whose metadata row was never written.
func (rs *ResourceService) removeOrphan(ctx context.Context, key string) {
	if err := rs.objects.Delete(context.WithoutCancel(ctx), key); err != nil {
		rs.logger.Error("orphaned blob cleanup error", zap.Error(err), zap.String("key", key))
		return
	}
	rs.mCounter.WithLabelValues(metrics.OrphanedBlobs).Inc()
}

func (rs *ResourceService) UpdateResource(
	ctx context.Context,
	userID uuid.UUID,
	id domain.ID,
	edit domain.Edit,
) (_ *domain.Resource, err error) {
	ctx, span := rs.tracer.Start(ctx, "ResourceService.UpdateResource")
	defer func() { endSpan(span, err) }()

	existing, err := rs.resourceRepository.FetchResourceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.UserID != userID {
		return nil, domain.ErrNotFound
	}

	in := edit.Apply(*existing)
	if err = in.Check(true); err != nil {
		return nil, err
	}

	out, err := rs.resourceRepository.UpdateResource(ctx, &in)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.ErrNotFound
	}

	rs.publish(ctx, mq.ResourceUpdated, out)
	rs.mCounter.WithLabelValues(metrics.ResourcesUpdated).Inc()

	return out, nil
}

func (rs *ResourceService) FindUserResources(
	ctx context.Context,
	userID uuid.UUID,
	typ *domain.Type,
) (_ domain.Resources, err error) {
	ctx, span := rs.tracer.Start(ctx, "ResourceService.FindUserResources")
	defer func() { endSpan(span, err) }()
	if typ != nil {
		span.SetAttributes(attribute.String("resource.type", string(*typ)))
	}

	return rs.resourceRepository.FetchUserResources(ctx, userID, typ)
}

// ViewResource loads a resource for display and counts the view.
func (rs *ResourceService) ViewResource(ctx context.Context, id domain.ID, viewer uuid.UUID) (_ *domain.Resource, err error) {
	ctx, span := rs.tracer.Start(ctx, "ResourceService.ViewResource",
		trace.WithAttributes(attribute.String("resource.id", id.String())))
	defer func() { endSpan(span, err) }()

	r, err := rs.resourceRepository.IncrementViewCount(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}

	rs.mCounter.WithLabelValues(metrics.ResourceViews).Inc()

	return r, nil
}

// DownloadResource counts a download and returns where to send the client.
func (rs *ResourceService) DownloadResource(ctx context.Context, id domain.ID, viewer uuid.UUID) (_ string, err error) {
	ctx, span := rs.tracer.Start(ctx, "ResourceService.DownloadResource",
		trace.WithAttributes(attribute.String("resource.id", id.String())))
	defer func() { endSpan(span, err) }()

	r, err := rs.resourceRepository.IncrementDownloadCount(ctx, id, viewer)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", domain.ErrNotFound
	}

	rs.mCounter.WithLabelValues(metrics.ResourceDownloads).Inc()

	switch {
	case r.HasFile():
		return *r.FileURL, nil
	case r.ExternalLink != nil && *r.ExternalLink != "":
		return *r.ExternalLink, nil
	}
	return "", ErrNoAttachment
}

func (rs *ResourceService) DeleteResource(ctx context.Context, userID uuid.UUID, id domain.ID) (err error) {
	ctx, span := rs.tracer.Start(ctx, "ResourceService.DeleteResource")
	defer func() { endSpan(span, err) }()

	r, err := rs.resourceRepository.DeleteResource(ctx, id, userID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}

	rs.publish(ctx, mq.ResourceDeleted, r)
	rs.mCounter.WithLabelValues(metrics.ResourcesDeleted).Inc()

	return nil
}

func (rs *ResourceService) publish(ctx context.Context, action string, r *domain.Resource) {
	e := mq.NewEvent(action, r.UserID.String(), r.ID.String())
	if r.HasFile() {
		if key, ok := rs.objects.KeyFromURL(*r.FileURL); ok {
			e.ObjectKey = key
		}
	}
	e.Payload = eventPayload{
		Title:    r.Title,
		Type:     string(r.Type),
		IsPublic: r.IsPublic,
		Tags:     r.Tags,
	}
	rs.events.Publish(ctx, e)
}

type eventPayload struct {
	Title    string   `json:"title"`
	Type     string   `json:"resource_type"`
	IsPublic bool     `json:"is_public"`
	Tags     []string `json:"tags,omitempty"`
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
