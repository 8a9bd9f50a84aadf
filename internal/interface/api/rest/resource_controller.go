package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eduxchange/internal/application/ports"
	"eduxchange/internal/application/services"
	domain "eduxchange/internal/domain/resource"
	"eduxchange/internal/interface/api/rest/dto/resource"
	"eduxchange/internal/interface/api/rest/middleware"
	"eduxchange/internal/interface/api/rest/validator"
)

// room for the non-file form fields on top of the upload limit
const formOverhead = int64(1 << 20)

type ResourceController struct {
	resourceService ports.ResourceService
	logger          *zap.Logger
	maxUploadBytes  int64
}

func NewResourceController(
	r *gin.Engine,
	resourceService ports.ResourceService,
	logger *zap.Logger,
	verifier ports.TokenVerifier,
	cookieName string,
	maxUploadBytes int64,
) *ResourceController {
	rc := &ResourceController{
		resourceService: resourceService,
		logger:          logger,
		maxUploadBytes:  maxUploadBytes,
	}

	auth := middleware.AuthMiddleware(verifier, cookieName)
	optional := middleware.OptionalAuth(verifier, cookieName)

	r.GET(RouteResources, auth, rc.GetResourcesHandler)
	r.POST(RouteResources, auth, rc.CreateResourceHandler)
	r.GET(RouteResource, optional, rc.GetResourceHandler)
	r.PUT(RouteResource, auth, rc.UpdateResourceHandler)
	r.DELETE(RouteResource, auth, rc.DeleteResourceHandler)
	r.GET(RouteResourceDownload, optional, rc.DownloadResourceHandler)

	return rc
}

func (rc *ResourceController) GetResourcesHandler(c *gin.Context) {
	typ, err := validator.ParseTypeFilter(c.Query("type"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	rs, err := rc.resourceService.FindUserResources(c.Request.Context(), middleware.UserID(c), typ)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get resources"},
		)
		rc.logger.Error("FindUserResources() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, resource.ResponseData{
		Data: resource.ToResponseResources(rs),
	})
}

func (rc *ResourceController) CreateResourceHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, rc.maxUploadBytes+formOverhead)

	var req resource.Request
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	fh, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		fh = nil
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file"})
		return
	case fh.Size <= 0:
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is empty"})
		return
	case fh.Size > rc.maxUploadBytes:
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	if errs := validator.ValidateResource(req, fh != nil, true); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	r, err := rc.resourceService.CreateResource(
		c.Request.Context(),
		middleware.UserID(c),
		resource.ToDomainResource(req),
		fh,
	)
	if err != nil {
		if rc.attachmentError(c, err) {
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to upload resource"},
		)
		rc.logger.Error("CreateResource() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, resource.ToResponseResource(*r))
}

func (rc *ResourceController) GetResourceHandler(c *gin.Context) {
	id, ok := rc.resourceID(c)
	if !ok {
		return
	}

	r, err := rc.resourceService.ViewResource(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get resource"},
		)
		rc.logger.Error("ViewResource() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, resource.ToResponseResource(*r))
}

func (rc *ResourceController) UpdateResourceHandler(c *gin.Context) {
	id, ok := rc.resourceID(c)
	if !ok {
		return
	}

	var req resource.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateResource(req, false, false); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	r, err := rc.resourceService.UpdateResource(
		c.Request.Context(),
		middleware.UserID(c),
		id,
		resource.ToDomainEdit(req),
	)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if rc.attachmentError(c, err) {
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update resource"},
		)
		rc.logger.Error("UpdateResource() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, resource.ToResponseResource(*r))
}

func (rc *ResourceController) DeleteResourceHandler(c *gin.Context) {
	id, ok := rc.resourceID(c)
	if !ok {
		return
	}

	err := rc.resourceService.DeleteResource(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete resource"},
		)
		rc.logger.Error("DeleteResource() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (rc *ResourceController) DownloadResourceHandler(c *gin.Context) {
	id, ok := rc.resourceID(c)
	if !ok {
		return
	}

	target, err := rc.resourceService.DownloadResource(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, services.ErrNoAttachment) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get resource"},
		)
		rc.logger.Error("DownloadResource() error", zap.Error(err))
		return
	}

	c.Redirect(http.StatusFound, target)
}

func (rc *ResourceController) resourceID(c *gin.Context) (domain.ID, bool) {
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "id must be a valid UUID"},
		)
	}
	return id, ok
}

// attachmentError answers the type specific attachment failures the
// service reports. It returns false for anything else.
func (rc *ResourceController) attachmentError(c *gin.Context, err error) bool {
	var field string
	switch {
	case errors.Is(err, domain.ErrFileRequired):
		field = "file"
	case errors.Is(err, domain.ErrLinkRequired):
		field = "external_link"
	default:
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request body",
		"details": map[string]string{field: err.Error()},
	})
	return true
}
