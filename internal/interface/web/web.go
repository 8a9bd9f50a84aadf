// Package web serves the server-rendered dashboard pages.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eduxchange/internal/application/ports"
	domain "eduxchange/internal/domain/resource"
	"eduxchange/internal/interface/api/rest/middleware"
	"eduxchange/internal/interface/api/rest/validator"
)

const (
	RouteDashboard         = "/dashboard/resources"
	RouteDashboardResource = RouteDashboard + "/:id"

	noticeNotFound    = "That resource no longer exists."
	noticeUnknownType = "Unknown resource type."
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Controller struct {
	resourceService ports.ResourceService
	logger          *zap.Logger
}

func NewController(
	r *gin.Engine,
	resourceService ports.ResourceService,
	logger *zap.Logger,
	verifier ports.TokenVerifier,
	cookieName string,
) *Controller {
	wc := &Controller{
		resourceService: resourceService,
		logger:          logger,
	}

	r.SetHTMLTemplate(templates)

	auth := middleware.AuthMiddleware(verifier, cookieName)
	r.GET(RouteDashboard, auth, wc.ListHandler)
	r.GET(RouteDashboardResource, auth, wc.DetailHandler)

	return wc
}

func (wc *Controller) ListHandler(c *gin.Context) {
	filter := c.Query("type")
	typ, err := validator.ParseTypeFilter(filter)
	if err != nil {
		redirectWithNotice(c, noticeUnknownType)
		return
	}

	rs, err := wc.resourceService.FindUserResources(c.Request.Context(), middleware.UserID(c), typ)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "failed to get resources"})
		wc.logger.Error("FindUserResources() error", zap.Error(err))
		return
	}

	page := listPage{
		Resources: make([]resourceView, len(rs)),
		Notice:    c.Query("notice"),
	}
	if typ != nil {
		page.Filter = string(*typ)
	}
	page.Types = typeOptions(page.Filter)
	for i, r := range rs {
		page.Resources[i] = toView(r)
	}

	c.HTML(http.StatusOK, "list.html", page)
}

func (wc *Controller) DetailHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("id"))
	if !ok {
		redirectWithNotice(c, noticeNotFound)
		return
	}

	r, err := wc.resourceService.ViewResource(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			redirectWithNotice(c, noticeNotFound)
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "failed to get resource"})
		wc.logger.Error("ViewResource() error", zap.Error(err))
		return
	}

	c.HTML(http.StatusOK, "detail.html", toView(r))
}

func redirectWithNotice(c *gin.Context, notice string) {
	c.Redirect(http.StatusFound, RouteDashboard+"?notice="+url.QueryEscape(notice))
}
