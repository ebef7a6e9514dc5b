package routes

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/config"
	"visitor-pass-console/internal/console"
	"visitor-pass-console/internal/email"
	"visitor-pass-console/internal/jwt"
	"visitor-pass-console/internal/nonce"
	"visitor-pass-console/internal/pass"
	"visitor-pass-console/internal/utils"
)

// Handler serves the console over HTTP.
type Handler struct {
	console  *console.Console
	cfg      *config.Config
	signer   *jwt.Signer
	revoked  nonce.NonceStoreInterface
	passes   *pass.Issuer
	notifier email.Notifier
	logger   *slog.Logger
}

func NewHandler(c *console.Console, cfg *config.Config, revoked nonce.NonceStoreInterface, notifier email.Notifier) *Handler {
	if notifier == nil {
		notifier = email.NopNotifier{}
	}
	signer := jwt.NewSigner(cfg.Secret)
	return &Handler{
		console:  c,
		cfg:      cfg,
		signer:   signer,
		revoked:  revoked,
		passes:   pass.NewIssuer(signer, cfg.PassTTL()),
		notifier: notifier,
		logger:   slog.With("component", "routes"),
	}
}

// contextMiddleware exposes request-wide values to handlers and templates.
func (h *Handler) contextMiddleware(c *gin.Context) {
	c.Set(baseURLKey, utils.GetBaseURL(c, h.cfg.BaseURL))
	c.Set(policyKey, h.console.Policy)
	c.Next()
}

// Register mounts every console route on r. r must have the HTML renderer set.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(ErrorHandler(), h.contextMiddleware, h.AuthMiddleware())

	Health(r.Group(""))

	h.AuthRoutes(r.Group("/auth"))
	r.GET("/login", h.loginPage)
	r.GET("/pass/:token", h.verifyPass)

	r.GET("/", RequireAuth(), RequirePage(access.PageDashboard), h.dashboardPage)
	h.recordPages(r.Group("", RequireAuth()))

	api := r.Group("/api", RequireAuth())
	api.GET("/dashboard", RequirePage(access.PageDashboard), h.dashboardJSON)
	// Destination menus on the visitor form need names without the buildings page.
	api.GET("/buildings/names", h.buildingNames)

	h.visitorRoutes(api.Group("/visitors", RequirePage(access.PageVisitors)))
	h.employeeRoutes(api.Group("/employees", RequirePage(access.PageEmployees)))
	h.buildingRoutes(api.Group("/buildings", RequirePage(access.PageBuildings)))
	h.operatorRoutes(api.Group("/operators", RequirePage(access.PageOperators)))
}

func (h *Handler) loginPage(c *gin.Context) {
	if _, ok := currentOperator(c); ok {
		c.Redirect(http.StatusFound, c.GetString(baseURLKey)+"/")
		return
	}
	HTML(c, http.StatusOK, "login", nil)
}

func (h *Handler) dashboardPage(c *gin.Context) {
	HTML(c, http.StatusOK, "dashboard", gin.H{
		"Summary": h.console.Dashboard(c.Request.Context()),
	})
}

func (h *Handler) dashboardJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.console.Dashboard(c.Request.Context()))
}

// bindJSON decodes the request body into dst, aborting with 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return false
	}
	return true
}
