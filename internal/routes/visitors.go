package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/collection"
	"visitor-pass-console/internal/dashboard"
	"visitor-pass-console/internal/jwt"
	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/pass"
)

func (h *Handler) visitorRoutes(r *gin.RouterGroup) {
	r.GET("", h.listVisitors)
	r.POST("", h.addVisitor)
	r.GET("/:id", getHandler(h.console.Visitors.Collection, nil))
	r.PATCH("/:id", updateHandler(h.console.Visitors.Collection, h.console.Visitors.Update))
	r.DELETE("/:id", deleteHandler(h.console.Visitors.Collection))

	r.POST("/:id/approve", h.decideVisitor(h.console.Visitors.Approve))
	r.POST("/:id/deny", h.decideVisitor(h.console.Visitors.Deny))
	r.POST("/:id/complete", h.decideVisitor(h.console.Visitors.Complete))

	r.GET("/:id/pass", h.visitorPass)
	r.GET("/:id/pass.png", h.visitorPassQR)
}

// listVisitors supports ?status= and ?date= filters.
func (h *Handler) listVisitors(c *gin.Context) {
	visitors := h.console.Visitors.List(c.Request.Context())
	if date := c.Query("date"); date != "" {
		visitors = dashboard.VisitorsOn(visitors, date)
	}
	if status := model.VisitorStatus(c.Query("status")); status != "" {
		var filtered []model.Visitor
		for _, v := range visitors {
			if v.Status == status {
				filtered = append(filtered, v)
			}
		}
		visitors = filtered
	}
	if visitors == nil {
		visitors = []model.Visitor{}
	}
	c.JSON(http.StatusOK, visitors)
}

func (h *Handler) addVisitor(c *gin.Context) {
	var in model.VisitorInput
	if !bindJSON(c, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	v := h.console.Visitors.Add(ctx, in)
	h.logger.Info("Visitor registered", "id", v.ID, "visit_date", v.VisitDate)
	h.notifier.VisitorRegistered(ctx, v)

	c.JSON(http.StatusCreated, v)
}

type decision func(ctx context.Context, id string) (model.Visitor, error)

func (h *Handler) decideVisitor(decide decision) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := decide(c.Request.Context(), c.Param("id"))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		op, _ := currentOperator(c)
		h.logger.Info("Visitor decision recorded", "id", v.ID, "status", v.Status, "operator", op.Username)
		c.JSON(http.StatusOK, v)
	}
}

// issuePass finds the visitor and signs a pass, aborting on failure.
func (h *Handler) issuePass(c *gin.Context) (pass.Pass, bool) {
	v, ok := h.console.Visitors.Find(c.Request.Context(), c.Param("id"))
	if !ok {
		AbortWithError(c, collection.ErrNotFound)
		return pass.Pass{}, false
	}
	p, err := h.passes.Issue(v)
	if err != nil {
		AbortWithError(c, err)
		return pass.Pass{}, false
	}
	return p, true
}

func (h *Handler) passURL(c *gin.Context, token string) string {
	return c.GetString(baseURLKey) + "/pass/" + token
}

func (h *Handler) visitorPass(c *gin.Context) {
	p, ok := h.issuePass(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pass": p,
		"url":  h.passURL(c, p.Token),
	})
}

func (h *Handler) visitorPassQR(c *gin.Context) {
	p, ok := h.issuePass(c)
	if !ok {
		return
	}

	png, err := pass.QR(h.passURL(c, p.Token), pass.DefaultQRSize)
	if err != nil {
		slog.Warn("Failed to generate QR code", "error", err)
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInternalServer, err))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// verifyPass is the public check a gate performs on a scanned pass. A pass
// stops working once its visitor is no longer approved.
func (h *Handler) verifyPass(c *gin.Context) {
	claims, err := h.passes.Verify(c.Param("token"))
	if err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", jwt.ErrNonValidToken, err))
		return
	}

	v, ok := h.console.Visitors.Find(c.Request.Context(), claims.VisitorID)
	if !ok {
		AbortWithError(c, collection.ErrNotFound)
		return
	}
	if v.Status != model.VisitorApproved {
		AbortWithError(c, fmt.Errorf("%w: visitor %s is %s", pass.ErrNotApproved, v.ID, v.Status))
		return
	}

	resp := gin.H{
		"valid":       true,
		"visitorId":   claims.VisitorID,
		"fullName":    claims.FullName,
		"cardNumber":  claims.CardNumber,
		"destination": claims.Destination,
		"visitDate":   claims.VisitDate,
		"visitTime":   claims.VisitTime,
	}
	if claims.ExpiresAt != nil {
		resp["expiresAt"] = claims.ExpiresAt.Time
	}
	c.JSON(http.StatusOK, resp)
}
