package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "invoice_dashboard/internal/application/invoice"
	"invoice_dashboard/internal/application/revalidate"
	domain "invoice_dashboard/internal/domain/invoice"
	"invoice_dashboard/pkg/logger"
)

const routeCacheHeader = "X-Route-Cache"

type InvoiceHandler struct {
	svc   *app.Service
	pages revalidate.RouteCache
	log   logger.Logger
}

func NewInvoiceHandler(svc *app.Service, pages revalidate.RouteCache, log logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, pages: pages, log: log}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var form app.Form
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.respond(c, h.svc.CreateInvoice(c.Request.Context(), form))
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var form app.Form
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.respond(c, h.svc.UpdateInvoice(c.Request.Context(), c.Param("id"), form))
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	h.respond(c, h.svc.DeleteInvoice(c.Request.Context(), c.Param("id")))
}

// ListInvoices serves the invoice list through the route cache; mutations drop the cached copy.
// The route version is read before the query, so a render that raced a mutation is sent but not kept.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	ctx := c.Request.Context()
	path := app.InvoicesPath

	body, ok, err := h.pages.Get(ctx, path)
	if err != nil {
		h.log.WithContext(ctx).Warn("route cache read failed", logger.String("path", path), logger.Error(err))
	}
	if ok {
		c.Header(routeCacheHeader, "HIT")
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	version, verErr := h.pages.Version(ctx, path)
	if verErr != nil {
		h.log.WithContext(ctx).Warn("route version read failed", logger.String("path", path), logger.Error(verErr))
	}

	invoices, err := h.svc.ListInvoices(ctx)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to fetch invoices"})
		return
	}

	body, err = json.Marshal(gin.H{"invoices": invoices})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to render invoices"})
		return
	}
	if verErr == nil {
		stored, err := h.pages.SetIfUnchanged(ctx, path, body, version)
		switch {
		case err != nil:
			h.log.WithContext(ctx).Warn("route cache write failed", logger.String("path", path), logger.Error(err))
		case !stored:
			h.log.WithContext(ctx).Debug("route invalidated during render, not cached", logger.String("path", path))
		}
	}

	c.Header(routeCacheHeader, "MISS")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.svc.GetInvoice(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database Error: Failed to fetch invoice"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// respond turns an action outcome into navigation or a state object for the form page.
func (h *InvoiceHandler) respond(c *gin.Context, out app.Outcome) {
	if out.Err != nil {
		_ = c.Error(out.Err)
	}

	switch out.Kind {
	case app.KindRedirect:
		c.Redirect(http.StatusSeeOther, out.RedirectTo)
	case app.KindDone:
		c.JSON(http.StatusOK, out.State)
	case app.KindInvalid:
		c.JSON(http.StatusUnprocessableEntity, out.State)
	default:
		c.JSON(http.StatusInternalServerError, out.State)
	}
}
