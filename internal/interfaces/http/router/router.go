package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"invoice_dashboard/internal/interfaces/http/handler"
	"invoice_dashboard/internal/interfaces/http/middleware"
	"invoice_dashboard/pkg/logger"
)

func RegisterRoutes(r *gin.Engine, invoiceHandler *handler.InvoiceHandler, log logger.Logger) {
	r.Use(middleware.Metrics(), middleware.RequestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	invoices := r.Group("/dashboard/invoices")
	{
		invoices.GET("", invoiceHandler.ListInvoices)
		invoices.POST("/create", invoiceHandler.CreateInvoice)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.POST("/:id/edit", invoiceHandler.UpdateInvoice)
		invoices.POST("/:id/delete", invoiceHandler.DeleteInvoice)
	}
}
