package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/skillforge/bids-service/internal/http/middleware"
	"github.com/skillforge/bids-service/internal/service"
)

type ContractHandler struct {
	contracts *service.ContractService
	log       zerolog.Logger
}

func NewContractHandler(contracts *service.ContractService, log zerolog.Logger) *ContractHandler {
	return &ContractHandler{contracts: contracts, log: log}
}

func (h *ContractHandler) Register(protected gin.IRouter) {
	protected.GET("/contracts/:id", h.get)
	protected.GET("/contracts/:id/pdf", h.document)
}

func (h *ContractHandler) get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	contract, err := h.contracts.Get(c.Request.Context(), principal, id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract})
}

func (h *ContractHandler) document(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	doc, err := h.contracts.Document(c.Request.Context(), principal, id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+doc.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
