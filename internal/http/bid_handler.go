package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/skillforge/bids-service/internal/http/middleware"
	"github.com/skillforge/bids-service/internal/model"
	"github.com/skillforge/bids-service/internal/service"
)

type BidHandler struct {
	bids *service.BidService
	log  zerolog.Logger
}

func NewBidHandler(bids *service.BidService, log zerolog.Logger) *BidHandler {
	return &BidHandler{bids: bids, log: log}
}

func (h *BidHandler) Register(protected gin.IRouter) {
	protected.GET("/bids", h.listMine)
	protected.GET("/bids/:id", h.get)
	protected.PUT("/bids/:id", h.update)
	protected.DELETE("/bids/:id", h.withdraw)
	protected.POST("/projects/:id/bids", h.create)
	protected.GET("/projects/:id/bids", h.listForProject)
}

func (h *BidHandler) get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bid id"})
		return
	}

	bid, err := h.bids.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bid": bid})
}

// updateBidRequest is the permissive wire shape of PUT /bids/:id. It is
// split into exactly one of two typed mutations before any load: a detail
// edit or a status change. A body carrying both kinds is rejected.
type updateBidRequest struct {
	Amount      *float64 `json:"amount"`
	Timeline    *string  `json:"timeline"`
	CoverLetter *string  `json:"coverLetter"`
	Status      *string  `json:"status"`
}

func (h *BidHandler) update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bid id"})
		return
	}

	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req updateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var bid *model.Bid
	if req.Status != nil {
		if req.Amount != nil || req.Timeline != nil || req.CoverLetter != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status cannot be combined with detail fields"})
			return
		}
		status, valid := model.ParseBidStatus(*req.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bid status"})
			return
		}
		bid, err = h.bids.UpdateStatus(c.Request.Context(), principal, id, status)
	} else {
		details := model.BidDetails{
			Amount:      req.Amount,
			Timeline:    req.Timeline,
			CoverLetter: req.CoverLetter,
		}
		bid, err = h.bids.UpdateDetails(c.Request.Context(), principal, id, details)
	}
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bid": bid})
}

func (h *BidHandler) withdraw(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bid id"})
		return
	}

	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	if err := h.bids.Withdraw(c.Request.Context(), principal, id); err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bid withdrawn"})
}

type createBidRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Timeline    string  `json:"timeline"`
	CoverLetter string  `json:"coverLetter"`
}

func (h *BidHandler) create(c *gin.Context) {
	projectID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, err := h.bids.Create(c.Request.Context(), principal, service.CreateBidInput{
		ProjectID:   projectID,
		Amount:      req.Amount,
		Timeline:    req.Timeline,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bid": bid})
}

func (h *BidHandler) listForProject(c *gin.Context) {
	projectID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	bids, err := h.bids.ListForProject(c.Request.Context(), principal, projectID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

func (h *BidHandler) listMine(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	bids, err := h.bids.ListMine(c.Request.Context(), principal)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bids": bids})
}
