package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	proposaldomain "github.com/robmoran/proposalkit/internal/proposal/domain"
	"github.com/robmoran/proposalkit/internal/selection"
)

type selectionRequest struct {
	EstimateID string   `json:"estimateId"`
	AddOnIDs   []string `json:"addOnIds"`
	Signature  string   `json:"signature"`
}

type selectionQuote struct {
	EstimateID  string   `json:"estimateId,omitempty"`
	AddOnIDs    []string `json:"addOnIds"`
	Total       float64  `json:"total"`
	CanCheckout bool     `json:"canCheckout"`
}

// QuoteSelection prices a homeowner's current package and add-on choices.
// Selections referencing estimates or add-ons that no longer exist are
// dropped rather than rejected, since the document may have changed under
// the viewer.
func (s *Server) QuoteSelection(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	proposal, err := s.proposalSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	quote := quoteSelection(proposal.Document.Data(), req)
	c.JSON(http.StatusOK, quote)
}

// AuthorizeSelection finalizes a selection. It requires a chosen estimate
// that still exists and a non-empty signature; the signature itself is
// acknowledged but never stored.
func (s *Server) AuthorizeSelection(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	proposal, err := s.proposalSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc := proposal.Document.Data()
	estimate := doc.Estimate(strings.TrimSpace(req.EstimateID))
	if !selection.CanCheckout(estimate, req.Signature) {
		if estimate == nil {
			AbortWithError(c, newValidationError("estimateId", "estimate_required", "an estimate must be selected"))
			return
		}
		AbortWithError(c, newValidationError("signature", "signature_required", "a signature is required"))
		return
	}

	quote := quoteSelection(doc, req)
	err = s.proposalSvc.RecordAuthorization(
		c.Request.Context(), id, estimate.ID, quote.AddOnIDs, req.Signature, quote.Total,
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "authorized",
		"quote":  quote,
	})
}

func quoteSelection(doc proposaldomain.Document, req selectionRequest) selectionQuote {
	estimate := doc.Estimate(strings.TrimSpace(req.EstimateID))

	addOnIDs := make([]string, 0, len(req.AddOnIDs))
	addOns := make([]proposaldomain.AddOn, 0, len(req.AddOnIDs))
	seen := make(map[string]struct{}, len(req.AddOnIDs))
	for _, raw := range req.AddOnIDs {
		addOnID := strings.TrimSpace(raw)
		if _, dup := seen[addOnID]; dup {
			continue
		}
		seen[addOnID] = struct{}{}
		if addOn := doc.AddOn(addOnID); addOn != nil {
			addOnIDs = append(addOnIDs, addOn.ID)
			addOns = append(addOns, *addOn)
		}
	}

	quote := selectionQuote{
		AddOnIDs:    addOnIDs,
		Total:       selection.Total(estimate, addOns),
		CanCheckout: selection.CanCheckout(estimate, req.Signature),
	}
	if estimate != nil {
		quote.EstimateID = estimate.ID
	}
	return quote
}
