package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type estimateFieldRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// AddEstimate appends a new pricing option to the proposal.
func (s *Server) AddEstimate(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	proposal, err := s.proposalSvc.AddEstimate(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.commit(id, proposal)
	c.JSON(http.StatusCreated, proposal)
}

// UpdateEstimateField updates one editable field on an estimate. Updates
// addressed at an estimate that no longer exists return the document
// unchanged.
func (s *Server) UpdateEstimateField(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req estimateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.Field = strings.TrimSpace(req.Field)
	if req.Field == "" {
		AbortWithError(c, newValidationError("field", "required", "field is required"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	estimateID := strings.TrimSpace(c.Param("estimateId"))
	proposal, err := s.proposalSvc.UpdateEstimateField(c.Request.Context(), id, estimateID, req.Field, req.Value)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.commit(id, proposal)
	c.JSON(http.StatusOK, proposal)
}

// RemoveEstimate deletes an estimate. Removing an unknown estimate is a
// no-op, not an error.
func (s *Server) RemoveEstimate(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	estimateID := strings.TrimSpace(c.Param("estimateId"))
	proposal, err := s.proposalSvc.RemoveEstimate(c.Request.Context(), id, estimateID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.commit(id, proposal)
	c.JSON(http.StatusOK, proposal)
}

// ReorderEstimates moves an estimate from one position to another.
// Out-of-range positions leave the order unchanged.
func (s *Server) ReorderEstimates(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	proposal, err := s.proposalSvc.ReorderEstimates(c.Request.Context(), id, req.From, req.To)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.commit(id, proposal)
	c.JSON(http.StatusOK, proposal)
}

// AddLineItem appends a blank line item to an estimate.
func (s *Server) AddLineItem(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	estimateID := strings.TrimSpace(c.Param("estimateId"))
	proposal, err := s.proposalSvc.AddLineItem(c.Request.Context(), id, estimateID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.commit(id, proposal)
	c.JSON(http.StatusCreated, proposal)
}

// UpdateLineItem updates one editable field on a line item addressed by
// its position within the estimate.
func (s *Server) UpdateLineItem(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req estimateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.Field = strings.TrimSpace(req.Field)
	if req.Field == "" {
		AbortWithError(c, newValidationError("field", "required", "field is required"))
		return
	}

	index, err := parseIndex(c.Param("index"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	estimateID := strings.TrimSpace(c.Param("estimateId"))
	proposal, err := s.proposalSvc.UpdateLineItem(c.Request.Context(), id, estimateID, index, req.Field, req.Value)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.commit(id, proposal)
	c.JSON(http.StatusOK, proposal)
}

// RemoveLineItem deletes a line item by position. Out-of-range positions
// are a no-op.
func (s *Server) RemoveLineItem(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	index, err := parseIndex(c.Param("index"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	estimateID := strings.TrimSpace(c.Param("estimateId"))
	proposal, err := s.proposalSvc.RemoveLineItem(c.Request.Context(), id, estimateID, index)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.commit(id, proposal)
	c.JSON(http.StatusOK, proposal)
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, newValidationError("index", "invalid_index", "index must be an integer")
	}
	return index, nil
}
