package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	proposaldomain "github.com/robmoran/proposalkit/internal/proposal/domain"
)

// ListProposals returns every proposal in the session store.
func (s *Server) ListProposals(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	proposals, err := s.proposalSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposals": proposals})
}

// GetProposal returns one proposal document with its derived totals.
func (s *Server) GetProposal(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if cached, ok := s.docCache.Get(id); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	proposal, err := s.proposalSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.docCache.Set(id, proposal, s.cacheTTL)
	c.JSON(http.StatusOK, proposal)
}

type replaceFieldRequest struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// ReplaceProposalField replaces one leaf value addressed by a dotted path.
func (s *Server) ReplaceProposalField(c *gin.Context) {
	if s.proposalSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req replaceFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.Path = strings.TrimSpace(req.Path)
	if req.Path == "" {
		AbortWithError(c, newValidationError("path", "required", "path is required"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	proposal, err := s.proposalSvc.ReplaceField(c.Request.Context(), id, req.Path, req.Value)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.commit(id, proposal)
	c.JSON(http.StatusOK, proposal)
}

// commit refreshes the read cache after a successful mutation so the next
// read observes the committed document.
func (s *Server) commit(id string, proposal proposaldomain.Proposal) {
	s.docCache.Delete(id)
	s.docCache.Set(id, proposal, s.cacheTTL)
}
