package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message"`
}

// PostChatMessage records a user message and returns the assistant reply.
func (s *Server) PostChatMessage(c *gin.Context) {
	if s.chatSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	reply, err := s.chatSvc.Send(c.Request.Context(), id, req.Message)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// GetChatHistory returns the conversation for one proposal, oldest first.
func (s *Server) GetChatHistory(c *gin.Context) {
	if s.chatSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	messages, err := s.chatSvc.History(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
