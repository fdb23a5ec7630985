package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/service"

	"github.com/gin-gonic/gin"
)

const maxSessionNameLength = 64

type CreateSessionPayload struct {
	Name string `json:"name"`
}

// CreateSession starts a new crafting session.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionPayload
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
	}
	if utf8.RuneCountInString(req.Name) > maxSessionNameLength {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	id, err := h.sessions.Create(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	c.JSON(http.StatusCreated, gin.H{constants.JSONKeySession: id})
}

// ListSessions lists live and saved sessions.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	list, err := h.sessions.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetSession returns the session summary.
func (h *SessionHandler) GetSession(c *gin.Context) {
	var st service.Status
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		st = s.Status()
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param(constants.ParamSessionID)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportSession returns the portable session state.
func (h *SessionHandler) ExportSession(c *gin.Context) {
	var st service.State
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		st = s.Export()
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// ImportSession replaces the session's state with the posted export.
func (h *SessionHandler) ImportSession(c *gin.Context) {
	var req service.State
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var st service.Status
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		if err := s.Import(req); err != nil {
			return err
		}
		st = s.Status()
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// SaveSession persists the session snapshot.
func (h *SessionHandler) SaveSession(c *gin.Context) {
	id := c.Param(constants.ParamSessionID)
	if err := h.sessions.Save(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeySession: id})
}
