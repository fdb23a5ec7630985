package api

import (
	"net/http"

	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/engine"
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/service"

	"github.com/gin-gonic/gin"
)

type AttemptRequest struct {
	Elements  []string       `json:"elements"`
	CodeBits  []string       `json:"code_bits"`
	Character game.Character `json:"character"`
}

// Craft resolves a spell composition. Rejected attempts carry the status of
// their error; every other outcome, failures included, is a 200.
func (h *SessionHandler) Craft(c *gin.Context) {
	var req AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var res engine.Result[game.SpellEffect]
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		res = s.AttemptCraft(req.Elements, req.CodeBits, req.Character)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(attemptStatus(res.Err()), res)
}

// Summon resolves a ritual composition.
func (h *SessionHandler) Summon(c *gin.Context) {
	var req AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var res engine.Result[game.Ally]
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		res = s.AttemptSummon(req.Elements, req.CodeBits, req.Character)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(attemptStatus(res.Err()), res)
}
