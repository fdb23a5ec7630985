package api

import (
	"net/http"

	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/service"

	"github.com/gin-gonic/gin"
)

type rosterResponse struct {
	Active        []game.Ally `json:"active"`
	History       []game.Ally `json:"history"`
	FailedRituals []game.Ally `json:"failed_rituals"`
	SummonCount   int         `json:"summon_count"`
}

// ListAllies returns the active allies, the summon history and the
// aberrations of failed rituals.
func (h *SessionHandler) ListAllies(c *gin.Context) {
	var out rosterResponse
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		r := s.Roster()
		out = rosterResponse{
			Active:        r.Active(),
			History:       nonNil(r.History()),
			FailedRituals: nonNil(r.FailedRituals()),
			SummonCount:   r.SummonCount(),
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *SessionHandler) AllyStats(c *gin.Context) {
	var st service.AllyStats
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		var err error
		st, err = s.Roster().Stats(c.Param(constants.ParamAllyID))
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *SessionHandler) DismissAlly(c *gin.Context) {
	var ally game.Ally
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		var err error
		ally, err = s.Roster().Dismiss(c.Param(constants.ParamAllyID))
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ally)
}

type BattleRequest struct {
	DamageDealt    int  `json:"damage_dealt"`
	DamageReceived int  `json:"damage_received"`
	Victory        bool `json:"victory"`
}

// RecordBattle applies the outcome of an encounter fought by the host.
func (h *SessionHandler) RecordBattle(c *gin.Context) {
	var req BattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var ally game.Ally
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		var err error
		ally, err = s.Roster().RecordBattle(c.Param(constants.ParamAllyID), req.DamageDealt, req.DamageReceived, req.Victory)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ally)
}

// ClaimWardenReward grants the bonus spell after the host reports the
// Technonomicon Warden defeated.
func (h *SessionHandler) ClaimWardenReward(c *gin.Context) {
	var entry game.Entry
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		var err error
		entry, err = s.ClaimWardenReward()
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
