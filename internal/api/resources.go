package api

import (
	"net/http"

	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/ledger"
	"github.com/ericogr/technonomicon/internal/service"

	"github.com/gin-gonic/gin"
)

// HarvestRequest credits data. Enemy surveillance uses EnemyLevel and
// Efficiency; every other source uses Amount scaled by the character's
// multiplier.
type HarvestRequest struct {
	Source     string         `json:"source"`
	Amount     int            `json:"amount"`
	EnemyLevel int            `json:"enemy_level"`
	Efficiency float64        `json:"efficiency"`
	Character  game.Character `json:"character"`
}

func (h *SessionHandler) Harvest(c *gin.Context) {
	var req HarvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	source, err := ledger.ParseSource(req.Source)
	if err != nil {
		respondError(c, err)
		return
	}
	var credited, balance int
	err = h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		var err error
		if source == ledger.SourceEnemySurveillance {
			credited, err = s.HarvestEnemy(req.EnemyLevel, req.Efficiency)
		} else {
			credited, err = s.Harvest(source, req.Amount, req.Character)
		}
		balance = s.Balance()
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.LogFieldSource:  string(source),
		constants.LogFieldAmount:  credited,
		constants.LogFieldBalance: balance,
	})
}

type CollectItemRequest struct {
	Item string `json:"item"`
}

func (h *SessionHandler) CollectItem(c *gin.Context) {
	var req CollectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var count int
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		var err error
		count, err = s.CollectItem(req.Item)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": req.Item, "count": count})
}

func (h *SessionHandler) ActivateSurveillance(c *gin.Context) {
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		s.ActivateSurveillance()
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"surveillance_active": true})
}
