package api

import (
	"net/http"

	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/service"

	"github.com/gin-gonic/gin"
)

// ListRegistry returns the catalog vocabulary or registry entries of one
// kind. With ?session_id= the session's promoted entries are included.
func (h *SessionHandler) ListRegistry(c *gin.Context) {
	kind := c.Param(constants.ParamRegistryKind)
	switch kind {
	case constants.RegistryKindElem:
		c.JSON(http.StatusOK, h.catalog.Catalog.Elements())
		return
	case constants.RegistryKindBits:
		c.JSON(http.StatusOK, h.catalog.Catalog.CodeBits())
		return
	case constants.RegistryKindSpell, constants.RegistryKindRitual:
	default:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrUnknownRegistryKind})
		return
	}

	entryKind := game.EntryKindSpell
	seeds := h.catalog.Spells
	if kind == constants.RegistryKindRitual {
		entryKind = game.EntryKindRitual
		seeds = h.catalog.Rituals
	}
	sessionID := c.Query(constants.JSONKeySession)
	if sessionID == "" {
		c.JSON(http.StatusOK, seeds)
		return
	}
	var entries []game.Entry
	err := h.sessions.Do(sessionID, func(s *service.Session) error {
		entries = s.Registry(entryKind)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *SessionHandler) availableFor(c *gin.Context, list func(*service.Session, game.Character) []service.AvailableEntry) {
	level, ok := levelQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCharacterLevelInvalid})
		return
	}
	var out []service.AvailableEntry
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		out = list(s, game.Character{Level: level})
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// AvailableSpells lists spells craftable at ?level= with their mana cost
// and affordability.
func (h *SessionHandler) AvailableSpells(c *gin.Context) {
	h.availableFor(c, (*service.Session).AvailableSpells)
}

func (h *SessionHandler) AvailableRituals(c *gin.Context) {
	h.availableFor(c, (*service.Session).AvailableRituals)
}

// SpellHistory returns every spell effect the session produced.
func (h *SessionHandler) SpellHistory(c *gin.Context) {
	var out []game.SpellEffect
	err := h.sessions.Do(c.Param(constants.ParamSessionID), func(s *service.Session) error {
		out = nonNil(s.SpellHistory())
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
