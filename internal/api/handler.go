package api

import (
	"github.com/ericogr/technonomicon/internal/config"
	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler groups the HTTP handlers the host game loop calls.
type SessionHandler struct {
	sessions *service.Manager
	catalog  *config.LoadedCatalog
}

// NewSessionHandler creates a handler over the session manager and the
// catalog the sessions were built from.
func NewSessionHandler(sessions *service.Manager, catalog *config.LoadedCatalog) *SessionHandler {
	return &SessionHandler{sessions: sessions, catalog: catalog}
}

// RegisterRoutes mounts every endpoint under the API prefix.
func RegisterRoutes(router gin.IRouter, h *SessionHandler) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteRegistry, h.ListRegistry)

		apiRoutes.POST(constants.RouteSessions, h.CreateSession)
		apiRoutes.GET(constants.RouteSessions, h.ListSessions)
		apiRoutes.GET(constants.RouteSession, h.GetSession)
		apiRoutes.DELETE(constants.RouteSession, h.DeleteSession)

		apiRoutes.POST(constants.RouteCraft, h.Craft)
		apiRoutes.POST(constants.RouteSummon, h.Summon)

		apiRoutes.POST(constants.RouteHarvest, h.Harvest)
		apiRoutes.POST(constants.RouteItems, h.CollectItem)
		apiRoutes.POST(constants.RouteSurveillance, h.ActivateSurveillance)

		apiRoutes.GET(constants.RouteSpells, h.AvailableSpells)
		apiRoutes.GET(constants.RouteRituals, h.AvailableRituals)
		apiRoutes.GET(constants.RouteHistory, h.SpellHistory)

		apiRoutes.GET(constants.RouteAllies, h.ListAllies)
		apiRoutes.GET(constants.RouteAlly, h.AllyStats)
		apiRoutes.DELETE(constants.RouteAlly, h.DismissAlly)
		apiRoutes.POST(constants.RouteAllyBattle, h.RecordBattle)

		apiRoutes.POST(constants.RouteWarden, h.ClaimWardenReward)

		apiRoutes.GET(constants.RouteExport, h.ExportSession)
		apiRoutes.POST(constants.RouteImport, h.ImportSession)
		apiRoutes.POST(constants.RouteSave, h.SaveSession)
	}
}

// NewRouter returns a gin engine with recovery, request logging and every
// route registered.
func NewRouter(h *SessionHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())
	RegisterRoutes(router, h)
	return router
}
