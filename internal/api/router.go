package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Rukaro/HeartBreaker/internal/constants"
)

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(h *GameHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	router.GET(constants.RouteHealth, Health)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.POST(constants.RouteGameNew, h.NewGame)
		apiRoutes.GET(constants.RouteGameState, h.GetState)
		apiRoutes.POST(constants.RouteCheckEnemy, h.CheckEnemy)
		apiRoutes.POST(constants.RouteValidateExpression, h.ValidateExpression)
		apiRoutes.POST(constants.RouteDefeatEnemy, h.DefeatEnemy)
		apiRoutes.POST(constants.RouteDiscard, h.Discard)
		apiRoutes.GET(constants.RouteHandValues, h.HandValues)
	}
	return router
}
