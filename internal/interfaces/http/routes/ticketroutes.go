package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "opendesk/internal/interfaces/http/handlers/ticket"
	"opendesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(middleware.ActorIdentity())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		tickets.POST("",
			config.TicketHandler.AddTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)
		tickets.GET("/search",
			config.TicketHandler.SearchTickets)
		tickets.GET("/code/:code",
			config.TicketHandler.GetTicketByCode)
		tickets.POST("/bulk",
			config.TicketHandler.BulkEdit)
		tickets.POST("/merge",
			config.TicketHandler.MergeTickets)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		tickets.POST("/:id/replies",
			config.TicketHandler.AddReply)
		tickets.POST("/:id/close",
			config.TicketHandler.CloseTicket)
		tickets.POST("/:id/split",
			config.TicketHandler.SplitTicket)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
		tickets.PATCH("/:id",
			config.TicketHandler.EditTicket)
	}
}
