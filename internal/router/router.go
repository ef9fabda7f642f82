package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	CreateEvent(c *ginext.Context)
	ListEvents(c *ginext.Context)
	GetEvent(c *ginext.Context)
	EditEvent(c *ginext.Context)
	ToggleOpenState(c *ginext.Context)
	RemoveEvent(c *ginext.Context)
	AddOrderItem(c *ginext.Context)
	RemoveOrderItem(c *ginext.Context)
	TogglePaidStatus(c *ginext.Context)
	GetOrderTotal(c *ginext.Context)
	AddVotingOption(c *ginext.Context)
	ToggleVote(c *ginext.Context)
	GetTally(c *ginext.Context)
	GetWinners(c *ginext.Context)
	CreateOrderFromVote(c *ginext.Context)
	CreateUser(c *ginext.Context)
	ListUsers(c *ginext.Context)
	GetUser(c *ginext.Context)
}

func InitRouter(mode string, h Handler, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Events
		api.POST("/events", h.CreateEvent)
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", h.GetEvent)
		api.PATCH("/events/:id", h.EditEvent)
		api.POST("/events/:id/toggle", h.ToggleOpenState)
		api.DELETE("/events/:id", h.RemoveEvent)

		// Order items
		api.POST("/events/:id/orders", h.AddOrderItem)
		api.DELETE("/events/:id/orders/:itemID", h.RemoveOrderItem)
		api.POST("/events/:id/orders/:itemID/paid", h.TogglePaidStatus)
		api.GET("/events/:id/total", h.GetOrderTotal)

		// Voting
		api.POST("/events/:id/options", h.AddVotingOption)
		api.POST("/events/:id/options/:optionID/vote", h.ToggleVote)
		api.GET("/events/:id/tally", h.GetTally)
		api.GET("/events/:id/winners", h.GetWinners)
		api.POST("/events/:id/options/:optionID/order", h.CreateOrderFromVote)

		// Users
		api.POST("/users", h.CreateUser)
		api.GET("/users", h.ListUsers)
		api.GET("/users/:id", h.GetUser)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
