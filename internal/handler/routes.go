package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the chat API on a router group
func RegisterRoutes(api *gin.RouterGroup, chat *ChatHandler, feedback *FeedbackHandler) {
	sessions := api.Group("/sessions")
	{
		sessions.POST("", chat.CreateSession)
		sessions.GET("/:id", chat.GetSession)
		sessions.DELETE("/:id", chat.DeleteSession)
		sessions.POST("/:id/messages", chat.SendMessage)
		sessions.POST("/:id/options", chat.SelectOption)
		sessions.POST("/:id/stream", chat.Stream)
		sessions.GET("/:id/searches", chat.Searches)
	}

	api.POST("/feedback", feedback.Submit)
}
