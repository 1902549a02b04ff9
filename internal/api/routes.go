package api

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the log endpoints to r. Auth middleware is
// expected to already be installed on r.
func RegisterRoutes(r gin.IRouter, app App) {
	r.POST("/logs", PostLogs(app))
	r.GET("/logs", GetAllLogs(app))
	r.GET("/logs/recent", GetRecentLogs(app))
	r.GET("/logs/date/:date", GetLogsByDate(app))
	r.DELETE("/logs/:id", DeleteLog(app))
}
