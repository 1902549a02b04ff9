package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rowestoli/QuackLog/internal"
	"github.com/rowestoli/QuackLog/internal/service"
	"github.com/rowestoli/QuackLog/internal/storage"
)

// PostLogs saves one submission: a batch of bird entries for one date, with
// an optional blind label and photo URIs.
func PostLogs(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req service.SubmissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		sub, err := service.CreateSubmission(c.Request.Context(), app.SubmissionRepo(), user, &req)
		if err != nil {
			if service.IsValidationError(err) {
				HandleError(c, app.Logger(), err, 400, "Validation failed")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to save log")
			return
		}

		HandleSuccess(c, app.Logger(), sub, nil)
	}
}

// GetRecentLogs returns the recent-activity feed: one per-date rollup over
// the user's most recent submissions.
func GetRecentLogs(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		limit := app.Config().FeedLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				HandleError(c, app.Logger(), errors.New("limit must be a positive integer"), 400, "Invalid limit")
				return
			}
			if n < limit {
				limit = n
			}
		}

		subs, err := app.SubmissionRepo().ListRecentSubmissions(c.Request.Context(), user.ID, limit)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch recent logs")
			return
		}

		feed := service.SummarizeRecent(subs)
		HandleSuccess(c, app.Logger(), feed, map[string]any{"limit": limit})
	}
}

// GetAllLogs returns every submission of the user grouped by date, newest
// date first.
func GetAllLogs(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		subs, err := app.SubmissionRepo().ListSubmissions(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch logs")
			return
		}

		groups := service.GroupByDate(subs)
		HandleSuccess(c, app.Logger(), groups, map[string]any{"total_submissions": len(subs)})
	}
}

// GetLogsByDate returns the submissions already saved for one calendar
// date, newest first.
func GetLogsByDate(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		date := c.Param("date")

		subs, err := app.SubmissionRepo().ListSubmissionsByDate(c.Request.Context(), user.ID, date)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch logs for date")
			return
		}

		HandleSuccess(c, app.Logger(), subs, map[string]any{"date": date})
	}
}

// DeleteLog removes one submission owned by the user.
func DeleteLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		id := c.Param("id")

		if err := service.DeleteSubmission(c.Request.Context(), app.SubmissionRepo(), user, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Log not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to delete log")
			return
		}

		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": id})
	}
}
