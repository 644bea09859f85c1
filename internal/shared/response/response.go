package response

import (
	"github.com/gin-gonic/gin"
)

// PageInfo is the pagination block returned with every paged list.
type PageInfo struct {
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

func NewPageInfo(total int64, page, limit int) PageInfo {
	totalPages := 0
	if limit > 0 {
		// pembulatan ke atas: (total + limit - 1) / limit
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PageInfo{
		TotalItems:      total,
		TotalPages:      totalPages,
		CurrentPage:     page,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

type ApiEnvelope struct {
	Ok    bool `json:"ok"`
	Data  any  `json:"data,omitempty"`
	Error any  `json:"error,omitempty"`
}

func Error(c *gin.Context, status int, errorCode string, message string) {
	c.AbortWithStatusJSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
		},
	})
}
