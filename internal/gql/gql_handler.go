package gql

import (
	"net/http"

	"go-hrgql/internal/shared/apperror"
	"go-hrgql/internal/shared/response"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
)

type Request struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type Handler struct {
	schema *graphql.Schema
}

func NewHandler(schema *graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// Serve executes one GraphQL operation. Resolver errors are part of the
// GraphQL response body, so the status is 200 unless the body itself is
// malformed.
func (h *Handler) Serve(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Request body must be a JSON object with a query")
		return
	}

	resp := h.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)
	c.JSON(http.StatusOK, resp)
}

func RegisterRoutes(r gin.IRouter, h *Handler, middlewares ...gin.HandlerFunc) {
	handlers := append(middlewares, h.Serve)
	r.POST("/graphql", handlers...)
}
