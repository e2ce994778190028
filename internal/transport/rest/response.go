package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope is the body of every JSON response.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

type paginatedData struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, envelope{
		Success: true,
		Data:    data,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	successResponse(c, http.StatusCreated, data)
}

func paginatedSuccessResponse(c *gin.Context, items interface{}, total, limit, offset int) {
	successResponse(c, http.StatusOK, paginatedData{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, envelope{
		Success: false,
		Error:   message,
	})
}

// validationResponse reports field errors as a list, keeping error set for
// clients that only read the single message.
func validationResponse(c *gin.Context, messages []string) {
	body := envelope{
		Success: false,
		Error:   "Validation failed",
		Errors:  messages,
	}
	if len(messages) == 1 {
		body.Error = messages[0]
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusUnauthorized, message)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, message)
}

func internalServerErrorResponse(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "Internal server error")
}
