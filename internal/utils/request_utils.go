package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/cwngan/cu2m-backend/internal/schemas"
)

// WriteAndLogResponse encodes the response object to JSON and writes it to
// the HTTP response with the given status code.
func WriteAndLogResponse(c *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(c, "debug", "Returning response")
	c.JSON(statusCode, response)
}

// WriteAndLogError logs the underlying error and sends the catalog error
// with the given status code. Internal details never reach the client.
func WriteAndLogError(c *gin.Context, customErr *schemas.CustomError, statusCode int, err error) {
	LogMessageWithFieldsAndError(c, "error", "Returning "+customErr.Code+" / "+customErr.Message, err)
	c.AbortWithStatusJSON(statusCode, &schemas.ErrorDTO{Error: *customErr})
}
