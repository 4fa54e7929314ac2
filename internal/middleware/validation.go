package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"github.com/cwngan/cu2m-backend/internal/schemas"
	"github.com/cwngan/cu2m-backend/internal/utils"
)

// ValidateAndSanitizeStruct binds the request body into a fresh copy of the
// given prototype, sanitizes and validates it, and makes it available under
// SanitizedPayloadKey.
func ValidateAndSanitizeStruct(prototype interface{}) gin.HandlerFunc {
	protoType := reflect.TypeOf(prototype)
	if protoType.Kind() == reflect.Ptr {
		protoType = protoType.Elem()
	}

	return func(c *gin.Context) {
		obj := reflect.New(protoType).Interface()

		if err := c.ShouldBindJSON(obj); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &schemas.ErrorDTO{Error: *schemas.BadRequest})
			return
		}

		validator := utils.GetValidator()
		if err := validator.SanitizeData(obj); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &schemas.ErrorDTO{Error: *schemas.BadRequest})
			return
		}

		if err := validator.Validate.Struct(obj); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &schemas.ErrorDTO{Error: *schemas.BadRequest})
			return
		}

		c.Set(utils.SanitizedPayloadKey.String(), obj)
		c.Next()
	}
}
