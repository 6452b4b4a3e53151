package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint serves:
// {code, data?, message, success}.
type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &Response{
		Code:    http.StatusOK,
		Data:    data,
		Message: "success",
		Success: true,
	})
}

// Created responds with HTTP 201. The body keeps code 200; the original
// clients key off that value, not the transport status.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, &Response{
		Code:    http.StatusOK,
		Data:    data,
		Message: "created",
		Success: true,
	})
}

func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	fail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	fail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	fail(c, http.StatusNotFound, message)
}

func MethodNotAllowed(c *gin.Context, message string) {
	fail(c, http.StatusMethodNotAllowed, message)
}

func Conflict(c *gin.Context, message string) {
	fail(c, http.StatusConflict, message)
}

func InternalError(c *gin.Context, message string) {
	fail(c, http.StatusInternalServerError, message)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, &Response{
		Code:    status,
		Message: message,
		Success: false,
	})
}
