package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func Write(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func OK(c *gin.Context, data any) {
	Write(c, http.StatusOK, "", data)
}

func Created(c *gin.Context, message string, data any) {
	Write(c, http.StatusCreated, message, data)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	OK(c, ListResponse[T]{
		Items: data,
		Total: len(data),
	})
}
