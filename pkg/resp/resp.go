package resp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/i18n"
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Error: msg, Kind: string(apperror.KindValidation)})
}

// Error writes err as JSON. Classified errors keep their status and get a
// localized message; anything else is a 500.
func Error(c *gin.Context, err error) {
	lang := c.GetHeader("Accept-Language")

	appErr, ok := apperror.As(err)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
			Error: i18n.Localize(lang, "error.internal", nil, "Internal server error"),
		})
		return
	}

	c.AbortWithStatusJSON(StatusOf(appErr.Kind), ErrorBody{
		Error: i18n.Localize(lang, appErr.MessageID, appErr.Data, appErr.Message),
		Kind:  string(appErr.Kind),
	})
}

// IsServerError reports whether Error would answer err with a 5xx.
func IsServerError(err error) bool {
	appErr, ok := apperror.As(err)
	return !ok || StatusOf(appErr.Kind) >= http.StatusInternalServerError
}

func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindInvalidState, apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ParamID reads a positive integer path parameter. On failure it writes a
// 400 and returns false.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(c, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

// BindJSON decodes the request body into dst. On failure it writes a 400 and
// returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		BadRequest(c, err.Error())
		return false
	}
	return true
}

// Pagination reads page (default 1) and pageSize (default 0, meaning no limit)
// from the query string.
func Pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.Query("pageSize"))
	if pageSize < 0 {
		pageSize = 0
	}
	return page, pageSize
}
