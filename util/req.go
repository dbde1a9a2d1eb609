package util

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/heddit-be/app"
)

type HTTPError struct {
	Status  int
	Message string
	Code    string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

var (
	MalformedIdHTTPErr = HTTPError{
		Message: "id malformed",
		Status:  http.StatusBadRequest,
		Code:    string(app.CodeValidation),
	}
)

var kindStatuses = map[app.ErrorKind]int{
	app.KindValidation:    http.StatusBadRequest,
	app.KindNotFound:      http.StatusNotFound,
	app.KindAuthorization: http.StatusForbidden,
	app.KindConflict:      http.StatusBadRequest,
}

// BuildHTTPErr maps domain errors to their status. Anything else is a 500
// carrying the error's message.
func BuildHTTPErr(err error) *HTTPError {
	if err == nil {
		return nil
	}
	if appErr, ok := app.AsError(err); ok {
		status, known := kindStatuses[appErr.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		return &HTTPError{
			Status:  status,
			Message: appErr.Message,
			Code:    string(appErr.Code),
		}
	}
	return BuildDbHTTPErr(err)
}

func BuildDbHTTPErr(err error) *HTTPError {
	log.Println("an unexpected error occurred", err)
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: err.Error(),
	}
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("malformed request body: %v", err),
		Code:    string(app.CodeValidation),
	}
}

func ParseId(raw string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		malformed := MalformedIdHTTPErr
		return 0, &malformed
	}
	return id, nil
}

/*
	HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	body := gin.H{
		"success": false,
		"message": err.Message,
	}
	if err.Code != "" {
		body["code"] = err.Code
	}
	c.AbortWithStatusJSON(err.Status, body)
}

type HandlerOpts struct {
	// SuccessStatus defaults to 200
	SuccessStatus int
}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

// HandlerWrapper writes the standard response envelope around handler's result
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	successStatus := http.StatusOK
	if opts != nil && opts.SuccessStatus != 0 {
		successStatus = opts.SuccessStatus
	}
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		c.JSON(successStatus, gin.H{
			"success": true,
			"data":    data,
		})
	}
}
