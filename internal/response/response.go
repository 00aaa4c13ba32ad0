package response

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Data       interface{} `json:"data"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Metadata   Metadata    `json:"metadata"`
}

// ErrorBody is the error part of the envelope. Fields holds per-field
// validation messages keyed by JSON name.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPagination builds the pagination block for a page of a listing with
// total matching items.
func NewPagination(page, perPage, total int) *Pagination {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: pages,
	}
}

// Metadata ties a response to its request log line.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// Success sends data in the envelope. A nil slice is sent as [] so empty
// listings never reach clients as null.
func Success(c *gin.Context, statusCode int, data interface{}) {
	write(c, statusCode, Response{Data: emptyIfNil(data)})
}

// SuccessWithPagination sends one page of a listing.
func SuccessWithPagination(c *gin.Context, statusCode int, data interface{}, pagination *Pagination) {
	write(c, statusCode, Response{Data: emptyIfNil(data), Pagination: pagination})
}

// Fail sends an error envelope carrying code and its default message.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	FailWithFields(c, statusCode, code, nil)
}

// FailWithFields is Fail with per-field validation messages.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	write(c, statusCode, errorResponse(c, statusCode, code, fields))
}

// AbortFail is Fail for middleware: later handlers do not run.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	r := errorResponse(c, statusCode, code, nil)
	r.Metadata = buildMetadata(c)
	c.AbortWithStatusJSON(statusCode, r)
}

// Attachment sends a generated file outside the JSON envelope. inline lets
// browsers and calendar clients open it directly instead of saving it.
func Attachment(c *gin.Context, contentType, filename string, data []byte, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, filename))
	c.Data(http.StatusOK, contentType, data)
}

func write(c *gin.Context, statusCode int, r Response) {
	r.Metadata = buildMetadata(c)
	c.JSON(statusCode, r)
}

// errorResponse builds the error envelope. 5xx codes are also recorded on
// the context so the access log shows them.
func errorResponse(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) Response {
	if statusCode >= http.StatusInternalServerError {
		_ = c.Error(fmt.Errorf("%s", code))
	}
	return Response{Error: &ErrorBody{Code: code, Message: GetMessage(code), Fields: fields}}
}

func emptyIfNil(data interface{}) interface{} {
	if data == nil {
		return nil
	}
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return data
}

func buildMetadata(c *gin.Context) Metadata {
	id := c.GetString(ContextKeyRequestID)
	if id == "" {
		id = uuid.New().String()
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
