package axon

type Response struct {
	StatusCode int
	Body       interface{}
}

func NewResponse(statusCode int, body interface{}) *Response {
	return &Response{StatusCode: statusCode, Body: body}
}

func OK(body interface{}) *Response      { return NewResponse(200, body) }
func Created(body interface{}) *Response { return NewResponse(201, body) }
func NoContent() *Response               { return NewResponse(204, nil) }

type HttpError struct {
	StatusCode int
	Message    string
}

func (e *HttpError) Error() string { return e.Message }

func NewHttpError(statusCode int, message string) *HttpError {
	return &HttpError{StatusCode: statusCode, Message: message}
}

func ErrBadRequest(message string) *HttpError { return NewHttpError(400, message) }
func ErrNotFound(message string) *HttpError   { return NewHttpError(404, message) }
func ErrConflict(message string) *HttpError   { return NewHttpError(409, message) }
