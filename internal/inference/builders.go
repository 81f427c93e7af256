package inference

import "net/http"

// FrameworkPackage is the name of the package whose response and error
// builders are recognized
const FrameworkPackage = "axon"

// Builder describes a recognized constructor. StatusArg is the index of the
// status code argument, or -1 when the code is fixed.
type Builder struct {
	StatusCode int
	StatusArg  int
}

var builders = map[string]Builder{
	// *axon.Response
	"NewResponse":         {StatusArg: 0},
	"OK":                  {StatusCode: http.StatusOK, StatusArg: -1},
	"Created":             {StatusCode: http.StatusCreated, StatusArg: -1},
	"NoContent":           {StatusCode: http.StatusNoContent, StatusArg: -1},
	"BadRequest":          {StatusCode: http.StatusBadRequest, StatusArg: -1},
	"NotFound":            {StatusCode: http.StatusNotFound, StatusArg: -1},
	"InternalServerError": {StatusCode: http.StatusInternalServerError, StatusArg: -1},

	// *axon.HttpError
	"NewHttpError":                      {StatusArg: 0},
	"NewHttpErrorWithDetails":           {StatusArg: 0},
	"ErrBadRequest":                     {StatusCode: http.StatusBadRequest, StatusArg: -1},
	"ErrBadRequestWithDetails":          {StatusCode: http.StatusBadRequest, StatusArg: -1},
	"ErrUnauthorized":                   {StatusCode: http.StatusUnauthorized, StatusArg: -1},
	"ErrForbidden":                      {StatusCode: http.StatusForbidden, StatusArg: -1},
	"ErrNotFound":                       {StatusCode: http.StatusNotFound, StatusArg: -1},
	"ErrConflict":                       {StatusCode: http.StatusConflict, StatusArg: -1},
	"ErrUnprocessableEntity":            {StatusCode: http.StatusUnprocessableEntity, StatusArg: -1},
	"ErrUnprocessableEntityWithDetails": {StatusCode: http.StatusUnprocessableEntity, StatusArg: -1},
	"ErrInternalServerError":            {StatusCode: http.StatusInternalServerError, StatusArg: -1},
}

// statusTypes are the framework types carrying a StatusCode field
var statusTypes = map[string]bool{
	"Response":  true,
	"HttpError": true,
}

// LookupBuilder returns the builder registered under a function name
func LookupBuilder(name string) (Builder, bool) {
	builder, ok := builders[name]
	return builder, ok
}
