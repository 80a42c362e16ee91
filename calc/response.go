package calc

import (
	"github.com/MouseCreator/Long-arithmetic-system/errs"
)

// Response is the uniform envelope of a call result.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// NewResponse wraps the outcome of a call.
func NewResponse(data any, err error) Response {
	if err != nil {
		return Response{Success: false, Error: err.Error(), Kind: string(errs.KindOf(err))}
	}
	return Response{Success: true, Data: data}
}
