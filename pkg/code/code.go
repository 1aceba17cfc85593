package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// business code
	code int
	// success flag
	status bool
	// localized message
	Lang lang
	// raw message format
	msg string
	// attached payload
	data     interface{}
	haveData bool
	// error detail strings
	details     []string
	haveDetails bool
	// HTTP status the code is served with, defaults to 200
	statusCode int
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

// NewError registers an error code. Duplicate registration is a programming
// error and panics at init time.
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("error code %d already exists, pick another one", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

// NewSuss registers a success code.
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("success code %d already exists, pick another one", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

// Clone returns a copy with no payload or details, so the shared
// registered instance is never mutated by a request.
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		status:     e.status,
		Lang:       e.Lang,
		msg:        e.msg,
		statusCode: e.statusCode,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	// carry over payload when chained after WithData
	c.data = e.data
	c.haveData = e.haveData
	return c
}

// WithStatusCode binds an HTTP status to the code at registration time.
func (e *Code) WithStatusCode(status int) *Code {
	e.statusCode = status
	return e
}

func (e *Code) StatusCode() int {
	if e.statusCode != 0 {
		return e.statusCode
	}
	return http.StatusOK
}
