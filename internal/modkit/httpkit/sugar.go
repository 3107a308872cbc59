package httpkit

import "net/http"

// Get registers h under GET through Call
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post registers h under POST through Call. h reads the body itself
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}
