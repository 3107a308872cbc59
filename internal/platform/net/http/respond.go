// Package http adapts chi to the platform router and writes the JSON envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "chatlens/internal/platform/net"
)

// Envelope is re-exported so handlers need only this package
type Envelope = pnet.Envelope

// JSON encodes v as the response body with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers produce. An error Body becomes an
// error envelope and its code decides the status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle turns a return-style handler into an http.HandlerFunc
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())

	var (
		status int
		env    Envelope
	)
	if err, ok := resp.Body.(error); ok && err != nil {
		status, env = pnet.Error(err, reqID)
	} else {
		status = resp.Status
		if status == 0 {
			status = stdhttp.StatusOK
		}
		status, env = pnet.Reply(status, resp.Body, reqID)
	}
	JSON(w, status, env)
}

// OK wraps data in a 200
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created wraps data in a 201
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// Error lets the code of err pick the status
func Error(err error) Response { return Response{Body: err} }
