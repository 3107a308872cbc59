// Package http provides http transport for analyses
package http

import (
	"errors"
	"io"
	"mime"
	stdhttp "net/http"
	"path"
	"strings"

	"chatlens/internal/modkit/httpkit"
	perr "chatlens/internal/platform/errors"
	"chatlens/internal/platform/net/http/bind"
	"chatlens/internal/services/analysis/domain"
)

// DefaultMaxUploadBytes bounds a transcript upload when Config leaves it unset
const DefaultMaxUploadBytes int64 = 32 << 20

// Config tunes the transport
type Config struct {
	MaxUploadBytes int64
}

// Register mounts analysis endpoints on the given router
func Register(r httpkit.Router, runner domain.RunnerPort, cfg Config) {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	h := &handlers{runner: runner, cfg: cfg}
	httpkit.Post(r, "/", h.create)
}

type handlers struct {
	runner domain.RunnerPort
	cfg    Config
}

// swagger:route POST /analyses Analyses analysesCreate
// @Summary Analyze an exported chat transcript
// @Tags Analyses
// @Accept plain,multipart/form-data
// @Produce json
// @Param include_records query bool false "Return the enriched record table"
// @Param segment_limit query int false "Maximum conversation segments (1..500)"
// @Param summaries query bool false "Fill segment text summaries"
// @Param file formData file false "Transcript when sent as multipart"
// @Success 201 type domain.Report "created"
// @Router /analyses [post]
func (h *handlers) create(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseQuery[domain.Input](r)
	if err != nil {
		return nil, err
	}

	body, size, name, err := h.upload(r)
	if err != nil {
		return nil, err
	}
	if in.Source == "" {
		in.Source = name
	}

	rep, err := h.runner.AnalyzeReader(r.Context(), body, size, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(rep), nil
}

// upload returns the transcript stream of a raw or multipart request
func (h *handlers) upload(r *stdhttp.Request) (io.Reader, int64, string, error) {
	limit := h.cfg.MaxUploadBytes
	ct, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if !strings.HasPrefix(ct, "multipart/") {
		if r.ContentLength > limit {
			return nil, 0, "", tooLarge(limit)
		}
		return newCapped(r.Body, limit), r.ContentLength, "upload", nil
	}

	if params["boundary"] == "" {
		return nil, 0, "", perr.InvalidArgf("multipart upload without boundary")
	}
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, 0, "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad multipart upload")
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, 0, "", perr.WithField(perr.Newf(perr.ErrorCodeValidation, "file is required"), "file")
		}
		if err != nil {
			return nil, 0, "", perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad multipart upload")
		}
		if part.FormName() != "file" {
			continue
		}
		// clients may send a full path; keep the last element only
		name := path.Base(strings.ReplaceAll(part.FileName(), `\`, "/"))
		if name == "." || name == "/" {
			name = "upload"
		}
		return newCapped(part, limit), -1, name, nil
	}
}

// capped fails with a coded error once more than left bytes were read
type capped struct {
	r     io.Reader
	left  int64
	limit int64
}

func newCapped(r io.Reader, limit int64) *capped { return &capped{r: r, left: limit, limit: limit} }

func (c *capped) Read(p []byte) (int, error) {
	if c.left <= 0 {
		// probe one byte so an input of exactly limit bytes still succeeds
		var one [1]byte
		n, err := c.r.Read(one[:])
		if n > 0 {
			return 0, tooLarge(c.limit)
		}
		return 0, err
	}
	if int64(len(p)) > c.left {
		p = p[:c.left]
	}
	n, err := c.r.Read(p)
	c.left -= int64(n)
	return n, err
}

func tooLarge(limit int64) error {
	return perr.InvalidArgf("upload exceeds %d bytes", limit)
}
