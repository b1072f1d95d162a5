package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/malonaz/badges/go/badges"
	"github.com/malonaz/badges/go/badges/datauri"
)

const contentTypeSVG = "image/svg+xml"

// maxTrendSamples bounds the trend query parameter.
const maxTrendSamples = 1000

var errBadRequest = errors.New("bad request")

type composer interface {
	Compose(ctx context.Context, spec *badges.Spec) ([]byte, error)
}

type handler struct {
	log      *slog.Logger
	composer composer
}

func newHandler(composer composer) *handler {
	return &handler{log: slog.Default(), composer: composer}
}

// badge serves the badge described by the query parameters.
func (h *handler) badge(w http.ResponseWriter, r *http.Request) {
	spec, err := specFromQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	document, err := h.composer.Compose(r.Context(), spec)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.write(w, r, document)
}

// examples serves two example badges.
func (h *handler) examples(w http.ResponseWriter, r *http.Request) {
	buffer := &bytes.Buffer{}
	for i, spec := range []*badges.Spec{
		{LeftText: "build", RightText: "passing", RightColor: "#008000"},
		{LeftText: "chat", RightText: "online"},
	} {
		document, err := h.composer.Compose(r.Context(), spec)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if i > 0 {
			buffer.WriteString("\n")
		}
		buffer.Write(document)
	}
	h.write(w, r, buffer.Bytes())
}

func (h *handler) write(w http.ResponseWriter, r *http.Request, document []byte) {
	w.Header().Set("Content-Type", contentTypeSVG)
	if _, err := w.Write(document); err != nil {
		h.log.WarnContext(r.Context(), "writing badge", "error", err)
	}
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusCode(err)
	if status == http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "composing badge", "error", err)
	} else {
		h.log.InfoContext(r.Context(), "rejected badge", "status", status, "error", err)
	}
	http.Error(w, err.Error(), status)
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, badges.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, datauri.ErrResolve):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// specFromQuery maps query parameters onto Spec fields.
func specFromQuery(query url.Values) (*badges.Spec, error) {
	spec := &badges.Spec{
		LeftText:    query.Get("left_text"),
		CenterText:  query.Get("center_text"),
		RightText:   query.Get("right_text"),
		LeftColor:   query.Get("left_color"),
		CenterColor: query.Get("center_color"),
		RightColor:  query.Get("right_color"),
		WholeLink:   query.Get("whole_link"),
		LeftLink:    query.Get("left_link"),
		CenterLink:  query.Get("center_link"),
		RightLink:   query.Get("right_link"),
		WholeTitle:  query.Get("whole_title"),
		LeftTitle:   query.Get("left_title"),
		CenterTitle: query.Get("center_title"),
		RightTitle:  query.Get("right_title"),
		Logo:        query.Get("logo"),
		CenterImage: query.Get("center_image"),
		RightImage:  query.Get("right_image"),
		TrendColor:  query.Get("trend_color"),
		Style:       badges.Style(query.Get("style")),
	}

	var err error
	for name, target := range map[string]*bool{
		"embed_logo":         &spec.EmbedLogo,
		"embed_center_image": &spec.EmbedCenterImage,
		"embed_right_image":  &spec.EmbedRightImage,
	} {
		if *target, err = boolParameter(query, name); err != nil {
			return nil, err
		}
	}
	if value := query.Get("trend_width"); value != "" {
		if spec.TrendWidth, err = strconv.Atoi(value); err != nil {
			return nil, fmt.Errorf("%w: trend_width %q", errBadRequest, value)
		}
	}
	if value := query.Get("trend"); value != "" {
		fields := strings.Split(value, ",")
		if len(fields) > maxTrendSamples {
			return nil, fmt.Errorf("%w: at most %d trend samples", errBadRequest, maxTrendSamples)
		}
		for _, field := range fields {
			sample, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("%w: trend sample %q", errBadRequest, field)
			}
			spec.Trend = append(spec.Trend, sample)
		}
	}
	return spec, nil
}

func boolParameter(query url.Values, name string) (bool, error) {
	value := query.Get(name)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s %q", errBadRequest, name, value)
	}
	return parsed, nil
}
