// Package datauri turns image references into data URIs that can be embedded in a badge.
package datauri

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// source is the closed set of reference kinds a Resolver understands.
type source int

const (
	sourcePath source = iota
	sourceData
	sourceHTTP
	sourceUnsupported
)

func (s source) String() string {
	switch s {
	case sourcePath:
		return "path"
	case sourceData:
		return "data"
	case sourceHTTP:
		return "http"
	default:
		return "unsupported"
	}
}

// classify returns the source kind of reference along with its scheme.
// Only the scheme is split off, so bare paths are never URL-decoded.
func classify(reference string) (source, string) {
	switch scheme := strings.ToLower(uriScheme(reference)); scheme {
	case "":
		return sourcePath, scheme
	case "data":
		return sourceData, scheme
	case "http", "https":
		return sourceHTTP, scheme
	default:
		return sourceUnsupported, scheme
	}
}

// uriScheme returns the URI scheme of reference: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
// followed by ":" before any "/", "?" or "#". It returns "" when there is none.
func uriScheme(reference string) string {
	for i, c := range reference {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9', c == '+', c == '-', c == '.':
			if i == 0 {
				return ""
			}
		case c == ':':
			return reference[:i]
		default:
			return ""
		}
	}
	return ""
}

// Resolver resolves logo and side image references.
// It keeps no state between calls, so remote content is fetched every time.
type Resolver struct {
	log        *slog.Logger
	client     *http.Client
	localFiles bool
	maxBytes   int64
}

// DefaultMaxBytes is the default cap on a fetched image body.
const DefaultMaxBytes = 1 << 20

// NewResolver returns a resolver using http.DefaultClient that may read local files.
func NewResolver() *Resolver {
	return &Resolver{
		log:        slog.Default(),
		client:     http.DefaultClient,
		localFiles: true,
		maxBytes:   DefaultMaxBytes,
	}
}

// WithLogger sets this resolver's logger.
func (r *Resolver) WithLogger(logger *slog.Logger) *Resolver {
	r.log = logger
	return r
}

// WithHTTPClient sets the client used to fetch remote images. Timeouts are the client's.
func (r *Resolver) WithHTTPClient(client *http.Client) *Resolver {
	r.client = client
	return r
}

// WithMaxBytes caps the body size of fetched images. Larger bodies fail with ErrFetch.
func (r *Resolver) WithMaxBytes(maxBytes int64) *Resolver {
	r.maxBytes = maxBytes
	return r
}

// WithLocalFiles allows or forbids reading bare filesystem paths.
func (r *Resolver) WithLocalFiles(allow bool) *Resolver {
	r.localFiles = allow
	return r
}

// Resolve returns reference unchanged when embed is false. Otherwise it returns a
// data URI holding the referenced image.
func (r *Resolver) Resolve(ctx context.Context, reference string, embed bool) (string, error) {
	if !embed {
		return reference, nil
	}
	kind, scheme := classify(reference)

	var subtype string
	var payload []byte
	var err error
	switch kind {
	case sourceData:
		getMetrics().resolutionsTotal.WithLabelValues(kind.String(), "ok").Inc()
		return reference, nil
	case sourceHTTP:
		subtype, payload, err = r.fetch(ctx, reference)
	case sourcePath:
		subtype, payload, err = r.readFile(reference)
	case sourceUnsupported:
		err = fmt.Errorf("%w %q", ErrUnsupportedScheme, scheme)
	}
	if err != nil {
		getMetrics().resolutionsTotal.WithLabelValues(kind.String(), "error").Inc()
		return "", err
	}
	getMetrics().resolutionsTotal.WithLabelValues(kind.String(), "ok").Inc()
	getMetrics().fetchedBytes.Observe(float64(len(payload)))
	r.log.DebugContext(ctx, "embedded image", "source", kind.String(), "subtype", subtype, "bytes", len(payload))
	return Encode(subtype, payload), nil
}

// Encode returns a base64 data URI for an image payload of the given subtype, e.g. "png".
func Encode(subtype string, payload []byte) string {
	return "data:image/" + subtype + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

func (r *Resolver) fetch(ctx context.Context, reference string) (string, []byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reference, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: creating request: %v", ErrFetch, err)
	}
	r.log.DebugContext(ctx, "fetching image", "url", reference)
	response, err := r.client.Do(request)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", nil, fmt.Errorf("%w: unexpected HTTP status %d for %s", ErrFetch, response.StatusCode, reference)
	}

	contentType := response.Header.Get("Content-Type")
	if contentType == "" {
		return "", nil, ErrMissingContentType
	}
	subtype, err := imageSubtype(contentType)
	if err != nil {
		return "", nil, err
	}
	payload, err := io.ReadAll(io.LimitReader(response.Body, r.maxBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("%w: reading body: %v", ErrFetch, err)
	}
	if int64(len(payload)) > r.maxBytes {
		return "", nil, fmt.Errorf("%w: body of %s exceeds %d bytes", ErrFetch, reference, r.maxBytes)
	}
	return subtype, payload, nil
}

func (r *Resolver) readFile(path string) (string, []byte, error) {
	if !r.localFiles {
		return "", nil, ErrLocalFilesDisabled
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: reading %s: %v", ErrResolve, path, err)
	}
	if subtype, ok := sniff(payload); ok {
		return subtype, payload, nil
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		return "", nil, ErrTypeDetermination
	}
	subtype, err := imageSubtype(mimeType)
	if err != nil {
		return "", nil, err
	}
	return subtype, payload, nil
}

// sniff identifies an image from its signature using the registered image decoders.
func sniff(payload []byte) (string, bool) {
	_, format, err := image.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		return "", false
	}
	return format, true
}

// imageSubtype splits a "type/subtype" media type and requires type to be "image".
// Parameters such as charset are dropped.
func imageSubtype(mediaType string) (string, error) {
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = parsed
	}
	mainType, subtype, ok := strings.Cut(mediaType, "/")
	if !ok {
		return "", fmt.Errorf("%w: malformed media type %q", ErrNotAnImage, mediaType)
	}
	if mainType != "image" {
		return "", fmt.Errorf("%w: expected an image, got %q", ErrNotAnImage, mainType)
	}
	return subtype, nil
}
