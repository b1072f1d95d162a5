package datauri

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const pngImageB64 = "iVBORw0KGgoAAAANSUhEUgAAAAIAAAACCAIAAAD91JpzAAAAD0lEQVQI12P4zwAD/xkYAA/+Af8iHnLUAAAAAElFTkSuQmCC"

const svgImage = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func pngImage(t *testing.T) []byte {
	t.Helper()
	payload, err := base64.StdEncoding.DecodeString(pngImageB64)
	require.NoError(t, err)
	return payload
}

func writeFile(t *testing.T, name string, payload []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, payload, 0o644))
	return path
}

func TestResolveWithoutEmbedding(t *testing.T) {
	for _, reference := range []string{"http://example.com/logo.png", "file:///tmp/logo.png", "logo.png"} {
		resolved, err := NewResolver().Resolve(context.Background(), reference, false)
		require.NoError(t, err)
		require.Equal(t, reference, resolved)
	}
}

func TestResolveDataURI(t *testing.T) {
	reference := "data:image/png;base64," + pngImageB64
	resolved, err := NewResolver().Resolve(context.Background(), reference, true)
	require.NoError(t, err)
	require.Equal(t, reference, resolved)
}

func TestResolveLocalFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		payload []byte
		want    string
		wantErr error
	}{
		{
			name:    "png sniffed from content",
			file:    "image",
			payload: pngImage(t),
			want:    "data:image/png;base64," + pngImageB64,
		},
		{
			name:    "svg guessed from extension",
			file:    "image.svg",
			payload: []byte(svgImage),
			want:    "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svgImage)),
		},
		{
			name:    "unknown type",
			file:    "unknown",
			payload: []byte("Hello"),
			wantErr: ErrTypeDetermination,
		},
		{
			name:    "text file",
			file:    "hello.txt",
			payload: []byte("Hello"),
			wantErr: ErrNotAnImage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.payload)
			resolved, err := NewResolver().Resolve(context.Background(), path, true)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, ErrResolve)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, resolved)
		})
	}
}

func TestResolveTextFileMessage(t *testing.T) {
	path := writeFile(t, "hello.txt", []byte("Hello"))
	_, err := NewResolver().Resolve(context.Background(), path, true)
	require.ErrorContains(t, err, `expected an image, got "text"`)
}

func TestResolvePathWithPercent(t *testing.T) {
	path := writeFile(t, "logo%v2.png", pngImage(t))
	resolved, err := NewResolver().Resolve(context.Background(), path, true)
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,"+pngImageB64, resolved)
}

func TestResolveHTTPBodyLimit(t *testing.T) {
	png := pngImage(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer server.Close()

	_, err := NewResolver().WithHTTPClient(server.Client()).WithMaxBytes(int64(len(png)-1)).Resolve(context.Background(), server.URL, true)
	require.ErrorIs(t, err, ErrFetch)
	require.ErrorContains(t, err, "exceeds")

	resolved, err := NewResolver().WithHTTPClient(server.Client()).WithMaxBytes(int64(len(png))).Resolve(context.Background(), server.URL, true)
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,"+pngImageB64, resolved)
}

func TestResolveMissingFile(t *testing.T) {
	_, err := NewResolver().Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.png"), true)
	require.ErrorIs(t, err, ErrResolve)
}

func TestResolveLocalFilesDisabled(t *testing.T) {
	path := writeFile(t, "image.png", pngImage(t))
	_, err := NewResolver().WithLocalFiles(false).Resolve(context.Background(), path, true)
	require.ErrorIs(t, err, ErrLocalFilesDisabled)
}

func TestResolveUnsupportedScheme(t *testing.T) {
	path := writeFile(t, "image.png", pngImage(t))
	for _, reference := range []string{"file://" + path, "ftp://example.com/image.png"} {
		_, err := NewResolver().Resolve(context.Background(), reference, true)
		require.ErrorIs(t, err, ErrUnsupportedScheme)
	}
	_, err := NewResolver().Resolve(context.Background(), "file://"+path, true)
	require.ErrorContains(t, err, `unsupported scheme "file"`)
}

func TestResolveHTTP(t *testing.T) {
	png := pngImage(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/image.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})
	mux.HandleFunc("/image.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
		w.Write([]byte(svgImage))
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	})
	mux.HandleFunc("/untyped", func(w http.ResponseWriter, r *http.Request) {
		// A nil value stops net/http from sniffing a Content-Type.
		w.Header()["Content-Type"] = nil
		w.Write(png)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	resolver := NewResolver().WithHTTPClient(server.Client())

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{name: "png", path: "/image.png", want: "data:image/png;base64," + pngImageB64},
		{name: "svg with charset", path: "/image.svg", want: "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svgImage))},
		{name: "not an image", path: "/page", wantErr: ErrNotAnImage},
		{name: "missing content type", path: "/untyped", wantErr: ErrMissingContentType},
		{name: "not found", path: "/missing", wantErr: ErrFetch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := resolver.Resolve(context.Background(), server.URL+tt.path, true)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, resolved)
		})
	}
}

func TestResolveHTTPTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	_, err := NewResolver().Resolve(context.Background(), url+"/image.png", true)
	require.ErrorIs(t, err, ErrFetch)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		reference string
		want      source
	}{
		{"/tmp/logo.png", sourcePath},
		{"/tmp/logo%v2.png", sourcePath},
		{"./c:/logo.png", sourcePath},
		{"2x:logo.png", sourcePath},
		{"logo.png", sourcePath},
		{"data:image/png;base64,AAAA", sourceData},
		{"http://example.com/logo.png", sourceHTTP},
		{"HTTPS://example.com/logo.png", sourceHTTP},
		{"file:///tmp/logo.png", sourceUnsupported},
		{"gopher://example.com", sourceUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.reference, func(t *testing.T) {
			got, _ := classify(tt.reference)
			require.Equal(t, tt.want, got)
		})
	}
}
