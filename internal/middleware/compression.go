package middleware

import (
	"compress/gzip"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// CompressionConfig holds configuration for response compression.
type CompressionConfig struct {
	MinSize      int
	Level        int
	ContentTypes []string
}

// DefaultCompressionConfig compresses textual responses of 1KB and up
// at a balanced gzip level.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize: 1024,
		Level:   6,
		ContentTypes: []string{
			"application/json",
			"text/html",
			"text/plain",
		},
	}
}

type gzipWriter struct {
	gin.ResponseWriter
	cfg CompressionConfig
	gz  *gzip.Writer

	buf        []byte
	compressed bool
	decided    bool
}

// Write buffers until MinSize is reached, then switches to gzip output.
// Small responses pass through uncompressed.
func (w *gzipWriter) Write(data []byte) (int, error) {
	if w.decided {
		if w.compressed {
			return w.gz.Write(data)
		}
		return w.ResponseWriter.Write(data)
	}

	w.buf = append(w.buf, data...)
	if len(w.buf) < w.cfg.MinSize {
		return len(data), nil
	}

	w.decided = true
	if !compressible(w.cfg, w.Header().Get("Content-Type")) {
		if _, err := w.ResponseWriter.Write(w.buf); err != nil {
			return 0, err
		}
		w.buf = nil
		return len(data), nil
	}

	w.compressed = true
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	if _, err := w.gz.Write(w.buf); err != nil {
		return 0, err
	}
	w.buf = nil
	return len(data), nil
}

// WriteString satisfies gin.ResponseWriter.
func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *gzipWriter) close() error {
	if !w.decided {
		// Response stayed under MinSize.
		if len(w.buf) > 0 {
			if _, err := w.ResponseWriter.Write(w.buf); err != nil {
				return err
			}
		}
		return nil
	}
	return w.gz.Close()
}

// Compression returns middleware that gzips textual responses for
// clients that accept it.
func Compression(cfg CompressionConfig) gin.HandlerFunc {
	pool := sync.Pool{
		New: func() interface{} {
			gz, _ := gzip.NewWriterLevel(nil, cfg.Level)
			return gz
		},
	}

	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gz := pool.Get().(*gzip.Writer)
		gz.Reset(c.Writer)
		defer pool.Put(gz)

		wrapped := &gzipWriter{ResponseWriter: c.Writer, cfg: cfg, gz: gz}
		c.Writer = wrapped
		c.Header("Vary", "Accept-Encoding")

		c.Next()

		_ = wrapped.close()
	}
}

func compressible(cfg CompressionConfig, contentType string) bool {
	for _, ct := range cfg.ContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}
