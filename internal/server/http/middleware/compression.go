package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dispatch/internal/server/http/dto"
)

// MaxRequestBody caps a decoded request body. Order and customer payloads are
// a few hundred bytes.
const MaxRequestBody int64 = 1 << 20

// DecompressRequest decodes gzip request bodies and caps every body at
// MaxRequestBody bytes after decoding.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gzipEncoded(c.GetHeader("Content-Encoding")) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBody)
			c.Next()
			return
		}

		compressed := c.Request.Body
		defer compressed.Close()

		reader, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Envelope{
				Message: http.StatusText(http.StatusBadRequest),
				Error:   "request body is not valid gzip",
			})
			return
		}
		defer reader.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, reader, MaxRequestBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}

func gzipEncoded(header string) bool {
	for _, token := range strings.Split(header, ",") {
		switch strings.ToLower(strings.TrimSpace(token)) {
		case "gzip", "x-gzip":
			return true
		}
	}
	return false
}
