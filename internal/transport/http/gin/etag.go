package httpgin

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json; charset=utf-8"

// writeJSONWithETag writes v with a weak ETag derived from its encoding and
// answers 304 when the client already holds that representation.
func writeJSONWithETag(c *gin.Context, v any, cacheControl string) {
	b, err := json.Marshal(v)
	if err != nil {
		respondErr(c, err)
		return
	}

	sum := sha256.Sum256(b)
	tag := `W/"` + hex.EncodeToString(sum[:16]) + `"`

	c.Header("ETag", tag)
	if cacheControl != "" {
		c.Header("Cache-Control", cacheControl)
	}

	if etagMatches(c.GetHeader("If-None-Match"), tag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, jsonContentType, b)
}

// etagMatches implements the weak comparison of If-None-Match, which may
// list several tags or be "*".
func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(tag, "W/") {
			return true
		}
	}
	return false
}
