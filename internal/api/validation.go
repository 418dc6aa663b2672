package api

import (
	"encoding/json"
	"regexp"

	"github.com/gin-gonic/gin"
)

// Field length bounds, matching what clients were always held to
const (
	nameMinLen    = 3
	nameMaxLen    = 50
	titleMinLen   = 5
	titleMaxLen   = 100
	postMinLen    = 10
	postMaxLen    = 2000
	commentMinLen = 5
	commentMaxLen = 1000
)

var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

func validEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func lengthBetween(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

// decodeStrict decodes the request body into dst, rejecting unknown fields.
// Update payloads go through this so stray properties (including id and
// created_at) can never be written onto a node.
func decodeStrict(c *gin.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
