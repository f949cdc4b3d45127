package serve

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleReload refetches the project registry. The request must carry a
// GitHub webhook signature computed with the configured secret, so the
// registry repository's push webhook can trigger reloads.
func (s *Server) handleReload(c *gin.Context) {
	secret := s.resolver.Settings().Config().GitHubSecret

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable body")
		return
	}

	signature := c.GetHeader("X-Hub-Signature-256")
	if !validSignature(secret, signature, body) {
		s.logger.Warn("rejected reload request with bad signature")
		c.String(http.StatusUnauthorized, "invalid signature")
		return
	}

	if err := s.resolver.Settings().ReloadRegistry(c.Request.Context()); err != nil {
		s.logger.Error("registry reload failed", "error", err)
		c.String(http.StatusInternalServerError, "reload failed")
		return
	}

	if s.cache != nil {
		if err := s.cache.Flush(c.Request.Context()); err != nil {
			s.logger.Warn("failed to flush redirect cache after reload", "error", err)
		}
	}

	s.logger.Info("project registry reloaded")
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}

func validSignature(secret, signature string, body []byte) bool {
	const prefix = "sha256="
	if len(signature) <= len(prefix) || signature[:len(prefix)] != prefix {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := prefix + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
