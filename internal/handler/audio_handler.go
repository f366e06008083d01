package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kairu/internal/audio"
)

type AudioHandler struct {
	catalog audio.Catalog
}

func NewAudioHandler(catalog audio.Catalog) *AudioHandler {
	return &AudioHandler{catalog: catalog}
}

func (h *AudioHandler) Tracks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tracks": h.catalog.Tracks})
}
