package handler

import (
	"io"
	"log"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const maxAudioBytes = 10 << 20

// TranscribeHandler forwards a recorded audio clip to the speech-to-text
// backend and returns the recognized text.
func TranscribeHandler(c *gin.Context, client *services.TranscribeClient) {
	if !client.Configured() {
		utils.BadGateway(c, "Transcription service is not configured")
		return
	}

	audio, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAudioBytes))
	if err != nil {
		utils.BadRequest(c, "Failed to read audio data")
		return
	}
	if len(audio) == 0 {
		utils.BadRequest(c, "No audio data provided")
		return
	}

	contentType := c.GetHeader("Content-Type")
	if contentType == "" {
		contentType = "audio/webm"
	}

	text, err := client.Transcribe(c.Request.Context(), audio, contentType)
	if err != nil {
		log.Printf("transcription failed: %v", err)
		utils.TrackError("transcribe", "transcribe_audio")
		utils.BadGateway(c, "Không thể nhận dạng giọng nói. Vui lòng thử lại.")
		return
	}
	utils.Success(c, gin.H{"text": text})
}
