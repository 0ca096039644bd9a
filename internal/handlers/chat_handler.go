package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yashvi-chat/yashvi/internal/domains/conversation"
	"github.com/yashvi-chat/yashvi/internal/domains/session"
	"github.com/yashvi-chat/yashvi/internal/runtime/hosts"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
	"github.com/yashvi-chat/yashvi/pkg/io/audio"
)

// ChatHandler drives the user chat view: text sends and voice-note uploads.
type ChatHandler struct {
	convo  *conversation.Service
	hosts  *hosts.Hosts
	logger *Logger.Logger
}

func NewChatHandler(convo *conversation.Service, hosts *hosts.Hosts, logger *Logger.Logger) *ChatHandler {
	return &ChatHandler{convo: convo, hosts: hosts, logger: logger}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	h.exchange(c, c.PostForm("message"))
}

// SendVoice accepts an uploaded clip, transcribes it, and feeds the
// transcript through the same exchange path as typed text.
func (h *ChatHandler) SendVoice(c *gin.Context) {
	file, err := c.FormFile("clip")
	if err != nil {
		h.renderChat(c, http.StatusBadRequest, gin.H{"Error": "No audio clip was uploaded."})
		return
	}

	recognizer, err := h.hosts.SpeechRecognizer()
	if err != nil {
		h.logger.Errorf("speech recognizer unavailable: %v", err)
		h.renderChat(c, http.StatusInternalServerError, gin.H{
			"Error": "Speech recognition could not be initialized.",
		})
		return
	}

	clipPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("yashvi-clip-%s%s", uuid.New(), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, clipPath); err != nil {
		h.logger.Errorf("failed to store uploaded clip: %v", err)
		h.renderChat(c, http.StatusInternalServerError, gin.H{
			"Error": "Could not store the uploaded clip.",
		})
		return
	}

	transcript, err := recognizer.Transcribe(c.Request.Context(), clipPath)
	if err != nil {
		h.logger.Errorf("transcription failed: %v", err)
		h.renderChat(c, http.StatusBadGateway, gin.H{
			"Error": "Could not transcribe the clip, try again!",
		})
		return
	}

	h.exchange(c, transcript)
}

func (h *ChatHandler) exchange(c *gin.Context, text string) {
	reply, err := h.convo.Send(c.Request.Context(), CurrentSession(c), text)
	switch {
	case errors.Is(err, hosts.ErrModelInit):
		h.renderChat(c, http.StatusInternalServerError, gin.H{
			"Error": "The language model could not be initialized; chatting is unavailable.",
		})
	case errors.Is(err, conversation.ErrGeneration):
		h.renderChat(c, http.StatusBadGateway, gin.H{
			"Error": "Couldn't come up with a reply, try again!",
		})
	case err != nil:
		h.logger.Errorf("send failed: %v", err)
		h.renderChat(c, http.StatusInternalServerError, gin.H{
			"Error": "Something went wrong.",
		})
	case reply == nil:
		// blank input: silently re-render
		h.renderChat(c, http.StatusOK, gin.H{})
	default:
		data := gin.H{"Reply": reply.Turn}
		if reply.AudioErr != nil {
			data["Notice"] = "Audio is unavailable right now — here's the text."
		} else if tag, err := audio.Embed(reply.AudioPath); err != nil {
			h.logger.Warnf("failed to inline audio: %v", err)
			data["Notice"] = "Audio is unavailable right now — here's the text."
		} else {
			data["Audio"] = tag
		}
		h.renderChat(c, http.StatusOK, data)
	}
}

func (h *ChatHandler) renderChat(c *gin.Context, status int, data gin.H) {
	data["History"] = CurrentSession(c).History()
	c.HTML(status, "chat.html", data)
}

func (h *ChatHandler) RegisterRoutes(r *gin.Engine) {
	chat := r.Group("/chat")
	chat.Use(RequireRole(session.RoleUser))
	{
		chat.POST("/message", h.SendMessage)
		chat.POST("/voice", h.SendVoice)
	}
}
