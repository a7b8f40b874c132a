package controller

import (
	"net/http"

	"ctchen222/ShareBnB/internal/api/middleware"
	"ctchen222/ShareBnB/internal/api/models"
	"ctchen222/ShareBnB/internal/api/response"
	"ctchen222/ShareBnB/internal/api/service"

	"github.com/gin-gonic/gin"
)

// MessageController handles messaging HTTP requests. The sender is always the token holder.
type MessageController struct {
	messageService service.MessageService
}

// NewMessageController creates a new MessageController.
func NewMessageController(messageService service.MessageService) *MessageController {
	return &MessageController{
		messageService: messageService,
	}
}

func (mc *MessageController) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	message, err := mc.messageService.SendMessage(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.CreatedResponse(c, gin.H{"message": message.Serialize()})
}

// Inbox lists the messages sent to the current user.
func (mc *MessageController) Inbox(c *gin.Context) {
	messages, err := mc.messageService.Inbox(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	serialized := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		serialized = append(serialized, messages[i].Serialize())
	}
	response.SuccessResponse(c, gin.H{"message": serialized})
}

func (mc *MessageController) DeleteMessage(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := mc.messageService.DeleteMessage(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.CreatedResponse(c, gin.H{"deleted": id})
}
