package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/marketplace/internal/entity"
)

type CreateComplaintRequest struct {
	Complaint string `json:"complaint" binding:"required,min=5,max=2000"`
}

type ReplyRequest struct {
	Reply string `json:"reply" binding:"required,max=2000"`
}

type ComplaintResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username,omitempty"`
	Complaint string    `json:"complaint"`
	Status    string    `json:"status"`
	Reply     string    `json:"reply"`
	Date      time.Time `json:"date"`
}

func NewComplaintResponse(c *entity.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:        c.ID,
		Username:  c.User.Username,
		Complaint: c.Complaint,
		Status:    c.Status,
		Reply:     c.Reply,
		Date:      c.CreatedAt,
	}
}

func NewComplaintResponses(complaints []*entity.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(complaints))
	for _, c := range complaints {
		out = append(out, NewComplaintResponse(c))
	}
	return out
}
