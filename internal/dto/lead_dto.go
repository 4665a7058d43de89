package dto

import (
	"time"

	"github.com/google/uuid"
)

// LeadMessage is the payload published on the internal bus when a
// selection completes. The consumer owns persistence and delivery.
type LeadMessage struct {
	ChatUserId   string            `json:"chat_user_id"`
	Username     string            `json:"username"`
	FullName     string            `json:"full_name"`
	Source       string            `json:"source"`
	Selection    map[string]string `json:"selection"`
	Price        string            `json:"price"`
	Availability string            `json:"availability"`
}

type LeadResponse struct {
	Id           uuid.UUID         `json:"id"`
	ChatUserId   string            `json:"chat_user_id"`
	Username     string            `json:"username"`
	FullName     string            `json:"full_name"`
	Source       string            `json:"source"`
	Selection    map[string]string `json:"selection"`
	Price        string            `json:"price"`
	Availability string            `json:"availability"`
	CreatedAt    time.Time         `json:"created_at"`
}
