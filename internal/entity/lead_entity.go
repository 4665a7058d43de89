package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Lead is a completed selection handed off to a human operator. Selection
// holds the full attribute filter as reported by the resolver, verbatim.
type Lead struct {
	Id           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ChatUserId   string            `gorm:"index" json:"chat_user_id"`
	Username     string            `json:"username"`
	FullName     string            `json:"full_name"`
	Source       string            `json:"source"`
	Selection    datatypes.JSONMap `json:"selection"`
	Price        string            `json:"price"`
	Availability string            `json:"availability"`
	CreatedAt    time.Time         `json:"created_at"`
}
