package domain

import "time"

// Map represents a playable map
type Map struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	Description  *string   `json:"description" db:"description"`
	ThumbnailURL *string   `json:"thumbnail_url" db:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Agent represents a playable agent
type Agent struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Role        *string   `json:"role" db:"role"`
	Origin      *string   `json:"origin" db:"origin"`
	Description *string   `json:"description" db:"description"`
	PortraitURL *string   `json:"portrait_url" db:"portrait_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Ability represents one of an agent's abilities
type Ability struct {
	ID              string    `json:"id" db:"id"`
	AgentID         string    `json:"agent_id" db:"agent_id"`
	Name            string    `json:"name" db:"name"`
	Key             *string   `json:"key" db:"key"`
	Description     *string   `json:"description" db:"description"`
	CooldownSeconds *int      `json:"cooldown_seconds" db:"cooldown_seconds"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
