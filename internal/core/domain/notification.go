package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationStatus is a custom type for the read-state ENUM
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Notification is a message to a marketplace user, rendered client-side
// from a translation key and its parameters.
type Notification struct {
	ID                uuid.UUID
	UserID            string // recipient Identity.ID
	TranslationKey    string
	Type              string
	Status            NotificationStatus
	ActionURL         *string
	TranslationParams map[string]any
	CreatedAt         time.Time
}
