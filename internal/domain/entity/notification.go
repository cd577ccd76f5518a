// Package entity defines the core business entities for the domain layer.
package entity

// NotificationVariant controls how a notification is presented.
type NotificationVariant string

const (
	NotificationDefault     NotificationVariant = "default"
	NotificationDestructive NotificationVariant = "destructive"
)

// Notification is a human-readable message for the presentation layer.
type Notification struct {
	Title       string
	Description string
	Variant     NotificationVariant
}

// Info creates a default notification.
func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: NotificationDefault}
}

// Failure creates a destructive notification.
func Failure(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: NotificationDestructive}
}
