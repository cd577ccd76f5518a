// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "github.com/carbon-tracker/backend/internal/domain/entity"

// Notifier receives user-facing notifications emitted by use cases.
type Notifier interface {
	Notify(n entity.Notification)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(entity.Notification) {}
