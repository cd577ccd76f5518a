package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// NotificationCollector gathers the notifications emitted while handling one request.
type NotificationCollector struct {
	mu    sync.Mutex
	items []entity.Notification
}

// Notify implements adapter.Notifier.
func (n *NotificationCollector) Notify(notification entity.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, notification)
}

// Items returns a copy of the collected notifications.
func (n *NotificationCollector) Items() []entity.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entity.Notification(nil), n.items...)
}

var _ adapter.Notifier = (*NotificationCollector)(nil)

// GetNotifications returns the request's collector, creating one when the
// identity middleware did not run.
func GetNotifications(c *gin.Context) *NotificationCollector {
	if v, exists := c.Get(string(NotificationsKey)); exists {
		if n, ok := v.(*NotificationCollector); ok {
			return n
		}
	}
	n := &NotificationCollector{}
	c.Set(string(NotificationsKey), n)
	return n
}
