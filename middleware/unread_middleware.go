package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/services"
)

// UnreadCountHeader carries the caller's unread notification count on every
// authenticated response.
const UnreadCountHeader = "X-Unread-Count"

// UnreadCountMiddleware stamps UnreadCountHeader just before the response
// is written, so the count includes whatever the handler changed. It must
// run after AuthMiddleware.
func UnreadCountMiddleware(db *database.Database, notificationService services.NotificationServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(UserIDKey)
		userID, ok := value.(uuid.UUID)
		if !exists || !ok {
			c.Next()
			return
		}

		c.Writer = &unreadWriter{
			ResponseWriter: c.Writer,
			stamp: func(w gin.ResponseWriter) {
				count, err := notificationService.UnreadCount(db, userID)
				if err != nil {
					log.WithField("user_id", userID.String()).Warnf("Failed to count unread notifications: %v", err)
					return
				}
				w.Header().Set(UnreadCountHeader, strconv.FormatInt(count, 10))
			},
		}
		c.Next()
	}
}

type unreadWriter struct {
	gin.ResponseWriter
	stamp   func(w gin.ResponseWriter)
	stamped bool
}

func (w *unreadWriter) stampOnce() {
	if w.stamped || w.ResponseWriter.Written() {
		return
	}
	w.stamped = true
	w.stamp(w.ResponseWriter)
}

func (w *unreadWriter) WriteHeader(code int) {
	w.stampOnce()
	w.ResponseWriter.WriteHeader(code)
}

func (w *unreadWriter) WriteHeaderNow() {
	w.stampOnce()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *unreadWriter) Write(data []byte) (int, error) {
	w.stampOnce()
	return w.ResponseWriter.Write(data)
}

func (w *unreadWriter) WriteString(s string) (int, error) {
	w.stampOnce()
	return w.ResponseWriter.WriteString(s)
}
