package routes

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/middleware"
	"taskflow-app/taskflow/services"
)

// Services bundles the service implementations the router dispatches to.
type Services struct {
	Auth         services.AuthServiceInterface
	User         services.UserServiceInterface
	Board        services.BoardServiceInterface
	List         services.ListServiceInterface
	Task         services.TaskServiceInterface
	Notification services.NotificationServiceInterface
	Report       services.ReportServiceInterface
}

// NewRouter builds the API engine. Everything under /api/v1 except health,
// register and login requires a bearer token.
func NewRouter(db *database.Database, svc Services, allowedOrigins string, logger *log.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.TracingMiddleware(),
		middleware.RequestLogger(logger),
		middleware.CORSMiddleware(allowedOrigins),
	)

	public := router.Group("/api/v1")
	protected := router.Group("/api/v1")
	protected.Use(
		middleware.AuthMiddleware(svc.Auth),
		middleware.UnreadCountMiddleware(db, svc.Notification),
	)

	RegisterHealthRoutes(public, db)
	RegisterAuthRoutes(public, protected, db, svc.Auth)
	RegisterUserRoutes(protected, db, svc.User)
	RegisterBoardRoutes(protected, db, svc.Board, svc.List, svc.User)
	RegisterListRoutes(protected, db, svc.List, svc.Task)
	RegisterTaskRoutes(protected, db, svc.Task)
	RegisterNotificationRoutes(protected, db, svc.Notification)
	RegisterReportRoutes(protected, db, svc.Report, svc.Task)

	return router
}
