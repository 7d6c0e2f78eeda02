package api

import (
	"html/template"
	"net/http"

	"localgym/gym-admin/internal/config"
	"localgym/gym-admin/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services holds the service dependencies the router needs.
type Services struct {
	Auth     service.AuthService
	Members  service.MemberService
	Trainers service.TrainerService
	Plans    service.PlanService
	Types    service.TypeService
	Catalog  service.CatalogService
}

// NewRouter builds the gin engine: templates, session store, request
// logging, and all routes. The catalog routes sit behind the login gate.
func NewRouter(cfg config.Config, templatesGlob string, logger *zap.Logger, svcs Services) *gin.Engine {
	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	router.SetFuncMap(template.FuncMap{
		"markdown": markdownHTML,
	})
	router.LoadHTMLGlob(templatesGlob)

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
	})
	router.Use(sessions.Sessions(cfg.Session.Name, store))

	authHandler := NewAuthHandler(svcs.Auth, logger, cfg.DevMode)
	memberHandler := NewMemberHandler(svcs.Members, svcs.Catalog, logger, cfg.DevMode)
	trainerHandler := NewTrainerHandler(svcs.Trainers, logger, cfg.DevMode)
	planHandler := NewPlanHandler(svcs.Plans, logger, cfg.DevMode)
	typeHandler := NewTypeHandler(svcs.Types, logger, cfg.DevMode)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog")
	})

	users := router.Group("/users")
	{
		users.GET("/login", authHandler.LoginForm)
		users.POST("/login", authHandler.LoginSubmit)
		users.GET("/logout", authHandler.Logout)
	}

	catalog := router.Group("/catalog", RequireLogin())
	{
		catalog.GET("", memberHandler.Index)

		catalog.GET("/member/create", memberHandler.CreateForm)
		catalog.POST("/member/create", memberHandler.CreateSubmit)
		catalog.GET("/member/:id/update", memberHandler.UpdateForm)
		catalog.POST("/member/:id/update", memberHandler.UpdateSubmit)
		catalog.GET("/member/:id/delete", memberHandler.DeleteForm)
		catalog.POST("/member/:id/delete", memberHandler.DeleteSubmit)
		catalog.GET("/member/:id", memberHandler.Detail)
		catalog.GET("/members", memberHandler.List)

		catalog.GET("/trainer/create", trainerHandler.CreateForm)
		catalog.POST("/trainer/create", trainerHandler.CreateSubmit)
		catalog.GET("/trainer/:id/update", trainerHandler.UpdateForm)
		catalog.POST("/trainer/:id/update", trainerHandler.UpdateSubmit)
		catalog.GET("/trainer/:id/delete", trainerHandler.DeleteForm)
		catalog.POST("/trainer/:id/delete", trainerHandler.DeleteSubmit)
		catalog.GET("/trainer/:id", trainerHandler.Detail)
		catalog.GET("/trainers", trainerHandler.List)

		catalog.GET("/plan/create", planHandler.CreateForm)
		catalog.POST("/plan/create", planHandler.CreateSubmit)
		catalog.GET("/plan/:id/update", planHandler.UpdateForm)
		catalog.POST("/plan/:id/update", planHandler.UpdateSubmit)
		catalog.GET("/plan/:id/delete", planHandler.DeleteForm)
		catalog.POST("/plan/:id/delete", planHandler.DeleteSubmit)
		catalog.GET("/plan/:id", planHandler.Detail)
		catalog.GET("/plans", planHandler.List)

		catalog.GET("/type/create", typeHandler.CreateForm)
		catalog.POST("/type/create", typeHandler.CreateSubmit)
		catalog.GET("/type/:id/update", typeHandler.UpdateForm)
		catalog.POST("/type/:id/update", typeHandler.UpdateSubmit)
		catalog.GET("/type/:id/delete", typeHandler.DeleteForm)
		catalog.POST("/type/:id/delete", typeHandler.DeleteSubmit)
		catalog.GET("/type/:id", typeHandler.Detail)
		catalog.GET("/types", typeHandler.List)
	}

	router.NoRoute(func(c *gin.Context) {
		renderNotFound(c, "Page not found")
	})

	return router
}
