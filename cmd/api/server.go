package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Joan938/holbertonschool-hbnb/auth"
	"github.com/Joan938/holbertonschool-hbnb/facade"
	"github.com/Joan938/holbertonschool-hbnb/logging"
)

// Server adapts HTTP requests onto the facade. It holds no business rules.
type Server struct {
	hbnb *facade.Service
	auth *auth.Service
	log  logrus.FieldLogger
}

func NewServer(hbnb *facade.Service, authService *auth.Service, log logrus.FieldLogger) *Server {
	return &Server{hbnb: hbnb, auth: authService, log: log}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(s.log))
	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api/v1")
	api.Use(s.identify)
	s.registerAuthRoutes(api)
	s.registerUserRoutes(api)
	s.registerAmenityRoutes(api)
	s.registerPlaceRoutes(api)
	s.registerReviewRoutes(api)
	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
