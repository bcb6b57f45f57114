package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Joan938/holbertonschool-hbnb/auth"
)

func (s *Server) registerAuthRoutes(router gin.IRouter) {
	router.POST("/auth/login", s.handleLogin)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req auth.LoginRequest
	if err := bind(c, &req); err != nil {
		s.abort(c, err)
		return
	}
	res, err := s.auth.Login(c.Request.Context(), req)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
