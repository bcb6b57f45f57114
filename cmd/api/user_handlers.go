package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerUserRoutes(router gin.IRouter) {
	users := router.Group("/users")
	users.POST("", s.handleCreateUser)
	users.GET("", s.handleListUsers)
	users.GET("/:id", s.handleGetUser)
	users.PUT("/:id", s.handleUpdateUser)
	users.PUT("/:id/password", s.handleChangePassword)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	in, err := payload(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	u, err := s.hbnb.CreateUser(c.Request.Context(), in)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.hbnb.ListUsers(c.Request.Context())
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleGetUser(c *gin.Context) {
	u, err := s.hbnb.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	fields, err := payload(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	u, err := s.hbnb.UpdateUser(c.Request.Context(), caller(c), c.Param("id"), fields)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) handleChangePassword(c *gin.Context) {
	in, err := payload(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	if err := s.hbnb.ChangePassword(c.Request.Context(), caller(c), c.Param("id"), in); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
