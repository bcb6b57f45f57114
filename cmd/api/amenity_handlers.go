package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerAmenityRoutes(router gin.IRouter) {
	amenities := router.Group("/amenities")
	amenities.POST("", s.handleCreateAmenity)
	amenities.GET("", s.handleListAmenities)
	amenities.GET("/:id", s.handleGetAmenity)
	amenities.PUT("/:id", s.handleUpdateAmenity)
	amenities.DELETE("/:id", s.handleDeleteAmenity)
}

func (s *Server) handleCreateAmenity(c *gin.Context) {
	in, err := payload(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	a, err := s.hbnb.CreateAmenity(c.Request.Context(), caller(c), in)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (s *Server) handleListAmenities(c *gin.Context) {
	amenities, err := s.hbnb.ListAmenities(c.Request.Context())
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, amenities)
}

func (s *Server) handleGetAmenity(c *gin.Context) {
	a, err := s.hbnb.GetAmenity(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleUpdateAmenity(c *gin.Context) {
	fields, err := payload(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	a, err := s.hbnb.UpdateAmenity(c.Request.Context(), caller(c), c.Param("id"), fields)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleDeleteAmenity(c *gin.Context) {
	if err := s.hbnb.DeleteAmenity(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
