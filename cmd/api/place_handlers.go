package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerPlaceRoutes(router gin.IRouter) {
	places := router.Group("/places")
	places.POST("", s.handleCreatePlace)
	places.GET("", s.handleListPlaces)
	places.GET("/:id", s.handleGetPlace)
	places.PUT("/:id", s.handleUpdatePlace)
	places.GET("/:id/reviews", s.handleListPlaceReviews)
}

func (s *Server) handleCreatePlace(c *gin.Context) {
	in, err := payload(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	p, err := s.hbnb.CreatePlace(c.Request.Context(), caller(c), in)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) handleListPlaces(c *gin.Context) {
	places, err := s.hbnb.ListPlaces(c.Request.Context())
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}

// handleGetPlace renders the place with its owner and amenity records.
func (s *Server) handleGetPlace(c *gin.Context) {
	d, err := s.hbnb.GetPlaceDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleUpdatePlace(c *gin.Context) {
	fields, err := payload(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	p, err := s.hbnb.UpdatePlace(c.Request.Context(), caller(c), c.Param("id"), fields)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleListPlaceReviews(c *gin.Context) {
	reviews, err := s.hbnb.ListReviewsByPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
