package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerReviewRoutes(router gin.IRouter) {
	reviews := router.Group("/reviews")
	reviews.POST("", s.handleCreateReview)
	reviews.GET("", s.handleListReviews)
	reviews.GET("/:id", s.handleGetReview)
	reviews.PUT("/:id", s.handleUpdateReview)
	reviews.DELETE("/:id", s.handleDeleteReview)
}

func (s *Server) handleCreateReview(c *gin.Context) {
	in, err := payload(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	r, err := s.hbnb.CreateReview(c.Request.Context(), caller(c), in)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) handleListReviews(c *gin.Context) {
	reviews, err := s.hbnb.ListReviews(c.Request.Context())
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) handleGetReview(c *gin.Context) {
	r, err := s.hbnb.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) handleUpdateReview(c *gin.Context) {
	fields, err := payload(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	r, err := s.hbnb.UpdateReview(c.Request.Context(), caller(c), c.Param("id"), fields)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) handleDeleteReview(c *gin.Context) {
	if err := s.hbnb.DeleteReview(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
