package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/rahulsm/goblog/dto"
	"github.com/rahulsm/goblog/middleware"
	"github.com/rahulsm/goblog/models"
	"github.com/rahulsm/goblog/repository"
	"github.com/rahulsm/goblog/utils"
)

type PostController struct {
	posts repository.PostRepository
}

func NewPostController(posts repository.PostRepository) *PostController {
	return &PostController{posts: posts}
}

func callerID(c *gin.Context) (bson.ObjectID, bool) {
	val, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return bson.ObjectID{}, false
	}
	hex, ok := val.(string)
	if !ok {
		return bson.ObjectID{}, false
	}
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.ObjectID{}, false
	}
	return id, true
}

func (pc *PostController) CreatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		author, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		var body dto.CreatePostDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		post := &models.Post{
			Title:     strings.TrimSpace(body.Title),
			Content:   body.Content,
			Slug:      utils.GenerateSlug(body.Title),
			Author:    author,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := pc.posts.Insert(c.Request.Context(), post); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Post created successfully",
			"post":    post,
		})
	}
}

func (pc *PostController) GetPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), 20)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}

		items, total, err := pc.posts.FindAll(c.Request.Context(), page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

func (pc *PostController) GetMyPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		author, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		posts, err := pc.posts.FindByAuthor(c.Request.Context(), author)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, posts)
	}
}

func (pc *PostController) UpdatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
			return
		}

		var body dto.UpdatePostDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		post, err := pc.posts.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if post.Author != caller {
			c.JSON(http.StatusForbidden, gin.H{"message": "Not allowed"})
			return
		}

		if body.Title != nil {
			v := strings.TrimSpace(*body.Title)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
				return
			}
			post.Title = v
			post.Slug = utils.GenerateSlug(v)
		}
		if body.Content != nil {
			if *body.Content == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "content cannot be empty"})
				return
			}
			post.Content = *body.Content
		}

		if err := pc.posts.Update(c.Request.Context(), post); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Post updated successfully",
			"post":    post,
		})
	}
}

func (pc *PostController) DeletePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
			return
		}

		post, err := pc.posts.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if post.Author != caller {
			c.JSON(http.StatusForbidden, gin.H{"message": "Not allowed"})
			return
		}

		if err := pc.posts.Delete(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
	}
}
