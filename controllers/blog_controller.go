package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"inkpost/errs"
	"inkpost/middleware"
	"inkpost/models"
	"inkpost/services"
)

type BlogController struct {
	blogService *services.BlogService
	log         zerolog.Logger
}

func NewBlogController(blogService *services.BlogService, log zerolog.Logger) *BlogController {
	return &BlogController{
		blogService: blogService,
		log:         log.With().Str("component", "blog_controller").Logger(),
	}
}

// ListBlogs godoc
// @Summary Latest and trending public blogs
// @Tags blogs
// @Produce json
// @Param search query string false "Words to match in title or content"
// @Param tag query string false "Exact hashtag"
// @Success 200 {object} map[string]interface{}
// @Router /blogs [get]
func (bc *BlogController) ListBlogs(c *gin.Context) {
	var query models.BlogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, bc.log, err)
		return
	}

	listing, err := bc.blogService.ListBlogs(c.Request.Context(), query)
	if err != nil {
		respondError(c, bc.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": listing})
}

// GetBlogBySlug godoc
// @Summary Read a blog
// @Tags blogs
// @Produce json
// @Param slug path string true "Blog slug"
// @Success 200 {object} map[string]interface{}
// @Success 304
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /blogs/{slug} [get]
func (bc *BlogController) GetBlogBySlug(c *gin.Context) {
	blog, err := bc.blogService.GetBySlug(c.Request.Context(), c.Param("slug"), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	respondDetail(c, bc.log, blog)
}

// GetBlogByID godoc
// @Summary Read a blog by id
// @Tags blogs
// @Produce json
// @Param id path string true "Blog id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /blogs/id/{id} [get]
func (bc *BlogController) GetBlogByID(c *gin.Context) {
	blog, err := bc.blogService.GetByID(c.Request.Context(), c.Param("id"), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, bc.log, err)
		return
	}
	respondDetail(c, bc.log, blog)
}

// CreateBlog godoc
// @Summary Publish a blog
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.CreateBlogRequest true "Blog"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /blogs [post]
func (bc *BlogController) CreateBlog(c *gin.Context) {
	var req models.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, bc.log, err)
		return
	}
	if err := checkHashtags(req.Hashtags); err != nil {
		respondError(c, bc.log, err)
		return
	}

	blog, err := bc.blogService.Create(c.Request.Context(), req, *middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, bc.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": blog})
}

// UpdateBlog godoc
// @Summary Edit a blog
// @Description Only fields present in the body change. The slug is kept.
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog id"
// @Param body body models.BlogPatch true "Changes"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /blogs/{id} [put]
func (bc *BlogController) UpdateBlog(c *gin.Context) {
	var patch models.BlogPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, bc.log, err)
		return
	}
	if patch.Hashtags != nil {
		if err := checkHashtags(*patch.Hashtags); err != nil {
			respondError(c, bc.log, err)
			return
		}
	}

	blog, err := bc.blogService.Update(c.Request.Context(), c.Param("id"), patch, *middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, bc.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": blog})
}

// DeleteBlog godoc
// @Summary Delete a blog
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /blogs/{id} [delete]
func (bc *BlogController) DeleteBlog(c *gin.Context) {
	if err := bc.blogService.Delete(c.Request.Context(), c.Param("id"), *middleware.CurrentIdentity(c)); err != nil {
		respondError(c, bc.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}

// ToggleLike godoc
// @Summary Like or unlike a blog
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog id"
// @Success 200 {object} models.LikeState
// @Failure 404 {object} map[string]interface{}
// @Router /blogs/{id}/like [post]
func (bc *BlogController) ToggleLike(c *gin.Context) {
	state, err := bc.blogService.ToggleLike(c.Request.Context(), c.Param("id"), *middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, bc.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": state})
}

// checkHashtags counts only the tags that survive trimming.
func checkHashtags(tags []string) error {
	n := 0
	for _, tag := range tags {
		if strings.TrimSpace(tag) != "" {
			n++
		}
	}
	if n > models.MaxHashtags {
		return errs.BadRequest(fmt.Sprintf("at most %d hashtags are allowed", models.MaxHashtags))
	}
	return nil
}
