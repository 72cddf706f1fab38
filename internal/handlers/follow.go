package handlers

import (
	"net/http"

	"quill/internal/db"
	"quill/internal/models"
	"quill/internal/utils"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct{}

func NewFollowHandler() *FollowHandler {
	return &FollowHandler{}
}

// Feed - 关注流 /follow/，只包含当前用户关注作者的帖子。
// 内容因人而异，每次请求现算，不走页面缓存。
func (h *FollowHandler) Feed(c *gin.Context) {
	user := currentUser(c)

	followed := db.DB.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", user.ID)

	var posts []models.Post
	db.DB.Preload("Author").Preload("Group").
		Where("author_id IN (?)", followed).
		Order("created_at DESC, id DESC").
		Find(&posts)

	fillCommentCounts(posts)
	page := utils.Paginate(posts, pageNumber(c), utils.PerPage)

	Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title": "Your feed",
		"Page":  page,
	})
}

// Follow - 关注作者。重复关注和关注自己都是静默 no-op。
func (h *FollowHandler) Follow(c *gin.Context) {
	user := currentUser(c)
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderNotFound(c, "User not found")
		return
	}

	if user.ID != author.ID {
		follow := models.Follow{UserID: user.ID, AuthorID: author.ID}
		// The unique index on (user_id, author_id) is the backstop for two
		// concurrent first follows; losing that race is not an error.
		db.DB.Where(models.Follow{UserID: user.ID, AuthorID: author.ID}).FirstOrCreate(&follow)
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// Unfollow - 取消关注。未关注时返回 404。
func (h *FollowHandler) Unfollow(c *gin.Context) {
	user := currentUser(c)
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderNotFound(c, "User not found")
		return
	}

	var follow models.Follow
	if err := db.DB.Where("user_id = ? AND author_id = ?", user.ID, author.ID).First(&follow).Error; err != nil {
		RenderNotFound(c, "You are not following this user")
		return
	}

	db.DB.Delete(&follow)

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
