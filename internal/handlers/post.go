package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quill/internal/db"
	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/services"
	"quill/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// pageNumber 从 query 参数解析页码，默认第 1 页
func pageNumber(c *gin.Context) int {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	return page
}

// fillCommentCounts 批量填充帖子的评论数量
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type CountResult struct {
		PostID uint
		Count  int
	}
	var results []CountResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

func loadGroups() []models.Group {
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)
	return groups
}

// Index - 首页，全部帖子按时间倒序。整页渲染结果由 CachePage 中间件缓存。
func (h *PostHandler) Index(c *gin.Context) {
	var posts []models.Post
	db.DB.Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Find(&posts)

	fillCommentCounts(posts)
	page := utils.Paginate(posts, pageNumber(c), utils.PerPage)

	Render(c, http.StatusOK, "posts/index.html", gin.H{
		"Title":  "Latest posts",
		"Page":   page,
		"Groups": loadGroups(),
	})
}

// GroupPosts - 分组页 /group/:slug/，只列出该分组下的帖子
func (h *PostHandler) GroupPosts(c *gin.Context) {
	slug := c.Param("slug")

	var group models.Group
	if err := db.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		RenderNotFound(c, "Group not found")
		return
	}

	var posts []models.Post
	db.DB.Preload("Author").Preload("Group").
		Where("group_id = ?", group.ID).
		Order("created_at DESC, id DESC").
		Find(&posts)

	fillCommentCounts(posts)
	page := utils.Paginate(posts, pageNumber(c), utils.PerPage)

	Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Title":  group.Title,
		"Group":  group,
		"Page":   page,
		"Groups": loadGroups(),
	})
}

// Profile - 作者主页 /profile/:username/
func (h *PostHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderNotFound(c, "User not found")
		return
	}

	var posts []models.Post
	db.DB.Preload("Author").Preload("Group").
		Where("author_id = ?", author.ID).
		Order("created_at DESC, id DESC").
		Find(&posts)

	fillCommentCounts(posts)
	page := utils.Paginate(posts, pageNumber(c), utils.PerPage)

	// Whether the viewer already follows this author; anonymous viewers never do.
	following := false
	if viewer := currentUser(c); viewer != nil {
		var count int64
		db.DB.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", viewer.ID, author.ID).
			Count(&count)
		following = count > 0
	}

	var followerCount, followingCount int64
	db.DB.Model(&models.Follow{}).Where("author_id = ?", author.ID).Count(&followerCount)
	db.DB.Model(&models.Follow{}).Where("user_id = ?", author.ID).Count(&followingCount)

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":          author.Username,
		"Author":         author,
		"Page":           page,
		"Following":      following,
		"FollowerCount":  followerCount,
		"FollowingCount": followingCount,
	})
}

// renderDetail assembles the detail page; AddComment reuses it to redisplay
// the comment form with validation errors.
func renderDetail(c *gin.Context, post models.Post, code int, errs forms.Errors, commentText string) {
	var comments []models.Comment
	db.DB.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments)

	Render(c, code, "posts/post_detail.html", gin.H{
		"Title":       post.Text,
		"Post":        post,
		"PostHTML":    utils.RenderMarkdown(post.Text),
		"Comments":    comments,
		"Errors":      errs,
		"CommentText": commentText,
	})
}

// Detail - 帖子详情页 /posts/:id/，评论按时间正序
func (h *PostHandler) Detail(c *gin.Context) {
	var post models.Post
	if err := db.DB.Preload("Author").Preload("Group").First(&post, c.Param("id")).Error; err != nil {
		RenderNotFound(c, "Post not found")
		return
	}

	renderDetail(c, post, http.StatusOK, nil, "")
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"Title":  "New post",
		"Groups": loadGroups(),
	})
}

// saveUpload stores the optional image field and returns its media-relative
// path, "" when the field was left empty.
func saveUpload(c *gin.Context) (string, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		// Plain form posts without a file field are fine.
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()
	return services.SavePostImage(file, header)
}

func (h *PostHandler) Create(c *gin.Context) {
	user := currentUser(c)

	form, errs := forms.ValidatePost(c.PostForm("text"), c.PostForm("group"))

	imagePath, err := saveUpload(c)
	if err != nil {
		errs["image"] = "Could not save the image"
	}
	form.Image = imagePath

	if len(errs) > 0 {
		Render(c, http.StatusBadRequest, "posts/create_post.html", gin.H{
			"Title":  "New post",
			"Groups": loadGroups(),
			"Errors": errs,
			"Text":   form.Text,
		})
		return
	}

	post := models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  form.GroupID,
		Image:    form.Image,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		Render(c, http.StatusInternalServerError, "posts/create_post.html", gin.H{
			"Title":  "New post",
			"Groups": loadGroups(),
			"Error":  "Could not save the post",
			"Text":   form.Text,
		})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := currentUser(c)

	var post models.Post
	if err := db.DB.First(&post, c.Param("id")).Error; err != nil {
		RenderNotFound(c, "Post not found")
		return
	}

	// Not the author: send them to the post instead, no error surfaced.
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, "/posts/"+strconv.Itoa(int(post.ID))+"/")
		return
	}

	Render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"Title":  "Edit post",
		"Groups": loadGroups(),
		"Post":   post,
		"Text":   post.Text,
		"IsEdit": true,
	})
}

func (h *PostHandler) Edit(c *gin.Context) {
	user := currentUser(c)

	var post models.Post
	if err := db.DB.First(&post, c.Param("id")).Error; err != nil {
		RenderNotFound(c, "Post not found")
		return
	}

	detailPath := "/posts/" + strconv.Itoa(int(post.ID)) + "/"
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, detailPath)
		return
	}

	form, errs := forms.ValidatePost(c.PostForm("text"), c.PostForm("group"))

	imagePath, err := saveUpload(c)
	if err != nil {
		errs["image"] = "Could not save the image"
	}

	if len(errs) > 0 {
		Render(c, http.StatusBadRequest, "posts/create_post.html", gin.H{
			"Title":  "Edit post",
			"Groups": loadGroups(),
			"Post":   post,
			"Errors": errs,
			"Text":   form.Text,
			"IsEdit": true,
		})
		return
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	if imagePath != "" {
		post.Image = imagePath
	}

	// Select keeps CreatedAt untouched and still allows clearing the group.
	if err := db.DB.Model(&post).Select("Text", "GroupID", "Image").
		Updates(models.Post{Text: post.Text, GroupID: post.GroupID, Image: post.Image}).Error; err != nil {
		Render(c, http.StatusInternalServerError, "posts/create_post.html", gin.H{
			"Title":  "Edit post",
			"Groups": loadGroups(),
			"Post":   post,
			"Error":  "Could not save the post",
			"Text":   form.Text,
			"IsEdit": true,
		})
		return
	}

	c.Redirect(http.StatusFound, detailPath)
}

// AddComment - 提交评论。校验失败时带错误重新渲染详情页，成功后重定向回详情页。
func (h *PostHandler) AddComment(c *gin.Context) {
	user := currentUser(c)

	var post models.Post
	if err := db.DB.Preload("Author").Preload("Group").First(&post, c.Param("id")).Error; err != nil {
		RenderNotFound(c, "Post not found")
		return
	}

	form, errs := forms.ValidateComment(c.PostForm("text"))
	if len(errs) > 0 {
		renderDetail(c, post, http.StatusBadRequest, errs, form.Text)
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Text:     form.Text,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		renderDetail(c, post, http.StatusInternalServerError, forms.Errors{"text": "Could not save the comment"}, form.Text)
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+strconv.Itoa(int(post.ID))+"/")
}
