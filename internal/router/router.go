package router

import (
	"os"
	"time"

	"quill/internal/cache"
	"quill/internal/handlers"
	"quill/internal/middleware"
	"quill/internal/utils"

	"github.com/gin-gonic/gin"
)

// IndexCacheTTL reads the index-page cache lifetime from the environment,
// in seconds. The Django-era default is 20.
func IndexCacheTTL() time.Duration {
	if v := os.Getenv("INDEX_CACHE_TTL"); v != "" {
		if secs := utils.StringToInt(v); secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 20 * time.Second
}

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	followHandler := handlers.NewFollowHandler()
	aboutHandler := handlers.NewAboutHandler()

	// 公共路由 (Public Routes)
	// 首页整页缓存，固定 key，不分用户
	r.GET("/", middleware.CachePage(cache.Pages(), cache.IndexKey, IndexCacheTTL()), postHandler.Index)
	r.GET("/group/:slug/", postHandler.GroupPosts)       // 分组下的帖子列表
	r.GET("/profile/:username/", postHandler.Profile)    // 作者主页
	r.GET("/posts/:id/", postHandler.Detail)             // 帖子详情页

	r.GET("/about/author/", aboutHandler.Author)
	r.GET("/about/tech/", aboutHandler.Tech)

	r.GET("/auth/signup", authHandler.ShowSignup) // 注册页面
	r.POST("/auth/signup", authHandler.Signup)    // 提交注册
	r.GET("/auth/login", authHandler.ShowLogin)   // 登录页面
	r.POST("/auth/login", authHandler.Login)      // 提交登录
	r.GET("/auth/logout", authHandler.Logout)     // 退出登录

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create/", postHandler.ShowCreate)          // 发帖页面
		authorized.POST("/create/", postHandler.Create)             // 提交发帖
		authorized.GET("/posts/:id/edit/", postHandler.ShowEdit)    // 编辑页面（仅作者）
		authorized.POST("/posts/:id/edit/", postHandler.Edit)       // 提交编辑
		authorized.POST("/posts/:id/comment/", postHandler.AddComment)

		authorized.GET("/follow/", followHandler.Feed)                        // 关注流
		authorized.GET("/profile/:username/follow/", followHandler.Follow)    // 关注
		authorized.GET("/profile/:username/unfollow/", followHandler.Unfollow) // 取消关注
	}

	// Custom not-found page for everything unrouted
	r.NoRoute(func(c *gin.Context) {
		handlers.RenderNotFound(c, "Page not found")
	})
}
