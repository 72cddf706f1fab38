package router

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"quill/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// LoadTemplates assembles each view with the shared layouts and includes.
// The handler tests load the same templates the server serves.
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			}
			return timeVal.Format("2006-01-02")
		},
		"markdown": utils.RenderMarkdown,
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
		"truncate": func(s string, n int) string {
			runes := []rune(s)
			if len(runes) <= n {
				return s
			}
			return string(runes[:n]) + "..."
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Posts
	r.AddFromFilesFuncs("posts/index.html", funcMap, assemble(templatesDir+"/views/posts/index.html")...)
	r.AddFromFilesFuncs("posts/group_list.html", funcMap, assemble(templatesDir+"/views/posts/group_list.html")...)
	r.AddFromFilesFuncs("posts/profile.html", funcMap, assemble(templatesDir+"/views/posts/profile.html")...)
	r.AddFromFilesFuncs("posts/post_detail.html", funcMap, assemble(templatesDir+"/views/posts/post_detail.html")...)
	r.AddFromFilesFuncs("posts/create_post.html", funcMap, assemble(templatesDir+"/views/posts/create_post.html")...)
	r.AddFromFilesFuncs("posts/follow.html", funcMap, assemble(templatesDir+"/views/posts/follow.html")...)

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/signup.html", funcMap, assemble(templatesDir+"/views/auth/signup.html")...)

	// About
	r.AddFromFilesFuncs("about/author.html", funcMap, assemble(templatesDir+"/views/about/author.html")...)
	r.AddFromFilesFuncs("about/tech.html", funcMap, assemble(templatesDir+"/views/about/tech.html")...)

	// Error
	r.AddFromFilesFuncs("404.html", funcMap, assemble(templatesDir+"/views/404.html")...)

	return r
}
