package router

import (
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"time"

	"vantage/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

var funcMap = template.FuncMap{
	"dict": func(values ...interface{}) (map[string]interface{}, error) {
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("invalid dict call")
		}
		dict := make(map[string]interface{}, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict keys must be strings")
			}
			dict[key] = values[i+1]
		}
		return dict, nil
	},
	"add": func(a, b int) int {
		return a + b
	},
	"timeAgo": timeAgo,
	"markdown": func(s string) template.HTML {
		return utils.RenderComment(s)
	},
	"excerpt": func(s string) string {
		return utils.Excerpt(s, 180)
	},
	"urlquery": func(s string) string {
		return url.QueryEscape(s)
	},
}

func timeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%dd ago", seconds/86400)
	case seconds < 31536000:
		return fmt.Sprintf("%dmo ago", seconds/2592000)
	}
	return fmt.Sprintf("%dy ago", seconds/31536000)
}

// LoadTemplates 每个页面 = 布局 + 公共片段 + 视图
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

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	r.AddFromFilesFuncs("idea/list.html", funcMap, assemble(templatesDir+"/views/idea/list.html")...)
	r.AddFromFilesFuncs("idea/detail.html", funcMap, assemble(templatesDir+"/views/idea/detail.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
