package content

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/locus-portfolio/locus-backend/pkg/utils"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// StaticPage 前端的静态页面
type StaticPage struct {
	Path       string
	Priority   float64
	ChangeFreq string
}

// DefaultStaticPages 站点静态页面及其优先级
var DefaultStaticPages = []StaticPage{
	{Path: "", Priority: 1.0, ChangeFreq: "monthly"},
	{Path: "about", Priority: 0.8, ChangeFreq: "monthly"},
	{Path: "work", Priority: 0.9, ChangeFreq: "weekly"},
	{Path: "projects", Priority: 0.9, ChangeFreq: "weekly"},
	{Path: "photography", Priority: 0.7, ChangeFreq: "monthly"},
	{Path: "timeline", Priority: 0.6, ChangeFreq: "monthly"},
	{Path: "skillset", Priority: 0.6, ChangeFreq: "monthly"},
	{Path: "blog", Priority: 0.9, ChangeFreq: "daily"},
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// PostLister 提供文章列表
type PostLister interface {
	ListPosts() []BlogPostSummary
}

// SitemapService 生成sitemap.xml与robots.txt
type SitemapService struct {
	posts PostLister
	pages []StaticPage
	now   func() time.Time
}

// NewSitemapService 创建站点地图服务
func NewSitemapService(posts PostLister) *SitemapService {
	return &SitemapService{posts: posts, pages: DefaultStaticPages, now: time.Now}
}

// Sitemap 生成XML：静态页面（lastmod为当天）加每篇文章
func (s *SitemapService) Sitemap(baseURL string) ([]byte, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	today := utils.FormatDate(s.now())

	set := urlSet{Xmlns: sitemapNamespace}
	for _, p := range s.pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + "/" + p.Path,
			LastMod:    today,
			ChangeFreq: p.ChangeFreq,
			Priority:   formatPriority(p.Priority),
		})
	}
	if s.posts != nil {
		for _, post := range s.posts.ListPosts() {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        baseURL + "/blog/" + post.Slug,
				LastMod:    post.Date,
				ChangeFreq: "monthly",
				Priority:   formatPriority(0.7),
			})
		}
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// RobotsTxt robots.txt内容
func (s *SitemapService) RobotsTxt(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	return "User-agent: *\nAllow: /\n\n# Sitemap\nSitemap: " + baseURL + "/sitemap.xml\n"
}

func formatPriority(p float64) string {
	if p <= 0 {
		return ""
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}
