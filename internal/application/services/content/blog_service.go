package content

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"

	apperrors "github.com/locus-portfolio/locus-backend/internal/shared/errors"
	"github.com/locus-portfolio/locus-backend/pkg/logger"
	"github.com/locus-portfolio/locus-backend/pkg/utils"
)

const (
	excerptLength  = 160
	wordsPerMinute = 200
	postExt        = ".md"
)

// FrontMatter 文章头部的YAML字段
type FrontMatter struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Author          string   `yaml:"author"`
	Date            string   `yaml:"date"`
	Tags            []string `yaml:"tags"`
	Image           string   `yaml:"image"`
	Images          []string `yaml:"images"`
	ImagesPath      string   `yaml:"imagesPath"`
	Name            string   `yaml:"name"`
	Excerpt         string   `yaml:"excerpt"`
	MetaTitle       string   `yaml:"metaTitle"`
	MetaDescription string   `yaml:"metaDescription"`
	CanonicalURL    string   `yaml:"canonicalUrl"`
	SocialImage     string   `yaml:"socialImage"`
}

// BlogPostSummary 列表页使用的文章摘要
type BlogPostSummary struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Author      string   `json:"author,omitempty"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image,omitempty"`
	Images      []string `json:"images"`
	ImagesPath  string   `json:"imagesPath,omitempty"`
	Name        string   `json:"name,omitempty"`
	Excerpt     string   `json:"excerpt"`
	ReadingTime int      `json:"readingTime"`
	SocialImage string   `json:"socialImage,omitempty"`
}

// BlogPost 完整文章，Content为渲染后的HTML
type BlogPost struct {
	BlogPostSummary
	Content         string `json:"content"`
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	CanonicalURL    string `json:"canonicalUrl,omitempty"`
}

var (
	headerPattern = regexp.MustCompile(`#{1,6}\s+`)
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.*?)\*`)
	linkPattern   = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	codePattern   = regexp.MustCompile("`(.*?)`")
)

// BlogService 读取Markdown文章
type BlogService struct {
	dir      string
	markdown goldmark.Markdown
}

// NewBlogService 创建博客服务
func NewBlogService(dir string) *BlogService {
	return &BlogService{
		dir: dir,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// ListPosts 返回全部文章摘要，按日期倒序；目录不存在时返回空列表
func (s *BlogService) ListPosts() []BlogPostSummary {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		logger.Warn("Blog directory not readable", "dir", s.dir, "error", err)
		return []BlogPostSummary{}
	}

	posts := make([]BlogPostSummary, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), postExt) {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), postExt)
		fm, body, err := s.readPost(slug)
		if err != nil {
			logger.Warn("Skipping unreadable blog post", "slug", slug, "error", err)
			continue
		}
		posts = append(posts, summarize(slug, fm, body))
	}

	slices.SortStableFunc(posts, func(a, b BlogPostSummary) int {
		return utils.ParseTimeOrZero(b.Date).Compare(utils.ParseTimeOrZero(a.Date))
	})
	return posts
}

// GetPost 按slug读取完整文章
func (s *BlogService) GetPost(slug string) (*BlogPost, error) {
	if !validSlug(slug) {
		return nil, postNotFound(slug)
	}

	fm, body, err := s.readPost(slug)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, postNotFound(slug)
		}
		return nil, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInternalError,
			"error reading blog post '"+slug+"'", err)
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &buf); err != nil {
		return nil, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInternalError,
			"error rendering blog post '"+slug+"'", err)
	}

	summary := summarize(slug, fm, body)
	return &BlogPost{
		BlogPostSummary: summary,
		Content:         buf.String(),
		MetaTitle:       firstNonEmpty(fm.MetaTitle, fm.Title),
		MetaDescription: firstNonEmpty(fm.MetaDescription, fm.Description, summary.Excerpt),
		CanonicalURL:    fm.CanonicalURL,
	}, nil
}

// PostsByTag 按标签过滤，不区分大小写
func (s *BlogService) PostsByTag(tag string) []BlogPostSummary {
	out := []BlogPostSummary{}
	for _, p := range s.ListPosts() {
		if slices.ContainsFunc(p.Tags, func(t string) bool { return strings.EqualFold(t, tag) }) {
			out = append(out, p)
		}
	}
	return out
}

// Tags 全部标签，去重后排序
func (s *BlogService) Tags() []string {
	seen := map[string]struct{}{}
	tags := []string{}
	for _, p := range s.ListPosts() {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	slices.Sort(tags)
	return tags
}

func (s *BlogService) readPost(slug string) (FrontMatter, string, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, slug+postExt))
	if err != nil {
		return FrontMatter{}, "", err
	}
	return ParseFrontMatter(string(raw))
}

// ParseFrontMatter 拆分"---"包围的YAML头部与正文，没有头部时整篇都是正文
func ParseFrontMatter(raw string) (FrontMatter, string, error) {
	var fm FrontMatter
	text := strings.TrimPrefix(raw, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return fm, text, nil
	}

	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return fm, text, nil
	}
	header := rest[:end]
	body := rest[end+len("\n---"):]
	// 结束标记所在行的剩余部分
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}

	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, body, err
	}
	return fm, body, nil
}

func summarize(slug string, fm FrontMatter, body string) BlogPostSummary {
	excerpt := fm.Excerpt
	if excerpt == "" {
		excerpt = Excerpt(body, excerptLength)
	}
	tags := fm.Tags
	if tags == nil {
		tags = []string{}
	}
	images := fm.Images
	if images == nil {
		images = []string{}
	}

	return BlogPostSummary{
		Slug:        slug,
		Title:       firstNonEmpty(fm.Title, slug),
		Description: firstNonEmpty(fm.Description, excerpt),
		Author:      fm.Author,
		Date:        fm.Date,
		Tags:        tags,
		Image:       fm.Image,
		Images:      images,
		ImagesPath:  fm.ImagesPath,
		Name:        fm.Name,
		Excerpt:     excerpt,
		ReadingTime: ReadingTime(body),
		SocialImage: firstNonEmpty(fm.SocialImage, fm.Image),
	}
}

// Excerpt 去除Markdown标记后截取maxLen个字符，在最后一个空格处截断并追加"..."
func Excerpt(markdown string, maxLen int) string {
	text := headerPattern.ReplaceAllString(markdown, "")
	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = codePattern.ReplaceAllString(text, "$1")
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))

	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	truncated := string([]rune(text)[:maxLen])
	if i := strings.LastIndex(truncated, " "); i > 0 {
		return truncated[:i] + "..."
	}
	return truncated + "..."
}

// ReadingTime 按每分钟200词估算阅读分钟数
func ReadingTime(markdown string) int {
	words := len(strings.Fields(markdown))
	// 空文章按1分钟计
	if words == 0 {
		words = 1
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

func validSlug(slug string) bool {
	return slug != "" && slug != "." && slug != ".." && !strings.ContainsAny(slug, `/\`)
}

func postNotFound(slug string) error {
	return apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodeNotFound,
		"blog post '"+slug+"' not found", map[string]any{"slug": slug})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
