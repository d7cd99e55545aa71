package services

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"portfolio/app/models"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// staticRoutes are listed ahead of the posts, dated today.
var staticRoutes = []string{"", "/posts"}

// SitemapEntry is one URL of the sitemap.
type SitemapEntry struct {
	URL          string `xml:"loc" json:"url"`
	LastModified string `xml:"lastmod" json:"lastModified"`
}

type urlSet struct {
	XMLName xml.Name       `xml:"urlset"`
	NS      string         `xml:"xmlns,attr"`
	URLs    []SitemapEntry `xml:"url"`
}

// SitemapService lists the crawlable URLs of the site.
type SitemapService struct {
	site models.SiteConfig
	now  func() time.Time
}

// NewSitemapService creates a SitemapService for site.
func NewSitemapService(site models.SiteConfig) *SitemapService {
	return &SitemapService{site: site, now: time.Now}
}

// Entries returns the static routes followed by one entry per post.
func (s *SitemapService) Entries(posts []*models.Post) []SitemapEntry {
	today := ISODate(s.now().UTC())
	entries := make([]SitemapEntry, 0, len(staticRoutes)+len(posts))
	for _, route := range staticRoutes {
		entries = append(entries, SitemapEntry{URL: s.site.URL + route, LastModified: today})
	}
	for _, p := range posts {
		entries = append(entries, SitemapEntry{URL: PostURL(s.site, p), LastModified: ISODate(p.Date)})
	}
	return entries
}

// XML serializes entries as a sitemaps.org urlset.
func (s *SitemapService) XML(entries []SitemapEntry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(urlSet{NS: sitemapNS, URLs: entries}); err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return buf.Bytes(), nil
}
