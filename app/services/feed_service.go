package services

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"portfolio/app/models"
)

const (
	rssVersion  = "2.0"
	atomNS      = "http://www.w3.org/2005/Atom"
	generator   = "portfolio"
	defaultLang = "en"
)

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Self          atomLink  `xml:"atom:link"`
	Language      string    `xml:"language"`
	Generator     string    `xml:"generator"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Description string  `xml:"description,omitempty"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	PubDate     string  `xml:"pubDate"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// FeedService builds the RSS feed for the site.
type FeedService struct {
	site models.SiteConfig
}

// NewFeedService creates a FeedService for site.
func NewFeedService(site models.SiteConfig) *FeedService {
	return &FeedService{site: site}
}

// FeedURL is the absolute URL of the feed itself.
func (s *FeedService) FeedURL() string {
	return s.site.URL + "/rss.xml"
}

// PostURL is the absolute URL of a post page.
func PostURL(site models.SiteConfig, p *models.Post) string {
	return site.URL + "/posts" + p.Slug
}

// RSS serializes posts, in the given order, as an RSS 2.0 document.
func (s *FeedService) RSS(posts []*models.Post) ([]byte, error) {
	lang := s.site.Language
	if lang == "" {
		lang = defaultLang
	}

	doc := rssDocument{
		Version: rssVersion,
		AtomNS:  atomNS,
		Channel: rssChannel{
			Title:       s.site.Name,
			Link:        s.site.URL,
			Description: s.site.Description,
			Self:        atomLink{Href: s.FeedURL(), Rel: "self", Type: "application/rss+xml"},
			Language:    lang,
			Generator:   generator,
			Items:       make([]rssItem, 0, len(posts)),
		},
	}

	// lastBuildDate is the newest post date: the same posts give the same bytes.
	var newest time.Time
	for _, p := range posts {
		if p.Date.After(newest) {
			newest = p.Date
		}
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       p.Title,
			Description: p.Description,
			Link:        PostURL(s.site, p),
			GUID:        rssGUID{Value: s.site.URL + "/posts" + p.ID},
			PubDate:     p.Date.Format(time.RFC1123Z),
		})
	}

	if !newest.IsZero() {
		doc.Channel.LastBuildDate = newest.Format(time.RFC1123Z)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode feed: %w", err)
	}
	return buf.Bytes(), nil
}
