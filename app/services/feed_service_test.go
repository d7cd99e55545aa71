package services

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"portfolio/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSite = models.SiteConfig{
	Name:        "Rayan Kazi",
	Description: "My personal website and blog",
	URL:         "https://example.com",
}

type parsedFeed struct {
	Version string `xml:"version,attr"`
	Channel struct {
		// Self precedes Link so the namespaced element is not taken by the bare "link" field.
		Self struct {
			Href string `xml:"href,attr"`
			Rel  string `xml:"rel,attr"`
		} `xml:"http://www.w3.org/2005/Atom link"`
		Title       string `xml:"title"`
		Link        string `xml:"link"`
		Description string `xml:"description"`
		Language    string `xml:"language"`
		BuildDate   string `xml:"lastBuildDate"`
		Items       []struct {
			Title       string `xml:"title"`
			Description string `xml:"description"`
			Link        string `xml:"link"`
			GUID        string `xml:"guid"`
			PubDate     string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

func TestFeedServiceRSS(t *testing.T) {
	service := NewFeedService(testSite)

	posts := makePosts(3)
	posts[0].Description = "the first one"

	out, err := service.RSS(posts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), xml.Header))

	var feed parsedFeed
	require.NoError(t, xml.Unmarshal(out, &feed))

	assert.Equal(t, "2.0", feed.Version)
	assert.Equal(t, "Rayan Kazi", feed.Channel.Title)
	assert.Equal(t, "https://example.com", feed.Channel.Link)
	assert.Equal(t, "My personal website and blog", feed.Channel.Description)
	assert.Equal(t, "en", feed.Channel.Language)
	assert.Equal(t, "https://example.com/rss.xml", feed.Channel.Self.Href)
	assert.Equal(t, "self", feed.Channel.Self.Rel)
	assert.Equal(t, posts[2].Date.Format(time.RFC1123Z), feed.Channel.BuildDate)

	require.Len(t, feed.Channel.Items, len(posts))
	for i, item := range feed.Channel.Items {
		assert.Equal(t, "https://example.com/posts"+posts[i].Slug, item.Link)
		assert.Equal(t, "https://example.com/posts"+posts[i].ID, item.GUID)
		assert.Equal(t, posts[i].Title, item.Title)
		assert.Equal(t, posts[i].Date.Format(time.RFC1123Z), item.PubDate)
	}
	assert.Equal(t, "the first one", feed.Channel.Items[0].Description)
	assert.NotContains(t, string(out), "<description></description>")
}

func TestFeedServiceEmpty(t *testing.T) {
	out, err := NewFeedService(testSite).RSS(nil)
	require.NoError(t, err)

	var feed parsedFeed
	require.NoError(t, xml.Unmarshal(out, &feed))
	assert.Empty(t, feed.Channel.Items)
	assert.Empty(t, feed.Channel.BuildDate)
}

func TestFeedServiceLanguageOverride(t *testing.T) {
	site := testSite
	site.Language = "fr"
	out, err := NewFeedService(site).RSS(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<language>fr</language>")
}

func TestFeedServiceEscapesText(t *testing.T) {
	posts := makePosts(1)
	posts[0].Title = "Tips & <Tricks>"

	out, err := NewFeedService(testSite).RSS(posts)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Tips &amp; &lt;Tricks&gt;")
}
