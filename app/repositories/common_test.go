package repositories

import (
	"os"
	"testing"
	"time"

	"portfolio/app/models"

	"github.com/stretchr/testify/assert"
)

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func TestPostKey(t *testing.T) {
	assert.Equal(t, []byte("post:/hello-world"), postKey("/hello-world"))
}

func TestMarshalEntity(t *testing.T) {
	t.Run("round trip post", func(t *testing.T) {
		post := &models.Post{
			ID:          "/a.md",
			Title:       "A",
			Date:        time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			Slug:        "/a",
			Description: "about a",
		}

		data, err := marshalEntity(post)
		assert.NoError(t, err)

		var got models.Post
		assert.NoError(t, unmarshalEntity(data, &got))
		assert.Equal(t, *post, got)
	})

	t.Run("unmarshal invalid JSON", func(t *testing.T) {
		var got models.Post
		err := unmarshalEntity([]byte("{invalid"), &got)
		assert.ErrorContains(t, err, "failed to unmarshal entity")
	})

	t.Run("marshal unsupported value", func(t *testing.T) {
		_, err := marshalEntity(make(chan int))
		assert.ErrorContains(t, err, "failed to marshal entity")
	})
}
