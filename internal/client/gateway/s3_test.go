package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raidellg/blocnotes/internal/client/models"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey(models.BucketImages, "u1", "b1+photo.jpg")
	assert.Equal(t, "images/u1/b1+photo.jpg", key)
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		name     string
		bucket   models.Bucket
		filename string
		want     string
	}{
		{"jpg", models.BucketImages, "b1+photo.jpg", "image/jpeg"},
		{"jpeg", models.BucketImages, "b1+photo.JPEG", "image/jpeg"},
		{"png", models.BucketImages, "b1+shot.png", "image/png"},
		{"webp", models.BucketImages, "b1+pic.webp", "image/webp"},
		{"image no ext", models.BucketImages, "b1+blob", "application/octet-stream"},
		{"mp3 default", models.BucketAudios, "b2+rec.mp3", "audio/mpeg"},
		{"audio no ext", models.BucketAudios, "b2+rec", "audio/mpeg"},
		{"wav", models.BucketAudios, "b2+rec.wav", "audio/wav"},
		{"ogg", models.BucketAudios, "b2+rec.ogg", "audio/ogg"},
		{"aac", models.BucketAudios, "b2+rec.aac", "audio/aac"},
		{"m4a", models.BucketAudios, "b2+rec.m4a", "audio/mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentTypeFor(tt.bucket, tt.filename))
		})
	}
}
