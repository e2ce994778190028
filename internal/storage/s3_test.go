package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchcms/config"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDetectImage(t *testing.T) {
	ct, ext, err := DetectImage(pngHeader, "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, ".png", ext)

	_, ext, err = DetectImage(pngHeader, "Portrait.PNG")
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	_, _, err = DetectImage(nil, "a.png")
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, _, err = DetectImage([]byte("hello world"), "a.txt")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://photos.s3.eu-west-1.amazonaws.com",
		PublicBaseURL(config.S3Config{Bucket: "photos", Region: "eu-west-1"}))
	assert.Equal(t, "http://localhost:9000/photos",
		PublicBaseURL(config.S3Config{Bucket: "photos", PublicURL: "http://localhost:9000/photos/"}))
}

func TestObjectName(t *testing.T) {
	base := "http://localhost:9000/photos"

	name, err := ObjectName(base, base+"/counsellors/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "counsellors/abc.png", name)

	_, err = ObjectName(base, "https://elsewhere.example/counsellors/abc.png")
	assert.ErrorIs(t, err, ErrForeignURL)

	_, err = ObjectName(base, base+"/")
	assert.ErrorIs(t, err, ErrForeignURL)
}
