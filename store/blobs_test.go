package store

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvboard/kv"
	"kvboard/models"
)

func newBlobFixture() (*Blobs, *Posts, kv.Store) {
	mem := kv.NewMemory()
	ix := NewPostIndex(mem)
	blobs := NewBlobs(mem, ix)
	posts := NewPosts(mem, ix, blobs)
	return blobs, posts, mem
}

func upload(name, mimeType, content string) models.AttachmentUpload {
	return models.AttachmentUpload{
		Name:     name,
		MimeType: mimeType,
		Size:     int64(len(content)),
		Data:     strings.NewReader(content),
	}
}

func TestBlobs_PutGetRoundtrip(t *testing.T) {
	ctx := context.Background()
	blobs, _, _ := newBlobFixture()

	key, err := blobs.Put(ctx, "post-1", upload("pic.png", "image/png", "binary\x00bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "file:post-1:"))

	data, ok, err := blobs.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("binary\x00bytes"), data)
}

func TestBlobs_GetMissing(t *testing.T) {
	ctx := context.Background()
	blobs, _, _ := newBlobFixture()

	_, ok, err := blobs.Get(ctx, "file:nope:nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlobs_RejectsOversized(t *testing.T) {
	ctx := context.Background()
	blobs, _, _ := newBlobFixture()

	up := models.AttachmentUpload{
		Name:     "huge.bin",
		MimeType: "application/octet-stream",
		Size:     MaxBlobSize + 1,
		Data:     bytes.NewReader(nil), // size alone must reject before reading
	}
	_, err := blobs.Put(ctx, "post-1", up)

	var tooLarge *AttachmentTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "huge.bin", tooLarge.Name)
	assert.Contains(t, err.Error(), "huge.bin")
}

func TestBlobs_RejectsOversizedByActualBytes(t *testing.T) {
	ctx := context.Background()
	blobs, _, _ := newBlobFixture()

	// declared size lies; the real byte count still enforces the ceiling
	up := models.AttachmentUpload{
		Name:     "sneaky.bin",
		MimeType: "application/octet-stream",
		Size:     10,
		Data:     bytes.NewReader(make([]byte, MaxBlobSize+1)),
	}
	_, err := blobs.Put(ctx, "post-1", up)

	var tooLarge *AttachmentTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "sneaky.bin", tooLarge.Name)
}

func TestBlobs_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	blobs, _, _ := newBlobFixture()

	key, err := blobs.Put(ctx, "post-1", upload("a.txt", "text/plain", "hi"))
	require.NoError(t, err)

	require.NoError(t, blobs.Delete(ctx, key))
	_, ok, err := blobs.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, blobs.Delete(ctx, key))
}

func TestBlobs_CorruptPayloadReadsAbsent(t *testing.T) {
	ctx := context.Background()
	blobs, _, mem := newBlobFixture()

	require.NoError(t, mem.Put(ctx, "file:p:x", "%%% not base64 %%%", 0))

	_, ok, err := blobs.Get(ctx, "file:p:x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlobs_ResolveDisplayMeta(t *testing.T) {
	ctx := context.Background()
	blobs, posts, _ := newBlobFixture()

	post, err := posts.Create(ctx, "t", "x", "203.0.113.9",
		[]models.AttachmentUpload{upload("song.mp3", "audio/mpeg", "mp3data")})
	require.NoError(t, err)
	require.Len(t, post.Attachments, 1)

	meta, ok, err := blobs.ResolveDisplayMeta(ctx, post.Attachments[0].Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "song.mp3", meta.Name)
	assert.Equal(t, "audio/mpeg", meta.MimeType)
	assert.Equal(t, models.KindAudio, meta.Kind)
}

func TestBlobs_ResolveDisplayMetaScanIsBounded(t *testing.T) {
	ctx := context.Background()
	blobs, posts, _ := newBlobFixture()

	old, err := posts.Create(ctx, "old", "x", "ip",
		[]models.AttachmentUpload{upload("old.txt", "text/plain", "old")})
	require.NoError(t, err)

	// push the owning post beyond the scan window
	for i := 0; i < metaScanLimit; i++ {
		_, err := posts.Create(ctx, fmt.Sprintf("filler-%d", i), "x", "ip", nil)
		require.NoError(t, err)
	}

	_, ok, err := blobs.ResolveDisplayMeta(ctx, old.Attachments[0].Key)
	require.NoError(t, err)
	assert.False(t, ok, "meta beyond the scan window resolves to absent")

	// the blob itself is still retrievable
	_, ok, err = blobs.Get(ctx, old.Attachments[0].Key)
	require.NoError(t, err)
	assert.True(t, ok)
}
