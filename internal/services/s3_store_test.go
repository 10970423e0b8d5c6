package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Store_PresignGet(t *testing.T) {
	store, err := NewS3Store(testStorageConfig("s3", "127.0.0.1:9000"))
	require.NoError(t, err)

	u, err := store.Presign(context.Background(), PresignRequest{
		Method:  http.MethodGet,
		Bucket:  "files",
		Key:     "a/b.txt",
		Expires: 30 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/files/a/b.txt", u.Path)
	assert.Equal(t, "30", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestS3Store_PresignPut(t *testing.T) {
	store, err := NewS3Store(testStorageConfig("s3", "127.0.0.1:9000"))
	require.NoError(t, err)

	u, err := store.Presign(context.Background(), PresignRequest{
		Method:      http.MethodPut,
		Bucket:      "files",
		Key:         "upload.png",
		ContentType: "image/png",
		Expires:     time.Hour,
	})
	require.NoError(t, err)

	assert.Equal(t, "/files/upload.png", u.Path)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
}

func TestS3Store_ListObjects(t *testing.T) {
	srv := newListServer(t, listBucketXML)
	store, err := NewS3Store(testStorageConfig("s3", srv.URL))
	require.NoError(t, err)

	objects, err := store.ListObjects(context.Background(), "files")
	require.NoError(t, err)

	want := expectedListing()
	require.Len(t, objects, len(want))
	for i, w := range want {
		assert.Equal(t, w.key, objects[i].Key)
		assert.Equal(t, w.size, objects[i].Size)
		assert.True(t, w.mod.Equal(objects[i].LastModified), "lastModified of %s", w.key)
	}
}
