package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/damacus/bucket-gate/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listBucketXML = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>files</Name>
  <Prefix></Prefix>
  <KeyCount>2</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>false</IsTruncated>
  <Contents>
    <Key>a/b.txt</Key>
    <LastModified>2024-05-01T10:00:00.000Z</LastModified>
    <ETag>"0cc175b9c0f1b6a831c399e269772661"</ETag>
    <Size>12</Size>
    <StorageClass>STANDARD</StorageClass>
  </Contents>
  <Contents>
    <Key>report.pdf</Key>
    <LastModified>2024-06-02T08:30:00.000Z</LastModified>
    <ETag>"92eb5ffee6ae2fec3ad71c777531578f"</ETag>
    <Size>2048</Size>
    <StorageClass>STANDARD</StorageClass>
  </Contents>
</ListBucketResult>`

const emptyBucketXML = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>files</Name>
  <Prefix></Prefix>
  <KeyCount>0</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>false</IsTruncated>
</ListBucketResult>`

// newListServer serves a fixed ListObjectsV2 response for bucket "files".
func newListServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Query().Get("list-type") != "2" {
			w.WriteHeader(http.StatusNotImplemented)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testStorageConfig(driver, endpoint string) config.StorageConfig {
	insecure := false
	return config.StorageConfig{
		Driver:          driver,
		Endpoint:        endpoint,
		Region:          "auto",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
		Bucket:          "files",
		UseSSL:          &insecure,
	}
}

func expectedListing() []struct {
	key  string
	size int64
	mod  time.Time
} {
	return []struct {
		key  string
		size int64
		mod  time.Time
	}{
		{"a/b.txt", 12, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"report.pdf", 2048, time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)},
	}
}

func TestShouldUseSSL_Localhost(t *testing.T) {
	tests := []struct {
		endpoint string
		want     bool
	}{
		{"localhost:9000", false},
		{"127.0.0.1:9000", false},
		{"minio:9000", false},
		{"acct.r2.cloudflarestorage.com", true},
		{"s3.amazonaws.com", true},
		{"minio.example.com:9000", true},
		{"localhost:9001", true}, // Different port
		{"192.168.1.100:9000", true},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			got := shouldUseSSL(tt.endpoint)
			if got != tt.want {
				t.Errorf("shouldUseSSL(%q) = %v, want %v", tt.endpoint, got, tt.want)
			}
		})
	}
}

func TestUseSSL_Overrides(t *testing.T) {
	secure := true
	insecure := false

	assert.True(t, useSSL(config.StorageConfig{Endpoint: "localhost:9000", UseSSL: &secure}))
	assert.False(t, useSSL(config.StorageConfig{Endpoint: "s3.amazonaws.com", UseSSL: &insecure}))
	assert.False(t, useSSL(config.StorageConfig{Endpoint: "http://storage.example.com"}))
	assert.True(t, useSSL(config.StorageConfig{AccountID: "acct"}))
}

func TestValidatePresign(t *testing.T) {
	ok := PresignRequest{Method: http.MethodGet, Bucket: "files", Key: "a.txt", Expires: time.Minute}
	assert.NoError(t, validatePresign(ok))

	bad := ok
	bad.Method = http.MethodDelete
	assert.Error(t, validatePresign(bad))

	bad = ok
	bad.Key = ""
	assert.Error(t, validatePresign(bad))

	bad = ok
	bad.Expires = 0
	assert.Error(t, validatePresign(bad))
}

func TestNewObjectStore_SelectsDriver(t *testing.T) {
	store, err := NewObjectStore(testStorageConfig("minio", "localhost:9000"))
	require.NoError(t, err)
	assert.IsType(t, &MinioStore{}, store)

	store, err = NewObjectStore(testStorageConfig("s3", "localhost:9000"))
	require.NoError(t, err)
	assert.IsType(t, &S3Store{}, store)

	_, err = NewObjectStore(testStorageConfig("gcs", "localhost:9000"))
	assert.Error(t, err)
}

func TestDrivers_Implement_Interface(t *testing.T) {
	var _ ObjectStore = (*MinioStore)(nil)
	var _ ObjectStore = (*S3Store)(nil)
}
