package helper

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"kreditku_backend/internals/configs"
)

// OSSStore menyimpan foto order ke Alibaba Cloud OSS.
type OSSStore struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	ep = strings.TrimPrefix(ep, "https://")
	ep = strings.TrimPrefix(ep, "http://")
	return strings.TrimRight(ep, "/")
}

func NewOSSStore(endpoint, accessKey, secretKey, bucketName, prefix string) (*OSSStore, error) {
	endpoint = normalizeEndpoint(endpoint)
	if endpoint == "" || accessKey == "" || secretKey == "" || bucketName == "" {
		return nil, fmt.Errorf("konfigurasi OSS tidak lengkap")
	}
	client, err := oss.New("https://"+endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}
	return &OSSStore{
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

func (s *OSSStore) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + "/" + key
}

// PublicURL: https://<bucket>.<endpoint>/<key>
func (s *OSSStore) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, s.Endpoint, key)
}

func (s *OSSStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	objKey := s.objectKey(key)
	err := s.Bucket.PutObject(objKey, bytes.NewReader(data),
		oss.ContentType("image/webp"),
		oss.CacheControl("public, max-age=31536000, immutable"),
		oss.WithContext(ctx),
	)
	if err != nil {
		return "", fmt.Errorf("upload OSS gagal: %w", err)
	}
	return s.PublicURL(objKey), nil
}

// NewFileStoreFromEnv: STORAGE_DRIVER=oss pakai ALI_OSS_*, selain itu disk lokal.
func NewFileStoreFromEnv() (FileStore, error) {
	if strings.EqualFold(configs.GetEnv("STORAGE_DRIVER", "local"), "oss") {
		return NewOSSStore(
			configs.GetEnv("ALI_OSS_ENDPOINT"),
			configs.GetEnv("ALI_OSS_ACCESS_KEY"),
			configs.GetEnv("ALI_OSS_SECRET_KEY"),
			configs.GetEnv("ALI_OSS_BUCKET"),
			configs.GetEnv("ALI_OSS_PREFIX", "kreditku"),
		)
	}
	return NewLocalStore(configs.GetEnv("UPLOAD_DIR", "./uploads"), configs.GetEnv("UPLOAD_BASE_URL", "/uploads")), nil
}
