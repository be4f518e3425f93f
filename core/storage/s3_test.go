package storage_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"room-booking-api/core/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	bucket, key, contentType string
	body                     []byte
	err                      error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	f.contentType = aws.ToString(in.ContentType)
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestObjectStore_PutJSON(t *testing.T) {
	fake := &fakePutter{}
	store := storage.NewObjectStore(fake, "reports")

	err := store.PutJSON(context.Background(), "a/b.json", map[string]int{"count": 2})
	require.NoError(t, err)

	assert.Equal(t, "reports", fake.bucket)
	assert.Equal(t, "a/b.json", fake.key)
	assert.Equal(t, "application/json", fake.contentType)
	assert.JSONEq(t, `{"count":2}`, string(fake.body))
}

func TestObjectStore_PutJSON_Error(t *testing.T) {
	store := storage.NewObjectStore(&fakePutter{err: errors.New("boom")}, "reports")

	err := store.PutJSON(context.Background(), "x.json", []int{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://reports/x.json")
}
