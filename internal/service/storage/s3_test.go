package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	getIn  *s3.GetObjectInput
	putIn  *s3.PutObjectInput
	body   string
	getErr error
	putErr error
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.getIn = params
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putIn = params
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func TestGetObject(t *testing.T) {
	client := &fakeS3{body: "col\nval\n"}
	store := &S3Store{client: client}

	data, err := store.GetObject(context.Background(), "results", "q1.csv")
	require.NoError(t, err)
	assert.Equal(t, "col\nval\n", string(data))
	assert.Equal(t, "results", *client.getIn.Bucket)
	assert.Equal(t, "q1.csv", *client.getIn.Key)
}

func TestGetObject_Error(t *testing.T) {
	store := &S3Store{client: &fakeS3{getErr: errors.New("NoSuchKey")}}

	_, err := store.GetObject(context.Background(), "results", "missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://results/missing.csv")
}

func TestPutObject(t *testing.T) {
	client := &fakeS3{}
	store := &S3Store{client: client}

	require.NoError(t, store.PutObject(context.Background(), "staging", "billing/billing_pagina_0.json", []byte(`{"id":"1"}`+"\n")))

	assert.Equal(t, "staging", *client.putIn.Bucket)
	assert.Equal(t, "billing/billing_pagina_0.json", *client.putIn.Key)
	sent, err := io.ReadAll(client.putIn.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`+"\n", string(sent))
}

func TestPutObject_Error(t *testing.T) {
	store := &S3Store{client: &fakeS3{putErr: errors.New("AccessDenied")}}

	err := store.PutObject(context.Background(), "staging", "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://staging/k")
}
