package blobstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3Client_StaticCredentialsAndEndpoint(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })

	var gotOpts s3.Options
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-central-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "AK", creds.AccessKeyID)
		assert.Equal(t, "SK", creds.SecretAccessKey)
		return aws.Config{Region: lo.Region}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&gotOpts)
		}
		return &s3.Client{}
	}

	c := &config.Config{S3Region: "eu-central-1", S3AccessKey: "AK", S3SecretKey: "SK", S3BaseEndpoint: "http://minio:9000"}
	client, err := NewS3Client(context.Background(), c)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "http://minio:9000", aws.ToString(gotOpts.BaseEndpoint))
	assert.True(t, gotOpts.UsePathStyle)
}

func TestNewS3Client_DefaultChain(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Nil(t, lo.Credentials)
		return aws.Config{}, errors.New("no creds")
	}

	_, err := NewS3Client(context.Background(), &config.Config{S3Region: "us-east-1"})
	assert.Error(t, err)
}

func TestS3Mirror_GetMissingIsNotFound(t *testing.T) {
	m := NewS3Mirror(newFakeS3(), "bucket")

	_, err := m.Get(context.Background(), "bucket", "files/missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestS3Mirror_PutMissingLocalFile(t *testing.T) {
	m := NewS3Mirror(newFakeS3(), "bucket")

	err := m.Put(context.Background(), "/nope/nothing", "files/k", "")
	assert.Error(t, err)
}
