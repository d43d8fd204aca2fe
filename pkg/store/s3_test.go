package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskd/pkg/store"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadBucketOutput), args.Error(1)
}

func newTestS3Store(client store.S3Client) *store.S3Store {
	return store.NewS3Store(client, "task-bucket", "tasks",
		store.WithS3Clock(func() time.Time { return time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC) }),
		store.WithS3IDGenerator(func() string { return "0b7c5f7e-1c1a-4c5e-9a61-6a4f1f3c2d10" }),
	)
}

func TestS3Store_Store(t *testing.T) {
	t.Parallel()

	t.Run("puts payload under dated key", func(t *testing.T) {
		t.Parallel()

		var captured *s3.PutObjectInput
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*s3.PutObjectInput) }).
			Return(&s3.PutObjectOutput{}, nil).Once()

		require.NoError(t, newTestS3Store(client).Store(context.Background(), json.RawMessage(`{"a":1}`)))
		require.NotNil(t, captured)

		assert.Equal(t, "task-bucket", aws.ToString(captured.Bucket))
		assert.Equal(t, "tasks/2026-10-16/0b7c5f7e-1c1a-4c5e-9a61-6a4f1f3c2d10.json", aws.ToString(captured.Key))
		assert.Equal(t, "application/json", aws.ToString(captured.ContentType))
		assert.Equal(t, int64(7), aws.ToInt64(captured.ContentLength))

		body, err := io.ReadAll(captured.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(body))
		client.AssertExpectations(t)
	})

	t.Run("classifies errors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			err  error
			want error
		}{
			{"missing bucket", &types.NoSuchBucket{}, store.ErrBucketNotFound},
			{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, store.ErrAccessDenied},
			{"throttled", &smithy.GenericAPIError{Code: "SlowDown"}, store.ErrServiceUnavailable},
			{"timeout", context.DeadlineExceeded, store.ErrOperationTimeout},
			{"canceled", context.Canceled, store.ErrOperationCanceled},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				client := new(MockS3Client)
				client.On("PutObject", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

				err := newTestS3Store(client).Store(context.Background(), json.RawMessage(`1`))
				assert.ErrorIs(t, err, store.ErrStoreFailed)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("unknown api error keeps the cause", func(t *testing.T) {
		t.Parallel()

		apiErr := &smithy.GenericAPIError{Code: "InternalError", Message: "we encountered an internal error"}
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything).Return(nil, apiErr).Once()

		err := newTestS3Store(client).Store(context.Background(), json.RawMessage(`1`))
		var got smithy.APIError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, "InternalError", got.ErrorCode())
	})
}

func TestS3Store_Healthcheck(t *testing.T) {
	t.Parallel()

	client := new(MockS3Client)
	client.On("HeadBucket", mock.Anything, mock.Anything).Return(&s3.HeadBucketOutput{}, nil).Once()
	client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, &smithy.GenericAPIError{Code: "NotFound"}).Once()

	s := newTestS3Store(client)
	require.NoError(t, s.Healthcheck(context.Background()))

	err := s.Healthcheck(context.Background())
	assert.ErrorIs(t, err, store.ErrHealthcheckFailed)
	assert.ErrorIs(t, err, store.ErrBucketNotFound)
	assert.NoError(t, s.Close(context.Background()))
	client.AssertExpectations(t)
}

func TestNewS3Client_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := store.NewS3Client(context.Background(), store.S3Config{Region: "eu-west-1"})
	assert.ErrorIs(t, err, store.ErrInvalidConfig)
}
