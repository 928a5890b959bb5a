package bucket

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Bucket guarda as fotos tiradas pelos promotores. A chave segue o
// layout promoters/<campanha>/<timestamp>-<nome>.
type Bucket struct {
	client *s3.S3
	bucket string
}

func NewBucket(accessKeyID, secretAccessKey, region, bucketName string) (*Bucket, error) {
	if accessKeyID == "" || secretAccessKey == "" || region == "" || bucketName == "" {
		return nil, fmt.Errorf("AWS credentials, region or bucket are not set")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKeyID, secretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %v", err)
	}

	return &Bucket{client: s3.New(sess), bucket: bucketName}, nil
}

func (b *Bucket) Upload(ctx context.Context, conteudo []byte, nome, contentType, campanha string) (string, error) {
	key := fmt.Sprintf("promoters/%s/%d-%s", campanha, time.Now().UnixMilli(), nome)

	_, err := b.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(conteudo),
		ContentLength: aws.Int64(int64(len(conteudo))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", b.bucket, key), nil
}

func (b *Bucket) DeleteFile(ctx context.Context, key string) error {
	_, err := b.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %v", err)
	}

	err = b.client.WaitUntilObjectNotExistsWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error waiting for file deletion: %v", err)
	}

	return nil
}
