package minio

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"nsap-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ReportsBucket holds archived CSV exports.
const ReportsBucket = "nsap-reports"

type MinioClient struct {
	client *minio.Client
}

func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		log.Printf("Invalid value for MinIO secure flag: %v. Defaulting to false.", err)
		isSecure = false
	}

	minioClient, err := minio.New(cfg.MinioURL, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to MinIO: %w", err)
	}

	if err := ensureBucket(minioClient, ReportsBucket, cfg.MinioLocation); err != nil {
		return nil, err
	}

	return &MinioClient{client: minioClient}, nil
}

func ensureBucket(client *minio.Client, bucketName, location string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("error checking bucket %s: %w", bucketName, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return fmt.Errorf("error creating bucket %s: %w", bucketName, err)
		}
		log.Printf("Bucket '%s' created", bucketName)
	}
	return nil
}

func (m *MinioClient) GetClient() *minio.Client {
	return m.client
}
