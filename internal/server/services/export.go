package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/climatetracker/internal/common"
	"github.com/dmitrijs2005/climatetracker/internal/server/auth"
	sc "github.com/dmitrijs2005/climatetracker/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ExportURLValidity is the lifetime of presigned download links.
const ExportURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ExportResult locates an uploaded history export.
type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ExportService writes a user's history as CSV to S3-compatible storage.
type ExportService struct {
	ledger *LedgerService
	config *sc.Config
}

func NewExportService(ledger *LedgerService, config *sc.Config) *ExportService {
	return &ExportService{ledger: ledger, config: config}
}

// GetRandomStorageKey returns a fresh object key under today's date.
func GetRandomStorageKey() string {
	d := time.Now().UTC()
	return fmt.Sprintf("exports/%04d/%02d/%02d/%v.csv", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ExportService) getClients(ctx context.Context) (*s3.Client, *s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, newS3PresignClient(client), nil
}

// ExportHistory uploads the session user's history and returns a presigned
// GET URL valid for ExportURLValidity. Without a configured bucket it
// returns ErrExportDisabled.
func (s *ExportService) ExportHistory(ctx context.Context, session auth.Session) (*ExportResult, error) {
	if session.Username == "" {
		return nil, common.ErrInvalidToken
	}
	if s.config.S3Bucket == "" {
		return nil, common.ErrExportDisabled
	}

	history, err := s.ledger.History(ctx, session.Username)
	if err != nil {
		return nil, err
	}

	body, err := encodeHistoryCSV(history)
	if err != nil {
		return nil, fmt.Errorf("error encoding history: %w", err)
	}

	client, presignClient, err := s.getClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("error configuring storage: %w", err)
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	}); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ExportURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	return &ExportResult{Key: key, URL: req.URL}, nil
}

// encodeHistoryCSV renders history as "seq_index,total_emission" rows,
// numbered from 1 in insertion order.
func encodeHistoryCSV(history []float64) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"seq_index", "total_emission"}); err != nil {
		return nil, err
	}
	for i, v := range history {
		if err := w.Write([]string{strconv.Itoa(i + 1), strconv.FormatFloat(v, 'f', -1, 64)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
