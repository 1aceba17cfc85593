package aws_s3

import (
	"context"
	"io"
	"strings"

	"github.com/micbed86/FancyNote-sub000/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

// S3 stores attachments in an S3 bucket. A custom Endpoint serves any
// S3-compatible provider (MinIO, R2).
type S3 struct {
	Client *s3.Client
	Config *Config
}

// NewClient creates an S3 storage instance.
func NewClient(conf *Config) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		awsconfig.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		Client: client,
		Config: conf,
	}, nil
}

func (p *S3) key(pathKey string) string {
	return fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey
}

func (p *S3) Connect() error {
	return nil
}

func (p *S3) Close() error {
	return nil
}

func (p *S3) Exists(pathKey string) (bool, error) {
	_, err := p.Client.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.key(pathKey)),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, errors.Wrap(err, "aws_s3")
	}
	return true, nil
}

func (p *S3) EnsureDir(pathKey string) error {
	// object stores have no directories
	return nil
}

func (p *S3) Upload(pathKey string, file io.Reader, cType string) (string, error) {
	_, err := p.Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(p.Config.BucketName),
		Key:         aws.String(p.key(pathKey)),
		Body:        file,
		ContentType: aws.String(cType),
	})
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}
	return pathKey, nil
}

func (p *S3) Download(pathKey string) (io.ReadCloser, error) {
	out, err := p.Client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.key(pathKey)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}
	return out.Body, nil
}

func (p *S3) Delete(pathKey string) error {
	_, err := p.Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.key(pathKey)),
	})
	if err != nil {
		return errors.Wrap(err, "aws_s3")
	}
	return nil
}
