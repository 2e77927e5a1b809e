package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/cdr-billing/internal/domain/repository"
)

const s3Scheme = "s3://"

// InputRepositoryImpl implementa o InputRepository: caminhos locais são verificados
// e URIs s3:// são baixadas para um diretório temporário.
type InputRepositoryImpl struct {
	profile string
	region  string

	mu      sync.Mutex
	cfg     *aws.Config
	tempDir string
}

// NewInputRepository cria uma nova implementação do InputRepository.
func NewInputRepository() repository.InputRepository {
	return &InputRepositoryImpl{}
}

// UseProfile selects the AWS profile and region for later downloads.
func (r *InputRepositoryImpl) UseProfile(profile, region string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile != r.profile || region != r.region {
		r.cfg = nil
	}
	r.profile, r.region = profile, region
}

// Resolve returns a local path for location.
func (r *InputRepositoryImpl) Resolve(ctx context.Context, location string) (string, error) {
	if !IsRemote(location) {
		info, err := os.Stat(location)
		if err != nil {
			return "", fmt.Errorf("error accessing input file: %w", err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s is a directory, not a file", location)
		}
		return location, nil
	}

	bucket, key, err := ParseS3URI(location)
	if err != nil {
		return "", err
	}
	return r.download(ctx, bucket, key)
}

// CallerAccount returns the AWS account used for downloads, or "" when nothing was downloaded.
func (r *InputRepositoryImpl) CallerAccount(ctx context.Context) (string, error) {
	r.mu.Lock()
	cfg := r.cfg
	r.mu.Unlock()
	if cfg == nil {
		return "", nil
	}

	out, err := sts.NewFromConfig(*cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}

// Cleanup removes downloaded inputs.
func (r *InputRepositoryImpl) Cleanup() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(r.tempDir)
	r.tempDir = ""
	return err
}

func (r *InputRepositoryImpl) download(ctx context.Context, bucket, key string) (string, error) {
	cfg, err := r.awsConfig(ctx)
	if err != nil {
		return "", err
	}
	dir, err := r.workDir()
	if err != nil {
		return "", err
	}

	out, err := s3.NewFromConfig(cfg).GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to download s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	f, err := createLocalCopy(dir, bucket, key)
	if err != nil {
		return "", fmt.Errorf("error creating local copy of s3://%s/%s: %w", bucket, key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return "", fmt.Errorf("error writing local copy of s3://%s/%s: %w", bucket, key, err)
	}
	return f.Name(), nil
}

// createLocalCopy opens a new file in dir for the object. Each call gets its own
// name, so keys sharing a base name in the same bucket never overwrite each other.
// The object's base name stays at the end to keep its extension.
func createLocalCopy(dir, bucket, key string) (*os.File, error) {
	return os.CreateTemp(dir, bucket+"_*_"+path.Base(key))
}

func (r *InputRepositoryImpl) awsConfig(ctx context.Context) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg != nil {
		return *r.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}
	if r.region != "" {
		opts = append(opts, config.WithRegion(r.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", r.profile, err)
	}
	r.cfg = &cfg
	return cfg, nil
}

func (r *InputRepositoryImpl) workDir() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tempDir != "" {
		return r.tempDir, nil
	}
	dir, err := os.MkdirTemp("", "cdr-billing-*")
	if err != nil {
		return "", fmt.Errorf("error creating download directory: %w", err)
	}
	r.tempDir = dir
	return dir, nil
}

// IsRemote reports whether location is an s3:// URI.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 URI: %s", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("invalid s3 URI %q: expected s3://bucket/key", uri)
	}
	return bucket, key, nil
}
