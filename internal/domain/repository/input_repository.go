package repository

import "context"

// InputRepository locates input files, fetching remote ones (s3://bucket/key) to local disk.
type InputRepository interface {
	// UseProfile selects the AWS shared-config profile and region for remote inputs.
	UseProfile(profile, region string)
	// Resolve returns a local path for location or an error wrapping fs.ErrNotExist.
	Resolve(ctx context.Context, location string) (string, error)
	// CallerAccount returns the account used for remote inputs, when one was used.
	CallerAccount(ctx context.Context) (string, error)
	// Cleanup removes any downloaded copies.
	Cleanup() error
}
