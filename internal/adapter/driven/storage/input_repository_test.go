package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://billing-exports/2024/01/cdr.csv")
	require.NoError(t, err)
	assert.Equal(t, "billing-exports", bucket)
	assert.Equal(t, "2024/01/cdr.csv", key)

	for _, bad := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key", "/tmp/cdr.csv", "s3://bucket/dir/"} {
		_, _, err := ParseS3URI(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolveLocalFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cdr.csv")
	require.NoError(t, os.WriteFile(p, []byte("Source\n"), 0o644))

	repo := NewInputRepository()
	got, err := repo.Resolve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = repo.Resolve(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = repo.Resolve(context.Background(), dir)
	assert.Error(t, err)

	account, err := repo.CallerAccount(context.Background())
	require.NoError(t, err)
	assert.Empty(t, account)
	assert.NoError(t, repo.Cleanup())
}

func TestCreateLocalCopyKeepsSameBaseNamesApart(t *testing.T) {
	dir := t.TempDir()

	cdr, err := createLocalCopy(dir, "billing", "vitelity/2025-01.csv")
	require.NoError(t, err)
	_, err = cdr.WriteString("Source,Destination,Seconds\n")
	require.NoError(t, err)
	require.NoError(t, cdr.Close())

	sms, err := createLocalCopy(dir, "billing", "sms/2025-01.csv")
	require.NoError(t, err)
	_, err = sms.WriteString("Date,From,To\n")
	require.NoError(t, err)
	require.NoError(t, sms.Close())

	assert.NotEqual(t, cdr.Name(), sms.Name())
	for _, name := range []string{cdr.Name(), sms.Name()} {
		assert.Equal(t, dir, filepath.Dir(name))
		assert.True(t, strings.HasPrefix(filepath.Base(name), "billing_"), name)
		assert.True(t, strings.HasSuffix(name, "_2025-01.csv"), name)
	}

	data, err := os.ReadFile(cdr.Name())
	require.NoError(t, err)
	assert.Equal(t, "Source,Destination,Seconds\n", string(data))
}
