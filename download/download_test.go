package download_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/download"
	"github.com/docfold/docfold/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAcquirer struct {
	pages    []*docfold.Page
	strategy string
	err      error
}

func (a *stubAcquirer) Acquire(context.Context, string, string) ([]*docfold.Page, string, error) {
	return a.pages, a.strategy, a.err
}

func fixedClock() func() time.Time {
	t := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(2 * time.Second)
		return t
	}
}

func TestDownloader_Run(t *testing.T) {
	t.Parallel()

	var writtenPath, writtenContent string

	d := &download.Downloader{
		Acquirer: &stubAcquirer{
			pages: []*docfold.Page{
				{Title: "Intro", URL: "https://d.example/intro", Content: "Welcome."},
				{Title: "Usage", URL: "https://d.example/usage", Content: "Run it."},
			},
			strategy: "sitemap",
		},
		Writer: &mock.DocumentWriter{
			WriteDocumentFn: func(path, content string) error {
				writtenPath, writtenContent = path, content
				return nil
			},
		},
		Now: fixedClock(),
	}

	result, err := d.Run(context.Background(), download.Options{
		URL:        "https://d.example",
		OutputPath: "out.md",
	})
	require.NoError(t, err)

	assert.Equal(t, "sitemap", result.StrategyUsed)
	assert.Equal(t, 2, result.PagesDownloaded)
	assert.Equal(t, "out.md", result.OutputPath)
	assert.Greater(t, result.PagesPerSecond, 0.0)

	assert.Equal(t, "out.md", writtenPath)
	assert.Contains(t, writtenContent, "Welcome.")
	assert.Contains(t, writtenContent, "Run it.")
}

func TestDownloader_AcquisitionFailureWritesNothing(t *testing.T) {
	t.Parallel()

	d := &download.Downloader{
		Acquirer: &stubAcquirer{err: docfold.Errorf(docfold.EUNAVAILABLE, "no strategy succeeded")},
		Writer: &mock.DocumentWriter{
			WriteDocumentFn: func(string, string) error {
				t.Fatal("no document may be written when acquisition fails")
				return nil
			},
		},
	}

	_, err := d.Run(context.Background(), download.Options{
		URL:        "https://d.example",
		OutputPath: "out.md",
	})
	require.Error(t, err)
	assert.Equal(t, docfold.EUNAVAILABLE, docfold.ErrorCode(err))
}

func TestDownloader_WriteFailurePropagates(t *testing.T) {
	t.Parallel()

	d := &download.Downloader{
		Acquirer: &stubAcquirer{
			pages:    []*docfold.Page{{Title: "T", URL: "https://d.example/p", Content: "c"}},
			strategy: "scraping",
		},
		Writer: &mock.DocumentWriter{
			WriteDocumentFn: func(string, string) error { return errors.New("disk full") },
		},
	}

	_, err := d.Run(context.Background(), download.Options{URL: "https://d.example", OutputPath: "out.md"})
	assert.Error(t, err)
}

func TestDownloader_IncludeAssets(t *testing.T) {
	t.Parallel()

	var assetDir, refDir string

	d := &download.Downloader{
		Acquirer: &stubAcquirer{
			pages:    []*docfold.Page{{Title: "T", URL: "https://d.example/p", Content: "body text"}},
			strategy: "scraping",
		},
		Assets: &mock.AssetService{
			DownloadAssetsFn: func(_ context.Context, _ []*docfold.Page, destDir string) (int, error) {
				assetDir = destDir
				return 3, nil
			},
			UpdateReferencesFn: func(content, relDir string) string {
				refDir = relDir
				return content
			},
		},
		Writer: &mock.DocumentWriter{
			WriteDocumentFn: func(string, string) error { return nil },
		},
	}

	result, err := d.Run(context.Background(), download.Options{
		URL:           "https://d.example",
		OutputPath:    filepath.Join("docs", "out.md"),
		IncludeAssets: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.AssetsDownloaded)
	assert.Equal(t, filepath.Join("docs", "assets"), assetDir)
	assert.Equal(t, "assets", refDir)
}

func TestDownloader_WorkDirCleanup(t *testing.T) {
	t.Parallel()

	newDownloader := func(workDir string, keep bool) *download.Downloader {
		return &download.Downloader{
			Acquirer: &stubAcquirer{
				pages:    []*docfold.Page{{Title: "T", URL: "https://d.example/p", Content: "c"}},
				strategy: "mirror",
			},
			Writer: &mock.DocumentWriter{
				WriteDocumentFn: func(string, string) error { return nil },
			},
			WorkDir:  workDir,
			KeepTemp: keep,
		}
	}

	t.Run("removed by default", func(t *testing.T) {
		t.Parallel()
		workDir := filepath.Join(t.TempDir(), "scratch")
		require.NoError(t, os.MkdirAll(workDir, 0o755))

		_, err := newDownloader(workDir, false).Run(context.Background(), download.Options{URL: "https://d.example", OutputPath: "out.md"})
		require.NoError(t, err)

		_, err = os.Stat(workDir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("kept with KeepTemp", func(t *testing.T) {
		t.Parallel()
		workDir := filepath.Join(t.TempDir(), "scratch")
		require.NoError(t, os.MkdirAll(workDir, 0o755))

		_, err := newDownloader(workDir, true).Run(context.Background(), download.Options{URL: "https://d.example", OutputPath: "out.md"})
		require.NoError(t, err)

		_, err = os.Stat(workDir)
		assert.NoError(t, err)
	})
}
