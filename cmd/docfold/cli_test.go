package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/docfold/docfold"
	"github.com/docfold/docfold/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectStrategies(t *testing.T) {
	t.Parallel()

	mirror := &mock.Strategy{NameFn: func() string { return "mirror" }}
	sitemap := &mock.Strategy{NameFn: func() string { return "sitemap" }}
	scraping := &mock.Strategy{NameFn: func() string { return "scraping" }}

	t.Run("auto runs the full cascade in order", func(t *testing.T) {
		t.Parallel()
		got, err := selectStrategies("auto", mirror, sitemap, scraping)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "mirror", got[0].Name())
		assert.Equal(t, "sitemap", got[1].Name())
		assert.Equal(t, "scraping", got[2].Name())
	})

	t.Run("single strategy", func(t *testing.T) {
		t.Parallel()
		got, err := selectStrategies("sitemap", mirror, sitemap, scraping)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "sitemap", got[0].Name())
	})

	t.Run("unknown strategy", func(t *testing.T) {
		t.Parallel()
		_, err := selectStrategies("telepathy", mirror, sitemap, scraping)
		require.Error(t, err)
		assert.Equal(t, docfold.EINVALID, docfold.ErrorCode(err))
	})
}

func TestRun_RejectsNonHTTPURL(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := NewMain().Run(context.Background(), []string{"ftp://example.com/docs"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, docfold.EINVALID, docfold.ErrorCode(err))
}

func TestYAMLConfig(t *testing.T) {
	t.Parallel()

	resolver, err := yamlConfig(strings.NewReader("output: custom.md\nmax-concurrent: 4\n"))
	require.NoError(t, err)

	t.Run("known flag resolves", func(t *testing.T) {
		t.Parallel()
		v, err := resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "output"}})
		require.NoError(t, err)
		assert.Equal(t, "custom.md", v)
	})

	t.Run("unknown flag yields nil", func(t *testing.T) {
		t.Parallel()
		v, err := resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "delay"}})
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("empty config is valid", func(t *testing.T) {
		t.Parallel()
		_, err := yamlConfig(strings.NewReader(""))
		assert.NoError(t, err)
	})
}
