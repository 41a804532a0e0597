package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCmd_Use(t *testing.T) {
	assert.Equal(t, "scrape [dataset]", scrapeCmd.Use)
}

func TestScrapeCmd_Short(t *testing.T) {
	assert.Equal(t, "Refresh catalog datasets", scrapeCmd.Short)
}

func TestScrapeCmd_HasFreshFlag(t *testing.T) {
	flag := scrapeCmd.Flags().Lookup("fresh")
	require.NotNil(t, flag, "fresh flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestScrapeCmd_RefreshesAllDatasets(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"scrape"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Refreshing all datasets...")
	assert.Contains(t, buf.String(), "disciplines: 2048 items")
	assert.Contains(t, buf.String(), "courses: 70 items")
}

func TestScrapeCmd_RefreshesSingleDataset(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"scrape", "disciplines"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Refreshing disciplines...")
	assert.Contains(t, buf.String(), "Loaded 42 disciplines.")
}

func TestScrapeCmd_RejectsUnknownDataset(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"scrape", "professors"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dataset")
}

func TestScrapeCmd_RejectsExtraArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"scrape", "disciplines", "courses"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestScrapeCmd_ServiceNotConfigured(t *testing.T) {
	oldService := scrapeService
	scrapeService = nil
	defer func() {
		scrapeService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"scrape"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scrape service not configured")
}

func TestScrapeCmd_ServiceError(t *testing.T) {
	oldService := scrapeService
	scrapeService = &mockScrapeServiceError{}
	defer func() {
		scrapeService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"scrape"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scrape failed")
	assert.Contains(t, err.Error(), "catalog unreachable")
}

func TestScrapeCmd_SingleDatasetError(t *testing.T) {
	oldService := scrapeService
	scrapeService = &mockScrapeServiceError{}
	defer func() {
		scrapeService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"scrape", "courses"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "scrape failed")
}
