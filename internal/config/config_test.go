package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unilab-kr/boardmap/internal/config"
)

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.Config{}.WithDefaults()

	assert.Equal(t, 7*time.Second, cfg.HTTP.HomepageTimeout)
	assert.Equal(t, 5*time.Second, cfg.HTTP.SitemapTimeout)
	assert.Equal(t, 4, cfg.Discovery.Workers)
	assert.Equal(t, "result/departments_boards.json", cfg.Output.BoardsPath)
	assert.Equal(t, "result/manual_review_needed.json", cfg.Output.ReviewPath)
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := config.Config{}
	cfg.Discovery.Workers = 12
	cfg.HTTP.HomepageTimeout = 10 * time.Second
	cfg = cfg.WithDefaults()

	assert.Equal(t, 12, cfg.Discovery.Workers)
	assert.Equal(t, 10*time.Second, cfg.HTTP.HomepageTimeout)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := config.Config{}.WithDefaults()
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.HTTP.SitemapTimeout = bad.HTTP.HomepageTimeout + time.Second
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Discovery.Workers = 0
	assert.Error(t, bad.Validate())
}
