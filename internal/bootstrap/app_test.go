package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recordhub/internal/config"
)

func TestRequestTimeout(t *testing.T) {
	a := &App{Config: &config.Config{App: config.AppConfig{RequestTimeoutSeconds: 7}}}
	assert.Equal(t, 7*time.Second, a.RequestTimeout())
}

func TestCloseEmptyApp(t *testing.T) {
	assert.NoError(t, (&App{}).Close())
}
