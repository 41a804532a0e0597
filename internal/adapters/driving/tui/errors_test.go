package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrMissingSearchService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingSearchService.Error(), "search service")
}
