package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTaskFilter(t *testing.T) {
	assert.Equal(t, FilterActive, ParseTaskFilter("active"))
	assert.Equal(t, FilterAll, ParseTaskFilter("all"))
	assert.Equal(t, FilterCompleted, ParseTaskFilter("completed"))
	assert.Equal(t, FilterDeleted, ParseTaskFilter("deleted"))

	// Unknown and empty values fall back to the default view.
	assert.Equal(t, FilterActive, ParseTaskFilter(""))
	assert.Equal(t, FilterActive, ParseTaskFilter("everything"))
}

func TestParseTaskSort(t *testing.T) {
	assert.Equal(t, SortRecent, ParseTaskSort("recent"))
	assert.Equal(t, SortDue, ParseTaskSort("due"))
	assert.Equal(t, SortRecent, ParseTaskSort(""))
	assert.Equal(t, SortRecent, ParseTaskSort("priority"))
}
