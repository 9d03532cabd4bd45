package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected *Request
	}{
		{
			name:     "add",
			line:     "add 5",
			expected: &Request{Command: CommandAdd, WindowID: 5, HasWindowID: true},
		},
		{
			name:     "remove",
			line:     "remove 42",
			expected: &Request{Command: CommandRemove, WindowID: 42, HasWindowID: true},
		},
		{
			name:     "list",
			line:     "list",
			expected: &Request{Command: CommandList},
		},
		{
			name:     "toggle_active",
			line:     "toggle_active",
			expected: &Request{Command: CommandToggleActive},
		},
		{
			name:     "stage id",
			line:     "stage 7",
			expected: &Request{Command: CommandStage, WindowID: 7, HasWindowID: true},
		},
		{
			name:     "stage all",
			line:     "stage --all",
			expected: &Request{Command: CommandStage, All: true},
		},
		{
			name:     "stage list",
			line:     "stage --list",
			expected: &Request{Command: CommandStage, List: true},
		},
		{
			name:     "stage active",
			line:     "stage --active",
			expected: &Request{Command: CommandStage, Active: true},
		},
		{
			name:     "unstage id",
			line:     "unstage 7",
			expected: &Request{Command: CommandUnstage, WindowID: 7, HasWindowID: true},
		},
		{
			name:     "unstage all",
			line:     "unstage --all",
			expected: &Request{Command: CommandUnstage, All: true},
		},
		{
			name:     "unstage active",
			line:     "unstage --active",
			expected: &Request{Command: CommandUnstage, Active: true},
		},
		{
			name:     "surrounding whitespace is tolerated",
			line:     "  add 5 \n",
			expected: &Request{Command: CommandAdd, WindowID: 5, HasWindowID: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequest(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, req)
		})
	}
}

func TestParseRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty line", ""},
		{"unknown command", "explode 5"},
		{"add without id", "add"},
		{"add with non-numeric id", "add banana"},
		{"add with negative id", "add -3"},
		{"stage without argument", "stage"},
		{"unstage without argument", "unstage"},
		{"unstage does not take --list", "unstage --list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest(tt.line)
			assert.Error(t, err)
		})
	}
}

// Every encodable request must parse back to itself.
func TestEncodeRoundTrip(t *testing.T) {
	requests := []*Request{
		{Command: CommandAdd, WindowID: 5, HasWindowID: true},
		{Command: CommandRemove, WindowID: 5, HasWindowID: true},
		{Command: CommandList},
		{Command: CommandToggleActive},
		{Command: CommandStage, WindowID: 7, HasWindowID: true},
		{Command: CommandStage, All: true},
		{Command: CommandStage, List: true},
		{Command: CommandStage, Active: true},
		{Command: CommandUnstage, WindowID: 7, HasWindowID: true},
		{Command: CommandUnstage, All: true},
		{Command: CommandUnstage, Active: true},
	}

	for _, req := range requests {
		t.Run(req.Encode(), func(t *testing.T) {
			parsed, err := ParseRequest(req.Encode())
			require.NoError(t, err)
			assert.Equal(t, req, parsed)
		})
	}
}

func TestResponse(t *testing.T) {
	assert.Equal(t, "Staged 3 windows", Success("Staged %d windows", 3).String())
	assert.Equal(t, "[5 9]", Data("[5 9]").String())

	resp := Errorf("window not found in niri")
	assert.True(t, resp.IsError())
	assert.Equal(t, "Error: window not found in niri", resp.String())
}

func TestFormatWindowList(t *testing.T) {
	assert.Equal(t, "[]", FormatWindowList(nil))
	assert.Equal(t, "[5]", FormatWindowList([]uint64{5}))
	assert.Equal(t, "[1 5 9]", FormatWindowList([]uint64{1, 5, 9}))
}
