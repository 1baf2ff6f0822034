package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain name", "welcome.txt", true},
		{"liquid template", "password-reset.liquid", true},
		{"dotfile", ".hidden", true},
		{"empty", "", false},
		{"dot", ".", false},
		{"dot dot", "..", false},
		{"nested path", "mail/welcome.txt", false},
		{"parent escape", "../etc/passwd", false},
		{"absolute", "/etc/passwd", false},
		{"backslash", `mail\welcome.txt`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidFilename)
			}
		})
	}
}

func TestFilenames(t *testing.T) {
	records := []TemplateRecord{
		{File: "a.liquid", Body: []byte("a")},
		{File: "b.liquid", Body: []byte("b")},
	}
	assert.Equal(t, []string{"a.liquid", "b.liquid"}, Filenames(records))
	assert.Empty(t, Filenames(nil))
}

func TestOpError(t *testing.T) {
	cause := errors.New("permission denied")

	err := error(&OpError{Op: OpWrite, Path: "/out/a.txt", Err: cause})
	assert.Equal(t, "write /out/a.txt: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("sync: %w", err)
	var opErr *OpError
	require.ErrorAs(t, wrapped, &opErr)
	assert.Equal(t, OpWrite, opErr.Op)

	noPath := &OpError{Op: OpRead, Err: cause}
	assert.Equal(t, "read: permission denied", noPath.Error())
}

func TestResultOK(t *testing.T) {
	assert.True(t, SyncResult{}.OK())
	assert.False(t, SyncResult{Err: ErrDestinationUnset}.OK())
	assert.True(t, BootstrapResult{Skipped: true}.OK())
	assert.False(t, BootstrapResult{Err: ErrTableMissing}.OK())
}
