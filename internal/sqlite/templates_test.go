// Tests for the generic record operations on the template table.
package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

// bootstrapTestBackend returns a backend whose template table exists and
// holds seed.
func bootstrapTestBackend(t *testing.T, seed ...types.TemplateRecord) *Backend {
	t.Helper()

	b := openTestBackend(t)
	require.NoError(t, b.Bootstrap(context.Background(), seed))
	return b
}

func TestTemplatesTableMissing(t *testing.T) {
	b := openTestBackend(t)
	ctx := context.Background()

	_, err := b.Templates(ctx)
	assert.ErrorIs(t, err, types.ErrTableMissing)

	_, err = b.Template(ctx, "a.txt")
	assert.ErrorIs(t, err, types.ErrTableMissing)

	err = b.CreateTemplate(ctx, types.TemplateRecord{File: "a.txt"})
	assert.ErrorIs(t, err, types.ErrTableMissing)

	err = b.UpdateTemplate(ctx, types.TemplateRecord{File: "a.txt"})
	assert.ErrorIs(t, err, types.ErrTableMissing)

	err = b.DeleteTemplate(ctx, "a.txt")
	assert.ErrorIs(t, err, types.ErrTableMissing)
}

func TestTemplateCRUD(t *testing.T) {
	b := bootstrapTestBackend(t)
	ctx := context.Background()

	records, err := b.Templates(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	welcome := types.TemplateRecord{File: "welcome.txt", Body: []byte("Hello")}
	require.NoError(t, b.CreateTemplate(ctx, welcome))

	got, err := b.Template(ctx, "welcome.txt")
	require.NoError(t, err)
	assert.Equal(t, welcome, got)

	err = b.CreateTemplate(ctx, welcome)
	assert.ErrorIs(t, err, types.ErrTemplateExists)

	require.NoError(t, b.UpdateTemplate(ctx, types.TemplateRecord{File: "welcome.txt", Body: []byte("Hi there")}))
	got, err = b.Template(ctx, "welcome.txt")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", string(got.Body))

	err = b.UpdateTemplate(ctx, types.TemplateRecord{File: "missing.txt", Body: []byte("x")})
	assert.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, b.DeleteTemplate(ctx, "welcome.txt"))
	_, err = b.Template(ctx, "welcome.txt")
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = b.DeleteTemplate(ctx, "welcome.txt")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCreateTemplateRejectsPaths(t *testing.T) {
	b := bootstrapTestBackend(t)

	err := b.CreateTemplate(context.Background(), types.TemplateRecord{File: "../escape.txt"})
	assert.ErrorIs(t, err, types.ErrInvalidFilename)
}

func TestTemplatesReadsEveryRow(t *testing.T) {
	seed := []types.TemplateRecord{
		{File: "a.liquid", Body: []byte("A")},
		{File: "b.liquid", Body: []byte("B")},
		{File: "empty.liquid", Body: []byte{}},
	}
	b := bootstrapTestBackend(t, seed...)

	records, err := b.Templates(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, seed, records)
}
