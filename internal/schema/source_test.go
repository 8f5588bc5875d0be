package schema

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/formrunner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	src := NewFileSource(path)
	ctx := context.Background()

	res, err := src.RegisterUser(ctx, models.User{RollNumber: "RA01", Name: "Alice"})
	require.NoError(t, err)
	assert.True(t, res.Success)

	resp, err := src.FetchForm(ctx, "RA01")
	require.NoError(t, err)
	assert.Equal(t, "student-registration", resp.Form.FormID)
}

func TestFileSourceInvalidForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"formId": "x", "sections": []}`), 0o644))

	_, err := NewFileSource(path).FetchForm(context.Background(), "RA01")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidForm)
}

func TestFileSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSource("unused.json").FetchForm(ctx, "RA01")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSourceAcceptsUnknownTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	content := "formId: c\nsections:\n  - title: S\n    fields:\n      - fieldId: age\n        type: number\n        label: Age\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	resp, err := NewFileSource(path).FetchForm(context.Background(), "RA01")
	require.NoError(t, err)
	assert.Equal(t, models.FieldType("number"), resp.Form.Sections[0].Fields[0].Type)

	_, err = LoadForm(path)
	assert.ErrorIs(t, err, ErrInvalidForm)
}
