package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load program file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x12, 0x34, 0x56, 0x78})

		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		}

		data, err := loader.Load(opts)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, data)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/file.ch8"},
		}

		_, err := loader.Load(opts)
		assert.Error(t, err)
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		}

		_, err := loader.Load(opts)
		assert.True(t, errors.Is(err, errEmptyProgram))
	})
}

func TestLoadFromReader(t *testing.T) {
	t.Run("maximum size", func(t *testing.T) {
		data := bytes.Repeat([]byte{0xAB}, vm.MaxProgramSize)

		loaded, err := New().LoadFromReader(bytes.NewReader(data))
		assert.NoError(t, err)
		assert.Len(t, loaded, vm.MaxProgramSize)
	})

	t.Run("image bytes are kept unchanged", func(t *testing.T) {
		data := []byte{0x00, 0xE0, 0xA2, 0x2A, 0x60, 0x0C, 0xD0, 0x1F}

		loaded, err := New().LoadFromReader(bytes.NewReader(data))
		assert.NoError(t, err)
		assert.Equal(t, data, loaded)
	})

	t.Run("oversized image", func(t *testing.T) {
		data := make([]byte, vm.MaxProgramSize+100)

		_, err := New().LoadFromReader(bytes.NewReader(data))
		assert.True(t, errors.Is(err, vm.ErrImageTooLarge))
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
