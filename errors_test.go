package emojimosaic

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := newError(KindDecode, "decode tile", "1f600.png", errors.New("unexpected EOF"))

	assert.Equal(t, "decode tile 1f600.png: unexpected EOF", err.Error())
	assert.True(t, errors.Is(err, ErrDecode))
	assert.False(t, errors.Is(err, ErrIO))
	assert.False(t, errors.Is(err, ErrFormat))

	wrapped := fmt.Errorf("failed to build palette: %w", err)
	assert.True(t, errors.Is(wrapped, ErrDecode))
	assert.Equal(t, KindDecode, KindOf(wrapped))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}

func TestErrorUnwrap(t *testing.T) {
	err := newError(KindIO, "read tile directory", "/nope", os.ErrNotExist)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, errors.Is(err, ErrIO))
	assert.Equal(t, "io error", ErrIO.Error())
	assert.Equal(t, "format", KindFormat.String())
}
