package memory

import (
	"errors"
	"testing"

	"github.com/joshuapare/tiffkit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwner_CloseReleases(t *testing.T) {
	base := Outstanding()

	o, err := Acquire(32)
	require.NoError(t, err)
	require.Len(t, o.Bytes(), 32)
	h := o.Handle()

	require.NoError(t, o.Close())
	require.NoError(t, o.Close(), "Close is idempotent")
	assert.False(t, h.IsValid())
	assert.Nil(t, o.Bytes())
	assert.Equal(t, base, Outstanding())
}

func TestOwner_ReleasesOnErrorPath(t *testing.T) {
	base := Outstanding()
	errBoom := errors.New("boom")

	fn := func() error {
		o, err := Acquire(64)
		if err != nil {
			return err
		}
		defer o.Close()
		o.Bytes()[0] = 1
		return errBoom
	}

	require.ErrorIs(t, fn(), errBoom)
	assert.Equal(t, base, Outstanding())
}

func TestOwner_Transfer(t *testing.T) {
	base := Outstanding()

	var kept Handle
	func() {
		o, err := Acquire(8)
		require.NoError(t, err)
		defer o.Close()

		kept, err = o.Transfer()
		require.NoError(t, err)

		_, err = o.Transfer()
		require.ErrorIs(t, err, types.ErrReleased)
	}()

	require.True(t, kept.IsValid(), "transferred handle must survive the scope")
	assert.Equal(t, base+1, Outstanding())

	require.NoError(t, kept.Release())
	assert.Equal(t, base, Outstanding())
}

func TestOwner_Own(t *testing.T) {
	h, err := Allocate(4)
	require.NoError(t, err)

	o := Own(h)
	assert.True(t, o.Handle().Equal(h))
	require.NoError(t, o.Close())
	assert.ErrorIs(t, h.Release(), types.ErrDoubleRelease)

	var nilOwner *Owner
	assert.NoError(t, nilOwner.Close())
}

func TestAcquire_Failure(t *testing.T) {
	o, err := Acquire(-5)
	require.ErrorIs(t, err, types.ErrAllocationFailure)
	assert.Nil(t, o)
	assert.NoError(t, o.Close())
}
