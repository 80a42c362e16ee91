package errs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	err := errs.New(errs.NotInvertible, "%d is not invertible modulo %d", 6, 9)
	assert.True(t, errs.Is(err, errs.NotInvertible))
	assert.Equal(t, errs.NotInvertible, errs.KindOf(err))
	assert.Contains(t, err.Error(), "6 is not invertible modulo 9")

	t.Run("Note", func(t *testing.T) {
		noted := errs.Note(err, "cannot divide")
		assert.Equal(t, errs.NotInvertible, errs.KindOf(noted))
		assert.Contains(t, noted.Error(), "cannot divide")
		assert.Contains(t, noted.Error(), "6 is not invertible modulo 9")
		assert.Nil(t, errs.Note(nil, "nothing"))
	})

	t.Run("Foreign", func(t *testing.T) {
		assert.Equal(t, errs.Kind(""), errs.KindOf(errors.New("plain")))
		assert.False(t, errs.Is(nil, errs.Parse))
	})
}

func TestCheck(t *testing.T) {
	assert.NoError(t, errs.Check(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := errs.Check(ctx)
	assert.True(t, errs.Is(err, errs.Timeout))
	assert.Contains(t, err.Error(), "operation timed out")
}
