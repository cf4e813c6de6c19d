package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("TestError", func(t *testing.T) {
		ErrBaseErr := New("base error")
		assert.Equal(t, "base error", ErrBaseErr.Error())
		assert.Equal(t, "msg", ErrBaseErr.New("msg").Error())
		assert.ErrorIs(t, ErrBaseErr, ErrBaseErr)

		ErrFirstLevel := ErrBaseErr.New("first level")
		assert.Equal(t, "first level", ErrFirstLevel.Error())
		assert.ErrorIs(t, ErrFirstLevel, ErrBaseErr)

		ErrAnotherErr := New("another error")
		ErrWrappedErr := ErrFirstLevel.Err(ErrAnotherErr)
		assert.Equal(t, "first level", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, ErrAnotherErr)

		err := errors.New("error")
		ErrWrappedErr = ErrFirstLevel.Err(err)
		assert.Equal(t, "first level", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, err)

		ErrWrappedErr = ErrFirstLevel.MsgErr("msg", err)
		assert.Equal(t, "msg", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, err)
	})
}

func TestErrorStatusCode(t *testing.T) {
	ErrBase := New("billing error").SetStatusCode(http.StatusInternalServerError)
	assert.Equal(t, http.StatusInternalServerError, ErrBase.StatusCode())

	ErrChild := ErrBase.New("invoice already paid").SetStatusCode(http.StatusConflict)
	assert.Equal(t, http.StatusConflict, ErrChild.StatusCode())
	assert.ErrorIs(t, ErrChild, ErrBase)

	// a derived error inherits the parent's status code until overridden
	ErrInherited := ErrBase.New("sweep failed")
	assert.Equal(t, http.StatusInternalServerError, ErrInherited.StatusCode())
}

func TestErrorAll(t *testing.T) {
	e := New("intake rejected").SetExpandError(true).Err(errors.New("bad amount"), errors.New("bad sender"))
	assert.Equal(t, "intake rejected: bad amount;bad sender", e.ErrorAll())

	plain := New("intake rejected")
	assert.Equal(t, "intake rejected", plain.ErrorAll())
}
