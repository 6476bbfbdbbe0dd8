package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inkpost/errs"
)

func TestCheckHashtags(t *testing.T) {
	assert.NoError(t, checkHashtags(nil))
	assert.NoError(t, checkHashtags([]string{"a", "b", "c", "d", "e"}))
	assert.NoError(t, checkHashtags([]string{"a", "b", "c", "d", "e", " ", ""}))

	err := checkHashtags([]string{"a", "b", "c", "d", "e", "f"})
	var e *errs.Error
	if assert.ErrorAs(t, err, &e) {
		assert.Equal(t, errs.KindBadRequest, e.Kind)
	}
}
