package docfold_test

import (
	"errors"
	"testing"

	"github.com/docfold/docfold"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docfold.ErrorCode(nil))
	})

	t.Run("docfold error", func(t *testing.T) {
		t.Parallel()
		err := docfold.Errorf(docfold.ENOTFOUND, "page not found")
		assert.Equal(t, docfold.ENOTFOUND, docfold.ErrorCode(err))
	})

	t.Run("other error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, docfold.EINTERNAL, docfold.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := docfold.Errorf(docfold.EINVALID, "bad URL %q", "ftp://x")
	assert.Equal(t, `bad URL "ftp://x"`, docfold.ErrorMessage(err))
	assert.Equal(t, "", docfold.ErrorMessage(nil))
}
