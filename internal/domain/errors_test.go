package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_FormatAndUnwrap(t *testing.T) {
	base := errors.New("disk full")
	err := &Error{Op: "store.save", Kind: KindStorage, Err: base}
	assert.Equal(t, "store.save: storage: disk full", err.Error())
	assert.ErrorIs(t, err, base)

	wrapped := fmt.Errorf("submit: %w", err)
	assert.True(t, IsKind(wrapped, KindStorage))
	assert.False(t, IsKind(wrapped, KindValidation))
	assert.Equal(t, err.Error(), UserMessage(wrapped))
}

func TestError_Nil(t *testing.T) {
	var e *Error
	assert.Equal(t, "<nil>", e.Error())
	assert.Nil(t, e.Unwrap())
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestParseContext(t *testing.T) {
	assert.Equal(t, ContextLegalTexts, ParseContext("legal-text"))
	assert.Equal(t, ContextProcedures, ParseContext("Procedures"))
	assert.Equal(t, ContextGeneral, ParseContext("whatever"))
}
