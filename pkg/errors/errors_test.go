// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "config_invalid_error",
			code:    errors.ErrConfigInvalid,
			message: "invalid report pattern key: a-b-c",
			wantStr: "[CONFIG_INVALID] invalid report pattern key: a-b-c",
		},
		{
			name:    "unclassified_error",
			code:    errors.ErrUnclassified,
			message: "report does not match any module",
			wantStr: "[UNCLASSIFIED] report does not match any module",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrAmbiguousMatch, "%s matched %d keys", "run1.log", 2)
	assert.Equal(t, "run1.log matched 2 keys", err.Message)
	assert.Equal(t, errors.ErrAmbiguousMatch, err.Code)
}

func TestWrap(t *testing.T) {
	t.Run("wraps_underlying_error", func(t *testing.T) {
		base := stderrors.New("permission denied")
		err := errors.Wrap(base, errors.ErrFileAccess, "cannot open report")

		require.Error(t, err)
		assert.Equal(t, "[FILE_ACCESS] cannot open report: permission denied", err.Error())
		assert.True(t, stderrors.Is(err, base))
	})

	t.Run("nil_error_returns_nil", func(t *testing.T) {
		assert.NoError(t, errors.Wrap(nil, errors.ErrInternal, "unused"))
		assert.NoError(t, errors.Wrapf(nil, errors.ErrInternal, "unused %d", 1))
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		err := errors.Wrapf(stderrors.New("eof"), errors.ErrReportParse, "failed to parse %s", "a.json")
		assert.Equal(t, "[REPORT_PARSE] failed to parse a.json: eof", err.Error())
	})
}

func TestIs(t *testing.T) {
	err := errors.New(errors.ErrFormatMismatch, "stale")
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrFormatMismatch, "other message")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrUnclassified, "stale")))
}

func TestIsErrorCode(t *testing.T) {
	inner := errors.New(errors.ErrUnsupportedSubmodule, "bad submodule")
	outer := errors.Wrap(inner, errors.ErrReportParse, "parse failed")
	wrapped := fmt.Errorf("context: %w", outer)

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrReportParse))
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrUnsupportedSubmodule))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrUnclassified))
	assert.False(t, errors.IsErrorCode(nil, errors.ErrUnclassified))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrUnknown))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrInvalidName, errors.GetErrorCode(errors.New(errors.ErrInvalidName, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrAmbiguousMatch, "ambiguous").
		WithDetail("path", "/tmp/a.txt").
		WithDetail("keys", []string{"a", "b"})

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "/tmp/a.txt", details["path"])
	assert.Equal(t, []string{"a", "b"}, details["keys"])

	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}
