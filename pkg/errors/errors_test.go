// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code lookup

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
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
			name:    "discovery_failure",
			code:    errors.ErrDiscoveryFailure,
			message: "root does not exist",
			wantStr: "[DISCOVERY_FAILURE] root does not exist",
		},
		{
			name:    "evaluator_mismatch",
			code:    errors.ErrEvaluatorMismatch,
			message: "unexpected rule id",
			wantStr: "[EVALUATOR_MISMATCH] unexpected rule id",
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
	err := errors.Newf(errors.ErrInvalidInput, "unknown format %q", "xml")
	assert.Equal(t, `unknown format "xml"`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrDiscoveryFailure, "cannot read root")

		assert.Equal(t, errors.ErrDiscoveryFailure, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[DISCOVERY_FAILURE] cannot read root: permission denied", err.Error())
		assert.True(t, stderrors.Is(err, baseErr))
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrEvaluatorMismatch, "unexpected id").
		WithDetail("id", "c").
		WithDetail("rules", 3)

	assert.Equal(t, "c", err.Details["id"])
	assert.Equal(t, 3, errors.GetErrorDetails(err)["rules"])
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2), "same code should match")
	assert.False(t, err1.Is(err3), "different codes should not match")
	assert.True(t, stderrors.Is(err1, err2), "errors.Is should compare codes")
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrAmbiguousHierarchy, "two parents"),
			code:     errors.ErrAmbiguousHierarchy,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "inner_code_in_chain",
			err:      errors.Wrap(errors.New(errors.ErrFileAccess, "denied"), errors.ErrDiscoveryFailure, "discovery"),
			code:     errors.ErrFileAccess,
			expected: true,
		},
		{
			name:     "wrapped_by_fmt",
			err:      fmt.Errorf("detect: %w", errors.New(errors.ErrEvaluatorMismatch, "extra id")),
			code:     errors.ErrEvaluatorMismatch,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrConfigParse, errors.GetErrorCode(errors.New(errors.ErrConfigParse, "bad toml")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	require.True(t, errors.IsErrorCode(configErr, errors.ErrConfigLoad))
	assert.Equal(t, errors.ErrConfigLoad, errors.GetErrorCode(configErr))

	var monoErr *errors.MonomodError
	require.True(t, stderrors.As(configErr.Unwrap(), &monoErr))
	assert.Equal(t, errors.ErrFileAccess, monoErr.Code)

	assert.True(t, stderrors.Is(configErr, rootCause))
}
