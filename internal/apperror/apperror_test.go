package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := UpstreamTransport("openai_unreachable", cause)

	require.Equal(t, "UPSTREAM_TRANSPORT_ERROR: openai_unreachable: connection refused", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestError_MessageWithoutCause(t *testing.T) {
	require.Equal(t, "BAD_REQUEST: Unsupported task", BadRequest("Unsupported task").Error())
}

func TestCodeOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"direct", Configuration("missing token"), CodeConfiguration},
		{"wrapped", fmt.Errorf("call failed: %w", UpstreamHTTP(503, "openai_status", nil)), CodeUpstreamHTTP},
		{"plain", errors.New("boom"), CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CodeOf(tc.err))
		})
	}
}

func TestIs(t *testing.T) {
	require.True(t, Is(UpstreamProtocol("no_choices", nil), CodeUpstreamProtocol))
	require.False(t, Is(nil, CodeInternal))
	require.False(t, Is(BadRequest("x"), CodeUpstreamProtocol))
}

func TestUpstreamHTTP_CarriesStatus(t *testing.T) {
	err := fmt.Errorf("wrap: %w", UpstreamHTTP(429, "openai_status", nil))

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, 429, appErr.StatusCode)
}
