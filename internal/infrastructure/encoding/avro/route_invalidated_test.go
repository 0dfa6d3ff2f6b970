package avro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteInvalidatedCodec_RoundTrip(t *testing.T) {
	codec, err := NewRouteInvalidatedCodec()
	require.NoError(t, err)

	at := time.Date(2026, 10, 19, 12, 30, 15, 123_000_000, time.UTC)
	payload, err := codec.Encode(RouteInvalidated{Path: "/dashboard/invoices", InvalidatedAt: at, Source: "invoice_dashboard"})
	require.NoError(t, err)

	got, err := codec.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/invoices", got.Path)
	assert.True(t, at.Equal(got.InvalidatedAt))
	assert.Equal(t, "invoice_dashboard", got.Source)
}

func TestRouteInvalidatedCodec_NullSource(t *testing.T) {
	codec, err := NewRouteInvalidatedCodec()
	require.NoError(t, err)

	payload, err := codec.Encode(RouteInvalidated{Path: "/a", InvalidatedAt: time.Unix(0, 0)})
	require.NoError(t, err)

	got, err := codec.Decode(payload)
	require.NoError(t, err)
	assert.Empty(t, got.Source)
}

func TestRouteInvalidatedCodec_EmptyPath(t *testing.T) {
	codec, err := NewRouteInvalidatedCodec()
	require.NoError(t, err)

	_, err = codec.Encode(RouteInvalidated{})
	assert.Error(t, err)
}

func TestRouteInvalidatedCodec_Garbage(t *testing.T) {
	codec, err := NewRouteInvalidatedCodec()
	require.NoError(t, err)

	_, err = codec.Decode([]byte{0xff})
	assert.Error(t, err)
}

func TestRouteInvalidatedCodec_TrailingBytes(t *testing.T) {
	codec, err := NewRouteInvalidatedCodec()
	require.NoError(t, err)

	payload, err := codec.Encode(RouteInvalidated{Path: "/a", InvalidatedAt: time.Unix(0, 0)})
	require.NoError(t, err)

	_, err = codec.Decode(append(payload, 0x00))
	assert.ErrorContains(t, err, "trailing bytes")
}
