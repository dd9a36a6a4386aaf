package stun

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXORAddressInvolution(t *testing.T) {
	tid := NewTransactionID()

	cases := []Address{
		{IP: net.ParseIP("192.0.2.1").To4(), Port: 32853},
		{IP: net.ParseIP("2001:db8:1234:5678:11:2233:4455:6677"), Port: 32853},
		{IP: net.ParseIP("0.0.0.0").To4(), Port: 0},
		{IP: net.ParseIP("::1"), Port: 65535},
	}

	for _, want := range cases {
		encoded := encodeXORAddress(want, tid)
		got, err := decodeXORAddress(encoded, tid)
		require.NoError(t, err)
		assert.True(t, want.IP.Equal(got.IP))
		assert.Equal(t, want.Port, got.Port)
	}
}

func TestXORAddressDifferentTransactionIDsDiffer(t *testing.T) {
	addr := Address{IP: net.ParseIP("2001:db8::1"), Port: 1234}
	a := encodeXORAddress(addr, NewTransactionID())
	b := encodeXORAddress(addr, NewTransactionID())
	assert.NotEqual(t, a, b)
}
