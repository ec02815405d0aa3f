package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	entities := []Entity{
		&Block{Height: 170, Hash: "00000000d1145790a8694403d4063f323d499e655c83426834d4ce2f8dd4a2ee", Timestamp: 1231731025, Nonce: 1889418792, Bits: 486604799, Version: 1},
		&Transaction{TxID: 9, Hash: "f4184fc596403b9d638783cf57adfe4c75c605f6356fbc91338530e9831e9e16", Locktime: 0, Version: 1, Fee: 0, Size: 275, Weight: 1100, BlockHeight: 170},
		&Output{TxID: 9, Vout: 0, Value: 1000000000, ScriptType: "pubkey"},
		&Input{SpentTxID: 9, SpentVout: 0, Sequence: 4294967295},
		&Address{AddressID: "a1", Address: "12cbQLTFMXRnSzktFkuoG3eHoMeFtpTu3S", AddressType: "pubkey"},
		&TxRef{TxID: 9},
		&OutputRef{TxID: 9, Vout: 1},
		&AddrRef{AddressID: "a1"},
	}

	for _, e := range entities {
		blob := Encode(e)
		decoded, ok := Decode(blob)
		require.True(t, ok, "decode %s: %s", e.Kind(), blob)
		assert.Equal(t, e, decoded, "round trip %s", e.Kind())
	}
}

func TestEncode_DiscriminatorFirst(t *testing.T) {
	blob := Encode(&TxRef{TxID: 42})
	assert.Equal(t, `{"kind":"tx_ref","tx_id":42}`, string(blob))
}

func TestDecode_MissingDiscriminator(t *testing.T) {
	_, ok := Decode([]byte(`{"height":170,"hash":"abc"}`))
	assert.False(t, ok)
}

func TestDecode_UnknownKind(t *testing.T) {
	_, ok := Decode([]byte(`{"kind":"widget","tx_id":1}`))
	assert.False(t, ok)
}

func TestDecode_MissingRequiredField(t *testing.T) {
	// Block without a nonce.
	_, ok := Decode([]byte(`{"kind":"block","height":170,"hash":"abc","timestamp":1,"bits":1,"version":1}`))
	assert.False(t, ok)
}

func TestDecode_Garbage(t *testing.T) {
	for _, blob := range []string{"", "{}", "not json at all", `{"kind":`} {
		_, ok := Decode([]byte(blob))
		assert.False(t, ok, "input %q", blob)
	}
}

func TestDecode_DelimitersInsideStrings(t *testing.T) {
	// Brace, bracket, colon, and comma characters inside a quoted field
	// must not terminate the value scan.
	blob := []byte(`{"kind":"address","address_id":"a{1}","address":"1Abc[x],y:z","address_type":"pubkey"}`)
	e, ok := Decode(blob)
	require.True(t, ok)
	addr := e.(*Address)
	assert.Equal(t, "a{1}", addr.AddressID)
	assert.Equal(t, "1Abc[x],y:z", addr.Address)
}

func TestDecode_EscapedQuotes(t *testing.T) {
	e, ok := Decode(Encode(&Address{AddressID: `a"1`, Address: "addr", AddressType: "pubkey"}))
	require.True(t, ok)
	assert.Equal(t, `a"1`, e.(*Address).AddressID)
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	blob := []byte(`{"kind":"tx_ref","note":"extra","tx_id":7}`)
	e, ok := Decode(blob)
	require.True(t, ok)
	assert.Equal(t, uint64(7), e.(*TxRef).TxID)
}
