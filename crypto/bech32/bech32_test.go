package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/community/errors"
)

func TestEncodeDecode(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "tiov" {
		t.Fatalf("unexpected hrp: %q", hrp)
	}
	if !bytes.Equal(want, payload) {
		t.Logf("want %d", want)
		t.Logf("got  %d", payload)
		t.Fatal("invalid decode")
	}

	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if string(raw) != enc {
		t.Fatalf("invalid encoding: %q", raw)
	}
}

func TestAddressRoundTrip(t *testing.T) {
	addr := bytes.Repeat([]byte{0xAB}, 20)

	raw, err := Encode(DefaultHRP, addr)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if !bytes.HasPrefix(raw, []byte(DefaultHRP+"1")) {
		t.Fatalf("unexpected prefix: %q", raw)
	}

	hrp, payload, err := Decode(string(raw))
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if hrp != DefaultHRP || !bytes.Equal(addr, payload) {
		t.Fatalf("round trip mismatch: %q %X", hrp, payload)
	}
}

func TestDecodeFailures(t *testing.T) {
	cases := map[string]string{
		"bad checksum": "tiov1w3jhxapdwpshjmr0v9jqymqq4z",
		"no separator": "tiovw3jhxapdwpshjmr0v9jqymqq4y",
		"mixed case":   "tiov1W3jhxapdwpshjmr0v9jqymqq4y",
		"empty":        "",
	}
	for name, enc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Decode(enc)
			if !errors.ErrInput.Is(err) {
				t.Fatalf("want input error, got %+v", err)
			}
		})
	}
}

func TestEncodeRequiresHRP(t *testing.T) {
	if _, err := Encode("", []byte{1, 2, 3}); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}
}
