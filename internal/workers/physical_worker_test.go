package workers

import (
	"encoding/base64"
	"testing"
)

func TestDecodePayloadDataURL(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff}
	b64 := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)

	got, err := decodePayload(b64)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(raw) || got[0] != 0xff {
		t.Fatalf("got %v", got)
	}
}

func TestDecodePayloadBare(t *testing.T) {
	got, err := decodePayload(base64.StdEncoding.EncodeToString([]byte("abc")))
	if err != nil || string(got) != "abc" {
		t.Fatalf("got %q err %v", got, err)
	}
}

func TestDecodePayloadInvalid(t *testing.T) {
	if _, err := decodePayload("!!not base64!!"); err == nil {
		t.Fatal("expected decode error")
	}
}
