package wallet

import (
	"testing"
)

func TestVerifyKnownSignature(t *testing.T) {
	message := "I solemnly swear that I am up to some good. Hotkey: 5Eq1FDc9oz1tTm4MqGLdH4ajgz9eMgQ5To812axojN121DiQ"
	signature := "0x8ee4ce50165f23b739ec55c2beeafcd273685819c32470df26b0641d15593d3b08b8aef7c391f01e7c2e34c2ee12b80df0c4b615cc0d0966be0dc81192bbc286"
	ss58Address := "5Eq1FDc9oz1tTm4MqGLdH4ajgz9eMgQ5To812axojN121DiQ"

	ok, err := VerifySignature([]byte(message), signature, ss58Address)
	if err != nil {
		t.Fatalf("Verification failed: %v", err)
	}
	if !ok {
		t.Error("Expected signature to be valid, but it was not")
	}
}

func TestVerifyRejectsMalformedInput(t *testing.T) {
	validSig := "0x8ee4ce50165f23b739ec55c2beeafcd273685819c32470df26b0641d15593d3b08b8aef7c391f01e7c2e34c2ee12b80df0c4b615cc0d0966be0dc81192bbc286"
	validAddr := "5Eq1FDc9oz1tTm4MqGLdH4ajgz9eMgQ5To812axojN121DiQ"

	cases := []struct {
		name      string
		signature string
		address   string
	}{
		{"missing 0x prefix", validSig[2:], validAddr},
		{"not hex", "0xnothex", validAddr},
		{"too short", validSig[:66], validAddr},
		{"bad ss58 address", validSig, "invalid-address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := VerifySignature([]byte("test message"), tc.signature, tc.address)
			if err == nil {
				t.Error("Expected an error")
			}
			if ok {
				t.Error("Expected verification to fail")
			}
		})
	}
}

func TestVerifyWrongMessage(t *testing.T) {
	signature := "0x8ee4ce50165f23b739ec55c2beeafcd273685819c32470df26b0641d15593d3b08b8aef7c391f01e7c2e34c2ee12b80df0c4b615cc0d0966be0dc81192bbc286"
	ss58Address := "5Eq1FDc9oz1tTm4MqGLdH4ajgz9eMgQ5To812axojN121DiQ"

	ok, _ := VerifySignature([]byte("a different message"), signature, ss58Address)
	if ok {
		t.Error("Expected verification to fail for a different message")
	}
}
