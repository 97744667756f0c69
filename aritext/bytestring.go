package aritext

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
)

// decodeHex/decodeBase32/decodeBase64 implement the three byte-string
// encodings the grammar supports (h'..', b32'..', b64'..').
func decodeHex(p *parser, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, p.lexf("invalid hex byte string: %v", err)
	}
	return b, nil
}

func decodeBase32(p *parser, s string) ([]byte, error) {
	b, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
	if err != nil {
		return nil, p.lexf("invalid base32 byte string: %v", err)
	}
	return b, nil
}

func decodeBase64(p *parser, s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, p.lexf("invalid base64 byte string: %v", err)
	}
	return b, nil
}
