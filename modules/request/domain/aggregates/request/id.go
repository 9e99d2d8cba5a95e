package request

import (
	"crypto/rand"
	"math/big"
)

// ID prefixes. The envelope carries REQ-, each detail table carries its own
// kind prefix. The suffix is 15 lowercase base36 characters.
const (
	PrefixRequest    = "REQ"
	PrefixJob        = "JRQ"
	PrefixVenue      = "VRQ"
	PrefixTransport  = "TRQ"
	PrefixReturnable = "BRQ"
	PrefixSupply     = "SRQ"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 15
)

func NewID(prefix string) string {
	buf := make([]byte, idLength)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return prefix + "-" + string(buf)
}

// DetailPrefix returns the ID prefix for a request type's detail row.
func DetailPrefix(t Type) string {
	switch t {
	case TypeJob:
		return PrefixJob
	case TypeVenue:
		return PrefixVenue
	case TypeTransport:
		return PrefixTransport
	case TypeReturnable:
		return PrefixReturnable
	case TypeSupply:
		return PrefixSupply
	default:
		return PrefixRequest
	}
}
