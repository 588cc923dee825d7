// Package codec translates between the plaintext datagram protocol spoken by
// the EAP-SIM/AKA peer and typed requests/responses. The grammar:
//
//	SIM-REQ-AUTH <identity> <challenge_count>
//	AKA-REQ-AUTH <identity>
//
//	SIM-RESP-AUTH <identity> <blob> [<blob> ...]
//	AKA-RESP-AUTH <identity> <rand> <autn> <ik> <ck> <res>
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/telcosim/hlrauc/internal/milenage"
)

const (
	simReqPrefix  = "SIM-REQ-AUTH"
	akaReqPrefix  = "AKA-REQ-AUTH"
	simRespPrefix = "SIM-RESP-AUTH"
	akaRespPrefix = "AKA-RESP-AUTH"
)

var ErrUnknownRequest = errors.New("unrecognized request")

type Kind int

const (
	KindSIM Kind = iota
	KindAKA
)

// Request is one decoded inbound datagram. Count is only meaningful for
// KindSIM.
type Request struct {
	Kind     Kind
	Identity string
	Count    int
}

// DecodeRequest parses an inbound datagram payload as ASCII text.
func DecodeRequest(data []byte) (*Request, error) {
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return nil, ErrUnknownRequest
	}

	switch fields[0] {
	case simReqPrefix:
		if len(fields) != 3 {
			return nil, errors.Errorf("%s: want identity and challenge count", simReqPrefix)
		}
		count, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: challenge count", simReqPrefix)
		}
		if count < 1 {
			return nil, errors.Errorf("%s: challenge count %d < 1", simReqPrefix, count)
		}
		return &Request{Kind: KindSIM, Identity: fields[1], Count: count}, nil

	case akaReqPrefix:
		// Trailing tokens are ignored, only the identity matters.
		if len(fields) < 2 {
			return nil, errors.Errorf("%s: missing identity", akaReqPrefix)
		}
		return &Request{Kind: KindAKA, Identity: fields[1]}, nil
	}

	return nil, ErrUnknownRequest
}

// EncodeSIMResponse repeats the stored triplet blob count times.
func EncodeSIMResponse(identity string, blob string, count int) []byte {
	var b strings.Builder
	b.WriteString(simRespPrefix)
	b.WriteByte(' ')
	b.WriteString(identity)
	for i := 0; i < count; i++ {
		b.WriteByte(' ')
		b.WriteString(blob)
	}
	return []byte(b.String())
}

// EncodeAKAResponse renders a derived vector, all fields as lowercase hex in
// fixed order.
func EncodeAKAResponse(identity string, vector *milenage.Vector) []byte {
	return []byte(fmt.Sprintf("%s %s %x %x %x %x %x",
		akaRespPrefix, identity, vector.Rand, vector.Autn, vector.Ik, vector.Ck, vector.Res))
}
