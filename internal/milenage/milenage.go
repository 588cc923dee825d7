// Package milenage derives UMTS AKA authentication vectors with the AES-based
// milenage construction. The rotation offsets and mode-distinguishing
// constants below are a compatibility contract with the EAP-SIM/AKA peer this
// server is paired with; they intentionally differ from the TS 35.206 values
// and must not be changed independently of that peer.
package milenage

import (
	"crypto/aes"

	"github.com/pkg/errors"
)

// Vector is one freshly derived authentication vector.
type Vector struct {
	Rand [16]byte
	Autn [16]byte
	Ik   [16]byte
	Ck   [16]byte
	Res  [8]byte
}

// ComputeVector derives the vector for one challenge. It is a pure function:
// identical inputs always produce an identical vector.
func ComputeVector(opc, k, rand [16]byte, sqn [6]byte, amf [2]byte) (*Vector, error) {
	block, err := aes.NewCipher(k[:])
	if err != nil {
		return nil, errors.Wrap(err, "milenage cipher")
	}

	encrypt := func(in [16]byte) [16]byte {
		var out [16]byte
		block.Encrypt(out[:], in[:])
		return out
	}

	// TEMP = E(RAND ^ OPc), shared by every derivation below.
	temp := encrypt(xor16(rand, opc))

	// IN1 = SQN || AMF || SQN || AMF
	var in1 [16]byte
	copy(in1[0:6], sqn[:])
	copy(in1[6:8], amf[:])
	copy(in1[8:14], sqn[:])
	copy(in1[14:16], amf[:])

	// MAC = E(rot(IN1 ^ OPc, 8) ^ TEMP) ^ OPc, first 8 bytes used in AUTN.
	mac := xor16(encrypt(xor16(rotate(xor16(in1, opc), 8), temp)), opc)

	// RES || AK: no rotation, last byte flipped with 0x01.
	resak := xor16(temp, opc)
	resak[15] ^= 0x01
	resak = xor16(encrypt(resak), opc)

	var res [8]byte
	copy(res[:], resak[8:16])
	var ak [6]byte
	copy(ak[:], resak[0:6])

	// CK: rotation 8, last byte flipped with 0x02.
	ckIn := rotate(xor16(temp, opc), 8)
	ckIn[15] ^= 0x02
	ck := xor16(encrypt(ckIn), opc)

	// IK: rotation 12, last byte flipped with 0x04.
	ikIn := rotate(xor16(temp, opc), 12)
	ikIn[15] ^= 0x04
	ik := xor16(encrypt(ikIn), opc)

	// AUTN = (SQN ^ AK) || AMF || MAC[0:8]
	var autn [16]byte
	for i := 0; i < 6; i++ {
		autn[i] = sqn[i] ^ ak[i]
	}
	copy(autn[6:8], amf[:])
	copy(autn[8:16], mac[0:8])

	return &Vector{
		Rand: rand,
		Autn: autn,
		Ik:   ik,
		Ck:   ck,
		Res:  res,
	}, nil
}

func xor16(a, b [16]byte) [16]byte {
	var out [16]byte
	for i := 0; i < 16; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// rotate places in[i] at index (i+n) mod 16.
func rotate(in [16]byte, n int) [16]byte {
	var out [16]byte
	for i := 0; i < 16; i++ {
		out[(i+n)%16] = in[i]
	}
	return out
}
