package codec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telcosim/hlrauc/internal/milenage"
)

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *Request
		wantErr bool
	}{
		{
			name:    "sim request",
			payload: "SIM-REQ-AUTH imsi002 3",
			want:    &Request{Kind: KindSIM, Identity: "imsi002", Count: 3},
		},
		{
			name:    "aka request",
			payload: "AKA-REQ-AUTH imsi001",
			want:    &Request{Kind: KindAKA, Identity: "imsi001"},
		},
		{
			name:    "aka request with trailing tokens",
			payload: "AKA-REQ-AUTH imsi001 extra junk",
			want:    &Request{Kind: KindAKA, Identity: "imsi001"},
		},
		{
			name:    "unknown verb",
			payload: "EAP-REQ-AUTH imsi001",
			wantErr: true,
		},
		{
			name:    "empty payload",
			payload: "",
			wantErr: true,
		},
		{
			name:    "sim request missing count",
			payload: "SIM-REQ-AUTH imsi002",
			wantErr: true,
		},
		{
			name:    "sim request extra token",
			payload: "SIM-REQ-AUTH imsi002 2 2",
			wantErr: true,
		},
		{
			name:    "sim request non-numeric count",
			payload: "SIM-REQ-AUTH imsi002 two",
			wantErr: true,
		},
		{
			name:    "sim request zero count",
			payload: "SIM-REQ-AUTH imsi002 0",
			wantErr: true,
		},
		{
			name:    "aka request missing identity",
			payload: "AKA-REQ-AUTH",
			wantErr: true,
		},
		{
			name:    "verb glued to identity",
			payload: "SIM-REQ-AUTHimsi002 1",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeRequest([]byte(tc.payload))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeSIMResponse(t *testing.T) {
	const blob = "deadbeefcafebabef00dfeed"

	for _, count := range []int{1, 3, 50} {
		resp := string(EncodeSIMResponse("imsi002", blob, count))
		fields := strings.Split(resp, " ")
		require.Len(t, fields, 2+count, "count=%d", count)
		assert.Equal(t, "SIM-RESP-AUTH", fields[0])
		assert.Equal(t, "imsi002", fields[1])
		for _, f := range fields[2:] {
			assert.Equal(t, blob, f)
		}
	}

	assert.Equal(t,
		"SIM-RESP-AUTH imsi002 deadbeefcafebabef00dfeed deadbeefcafebabef00dfeed",
		string(EncodeSIMResponse("imsi002", blob, 2)))
}

func TestEncodeAKAResponse(t *testing.T) {
	vector := &milenage.Vector{}
	for i := range vector.Rand {
		vector.Rand[i] = byte(i)
		vector.Autn[i] = byte(0xa0 + i)
		vector.Ik[i] = byte(0x10 + i)
		vector.Ck[i] = byte(0xc0 + i)
	}
	for i := range vector.Res {
		vector.Res[i] = byte(0xf0 + i)
	}

	resp := string(EncodeAKAResponse("imsi001", vector))
	fields := strings.Split(resp, " ")
	require.Len(t, fields, 7)

	assert.Equal(t, "AKA-RESP-AUTH", fields[0])
	assert.Equal(t, "imsi001", fields[1])

	widths := map[int]int{2: 32, 3: 32, 4: 32, 5: 32, 6: 16}
	for idx, width := range widths {
		assert.Len(t, fields[idx], width, "field %d", idx)
		assert.Equal(t, strings.ToLower(fields[idx]), fields[idx], "field %d must be lowercase", idx)
	}

	assert.Equal(t, fmt.Sprintf("%x", vector.Rand), fields[2])
	assert.Equal(t, fmt.Sprintf("%x", vector.Autn), fields[3])
	assert.Equal(t, fmt.Sprintf("%x", vector.Ik), fields[4])
	assert.Equal(t, fmt.Sprintf("%x", vector.Ck), fields[5])
	assert.Equal(t, fmt.Sprintf("%x", vector.Res), fields[6])
}
