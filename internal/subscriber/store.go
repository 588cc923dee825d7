// Package subscriber holds the provisioned subscriber database. Each record
// maps an identity (IMSI) to a raw colon-delimited value whose interpretation
// is deferred to the request type: SIM requests return it verbatim, AKA
// requests parse it into milenage key material.
package subscriber

import (
	"bufio"
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/telcosim/hlrauc/internal/logger"
)

// Store is read-only after Load; requests never mutate it.
type Store struct {
	records map[string]string
}

// Load reads a line-oriented subscriber database. Lines starting with '#' are
// comments. Every other non-empty line is "<identity>:<rest-of-line>".
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open subscriber db [%s]", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logger.StoreLog.Warnf("close subscriber db: %+v", closeErr)
		}
	}()

	s := &Store{records: make(map[string]string)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		identity, rest, _ := strings.Cut(line, ":")
		s.records[identity] = rest
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read subscriber db [%s]", path)
	}

	return s, nil
}

func (s *Store) Lookup(identity string) (string, bool) {
	raw, ok := s.records[identity]
	return raw, ok
}

func (s *Store) Len() int {
	return len(s.records)
}

// AKAFields is the structured view of an AKA-capable record:
// "<k-hex>:<opc-hex>:<amf-hex>:<sqn-hex>".
type AKAFields struct {
	K   [16]byte
	Opc [16]byte
	Amf [2]byte
	Sqn [6]byte
}

// ParseAKA interprets a raw record value as AKA key material. Field widths
// are fixed; any width or hex error makes the record unusable for AKA.
func ParseAKA(raw string) (*AKAFields, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 4 {
		return nil, errors.Errorf("malformed AKA record: got %d fields, want 4", len(parts))
	}

	fields := &AKAFields{}
	if err := decodeField(fields.K[:], parts[0], "K"); err != nil {
		return nil, err
	}
	if err := decodeField(fields.Opc[:], parts[1], "OPc"); err != nil {
		return nil, err
	}
	if err := decodeField(fields.Amf[:], parts[2], "AMF"); err != nil {
		return nil, err
	}
	if err := decodeField(fields.Sqn[:], parts[3], "SQN"); err != nil {
		return nil, err
	}

	return fields, nil
}

func decodeField(dst []byte, field string, name string) error {
	decoded, err := hex.DecodeString(field)
	if err != nil {
		return errors.Wrapf(err, "malformed AKA record: %s field", name)
	}
	if len(decoded) != len(dst) {
		return errors.Errorf("malformed AKA record: %s field is %d bytes, want %d",
			name, len(decoded), len(dst))
	}
	copy(dst, decoded)
	return nil
}
