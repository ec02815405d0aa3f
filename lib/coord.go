package lib

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Coord identifies one transaction output as a (tx_id, vout) pair.
type Coord struct {
	TxID uint64
	Vout uint32
}

// NewCoord creates a Coord from its parts.
func NewCoord(txID uint64, vout uint32) Coord {
	return Coord{TxID: txID, Vout: vout}
}

// ParseCoord parses a coordinate string in "txid:vout" form.
func ParseCoord(s string) (Coord, error) {
	txPart, voutPart, found := strings.Cut(s, ":")
	if !found {
		return Coord{}, fmt.Errorf("malformed output coordinate %q", s)
	}
	txID, err := strconv.ParseUint(txPart, 10, 64)
	if err != nil {
		return Coord{}, fmt.Errorf("malformed output coordinate %q: %w", s, err)
	}
	vout, err := strconv.ParseUint(voutPart, 10, 32)
	if err != nil {
		return Coord{}, fmt.Errorf("malformed output coordinate %q: %w", s, err)
	}
	return Coord{TxID: txID, Vout: uint32(vout)}, nil
}

// String returns the coordinate in "txid:vout" form.
func (c Coord) String() string {
	return strconv.FormatUint(c.TxID, 10) + ":" + strconv.FormatUint(uint64(c.Vout), 10)
}

// MarshalJSON serializes to "txid:vout" form.
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON deserializes from "txid:vout" form.
func (c *Coord) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCoord(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
