package graph

import (
	"bytes"
	"strconv"
	"strings"
)

// Encode serializes an entity as a flat tagged record: the discriminator
// first, then the variant's fields in a fixed order. The output is JSON
// text, byte-compatible with scanners that look for `"field":` tokens.
func Encode(e Entity) []byte {
	var b bytes.Buffer
	b.WriteByte('{')
	writeString(&b, "kind", e.Kind())
	switch v := e.(type) {
	case *Block:
		writeUint(&b, "height", v.Height)
		writeString(&b, "hash", v.Hash)
		writeInt(&b, "timestamp", v.Timestamp)
		writeUint(&b, "nonce", v.Nonce)
		writeUint(&b, "bits", v.Bits)
		writeInt(&b, "version", v.Version)
	case *Transaction:
		writeUint(&b, "tx_id", v.TxID)
		writeString(&b, "hash", v.Hash)
		writeUint(&b, "locktime", uint64(v.Locktime))
		writeInt(&b, "version", int64(v.Version))
		writeInt(&b, "fee", v.Fee)
		writeInt(&b, "size", v.Size)
		writeInt(&b, "weight", v.Weight)
		writeUint(&b, "block_height", v.BlockHeight)
	case *Output:
		writeUint(&b, "tx_id", v.TxID)
		writeUint(&b, "vout", uint64(v.Vout))
		writeInt(&b, "value", v.Value)
		writeString(&b, "script_type", v.ScriptType)
	case *Input:
		writeUint(&b, "spent_tx_id", v.SpentTxID)
		writeUint(&b, "spent_vout", uint64(v.SpentVout))
		writeUint(&b, "sequence", uint64(v.Sequence))
	case *Address:
		writeString(&b, "address_id", v.AddressID)
		writeString(&b, "address", v.Address)
		writeString(&b, "address_type", v.AddressType)
	case *TxRef:
		writeUint(&b, "tx_id", v.TxID)
	case *OutputRef:
		writeUint(&b, "tx_id", v.TxID)
		writeUint(&b, "vout", uint64(v.Vout))
	case *AddrRef:
		writeString(&b, "address_id", v.AddressID)
	}
	b.WriteByte('}')
	return b.Bytes()
}

// Decode deserializes a record blob. A blob whose discriminator or any
// required field is missing yields ok=false; corruption is reported as
// absence, not as an error.
func Decode(blob []byte) (Entity, bool) {
	fields := parseFields(blob)
	kind, ok := fieldString(fields, "kind")
	if !ok {
		return nil, false
	}
	switch kind {
	case KindBlock:
		return decodeBlock(fields)
	case KindTx:
		return decodeTransaction(fields)
	case KindOutput:
		return decodeOutput(fields)
	case KindInput:
		return decodeInput(fields)
	case KindAddress:
		return decodeAddress(fields)
	case KindTxRef:
		return decodeTxRef(fields)
	case KindOutputRef:
		return decodeOutputRef(fields)
	case KindAddrRef:
		return decodeAddrRef(fields)
	}
	return nil, false
}

// DecodeBlock decodes a blob expected to hold a Block.
func DecodeBlock(blob []byte) (*Block, bool) {
	e, ok := Decode(blob)
	if !ok {
		return nil, false
	}
	v, ok := e.(*Block)
	return v, ok
}

// DecodeTransaction decodes a blob expected to hold a Transaction.
func DecodeTransaction(blob []byte) (*Transaction, bool) {
	e, ok := Decode(blob)
	if !ok {
		return nil, false
	}
	v, ok := e.(*Transaction)
	return v, ok
}

// DecodeOutput decodes a blob expected to hold an Output.
func DecodeOutput(blob []byte) (*Output, bool) {
	e, ok := Decode(blob)
	if !ok {
		return nil, false
	}
	v, ok := e.(*Output)
	return v, ok
}

// DecodeInput decodes a blob expected to hold an Input.
func DecodeInput(blob []byte) (*Input, bool) {
	e, ok := Decode(blob)
	if !ok {
		return nil, false
	}
	v, ok := e.(*Input)
	return v, ok
}

// DecodeAddress decodes a blob expected to hold an Address.
func DecodeAddress(blob []byte) (*Address, bool) {
	e, ok := Decode(blob)
	if !ok {
		return nil, false
	}
	v, ok := e.(*Address)
	return v, ok
}

// DecodeTxRef decodes a blob expected to hold a TxRef.
func DecodeTxRef(blob []byte) (*TxRef, bool) {
	e, ok := Decode(blob)
	if !ok {
		return nil, false
	}
	v, ok := e.(*TxRef)
	return v, ok
}

// DecodeOutputRef decodes a blob expected to hold an OutputRef.
func DecodeOutputRef(blob []byte) (*OutputRef, bool) {
	e, ok := Decode(blob)
	if !ok {
		return nil, false
	}
	v, ok := e.(*OutputRef)
	return v, ok
}

// DecodeAddrRef decodes a blob expected to hold an AddrRef.
func DecodeAddrRef(blob []byte) (*AddrRef, bool) {
	e, ok := Decode(blob)
	if !ok {
		return nil, false
	}
	v, ok := e.(*AddrRef)
	return v, ok
}

func decodeBlock(fields map[string]string) (*Block, bool) {
	height, ok1 := fieldUint(fields, "height")
	hash, ok2 := fieldString(fields, "hash")
	timestamp, ok3 := fieldInt(fields, "timestamp")
	nonce, ok4 := fieldUint(fields, "nonce")
	bits, ok5 := fieldUint(fields, "bits")
	version, ok6 := fieldInt(fields, "version")
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
		return nil, false
	}
	return &Block{
		Height:    height,
		Hash:      hash,
		Timestamp: timestamp,
		Nonce:     nonce,
		Bits:      bits,
		Version:   version,
	}, true
}

func decodeTransaction(fields map[string]string) (*Transaction, bool) {
	txID, ok1 := fieldUint(fields, "tx_id")
	hash, ok2 := fieldString(fields, "hash")
	locktime, ok3 := fieldUint(fields, "locktime")
	version, ok4 := fieldInt(fields, "version")
	fee, ok5 := fieldInt(fields, "fee")
	size, ok6 := fieldInt(fields, "size")
	weight, ok7 := fieldInt(fields, "weight")
	blockHeight, ok8 := fieldUint(fields, "block_height")
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8) {
		return nil, false
	}
	return &Transaction{
		TxID:        txID,
		Hash:        hash,
		Locktime:    uint32(locktime),
		Version:     int32(version),
		Fee:         fee,
		Size:        size,
		Weight:      weight,
		BlockHeight: blockHeight,
	}, true
}

func decodeOutput(fields map[string]string) (*Output, bool) {
	txID, ok1 := fieldUint(fields, "tx_id")
	vout, ok2 := fieldUint(fields, "vout")
	value, ok3 := fieldInt(fields, "value")
	scriptType, ok4 := fieldString(fields, "script_type")
	if !(ok1 && ok2 && ok3 && ok4) {
		return nil, false
	}
	return &Output{
		TxID:       txID,
		Vout:       uint32(vout),
		Value:      value,
		ScriptType: scriptType,
	}, true
}

func decodeInput(fields map[string]string) (*Input, bool) {
	spentTxID, ok1 := fieldUint(fields, "spent_tx_id")
	spentVout, ok2 := fieldUint(fields, "spent_vout")
	sequence, ok3 := fieldUint(fields, "sequence")
	if !(ok1 && ok2 && ok3) {
		return nil, false
	}
	return &Input{
		SpentTxID: spentTxID,
		SpentVout: uint32(spentVout),
		Sequence:  uint32(sequence),
	}, true
}

func decodeAddress(fields map[string]string) (*Address, bool) {
	addressID, ok1 := fieldString(fields, "address_id")
	address, ok2 := fieldString(fields, "address")
	addressType, ok3 := fieldString(fields, "address_type")
	if !(ok1 && ok2 && ok3) {
		return nil, false
	}
	return &Address{
		AddressID:   addressID,
		Address:     address,
		AddressType: addressType,
	}, true
}

func decodeTxRef(fields map[string]string) (*TxRef, bool) {
	txID, ok := fieldUint(fields, "tx_id")
	if !ok {
		return nil, false
	}
	return &TxRef{TxID: txID}, true
}

func decodeOutputRef(fields map[string]string) (*OutputRef, bool) {
	txID, ok1 := fieldUint(fields, "tx_id")
	vout, ok2 := fieldUint(fields, "vout")
	if !(ok1 && ok2) {
		return nil, false
	}
	return &OutputRef{TxID: txID, Vout: uint32(vout)}, true
}

func decodeAddrRef(fields map[string]string) (*AddrRef, bool) {
	addressID, ok := fieldString(fields, "address_id")
	if !ok {
		return nil, false
	}
	return &AddrRef{AddressID: addressID}, true
}

func writeString(b *bytes.Buffer, name, value string) {
	writeName(b, name)
	b.WriteString(strconv.Quote(value))
}

func writeUint(b *bytes.Buffer, name string, value uint64) {
	writeName(b, name)
	b.WriteString(strconv.FormatUint(value, 10))
}

func writeInt(b *bytes.Buffer, name string, value int64) {
	writeName(b, name)
	b.WriteString(strconv.FormatInt(value, 10))
}

func writeName(b *bytes.Buffer, name string) {
	if b.Len() > 1 {
		b.WriteByte(',')
	}
	b.WriteByte('"')
	b.WriteString(name)
	b.WriteString(`":`)
}

// parseFields splits a record blob into its top-level name -> raw-value
// pairs. The value scanner tracks quote state (with escapes) and
// brace/bracket depth, so delimiter characters inside a quoted string or
// a nested structure never terminate a field early.
func parseFields(blob []byte) map[string]string {
	fields := make(map[string]string)
	n := len(blob)
	i := 0
	for i < n && blob[i] != '{' {
		i++
	}
	if i == n {
		return fields
	}
	i++

	for i < n {
		for i < n && isFieldSep(blob[i]) {
			i++
		}
		if i >= n || blob[i] == '}' {
			break
		}
		if blob[i] != '"' {
			break
		}
		i++
		nameStart := i
		for i < n && blob[i] != '"' {
			if blob[i] == '\\' {
				i++
			}
			i++
		}
		if i >= n {
			break
		}
		name := string(blob[nameStart:i])
		i++
		for i < n && blob[i] == ' ' {
			i++
		}
		if i >= n || blob[i] != ':' {
			break
		}
		i++
		for i < n && blob[i] == ' ' {
			i++
		}

		valueStart := i
		depth := 0
		inQuote := false
	value:
		for i < n {
			c := blob[i]
			if inQuote {
				if c == '\\' {
					i += 2
					continue
				}
				if c == '"' {
					inQuote = false
				}
				i++
				continue
			}
			switch c {
			case '"':
				inQuote = true
			case '{', '[':
				depth++
			case '}', ']':
				if depth == 0 {
					break value
				}
				depth--
			case ',':
				if depth == 0 {
					break value
				}
			}
			i++
		}
		fields[name] = strings.TrimSpace(string(blob[valueStart:i]))
	}
	return fields
}

func isFieldSep(c byte) bool {
	return c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func fieldString(fields map[string]string, name string) (string, bool) {
	raw, ok := fields[name]
	if !ok || len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", false
	}
	if s, err := strconv.Unquote(raw); err == nil {
		return s, true
	}
	// Unescaped delimiter characters inside the string; take the raw
	// interior.
	return raw[1 : len(raw)-1], true
}

func fieldUint(fields map[string]string, name string) (uint64, bool) {
	raw, ok := fields[name]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func fieldInt(fields map[string]string, name string) (int64, bool) {
	raw, ok := fields[name]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
