package did

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pilacorp/go-longform-did/did/wire"
)

// Field numbers of the nested messages inside the encoded state. Only the
// fields that carry key material are decoded; everything else is skipped.
const (
	fieldCreateOperation = 1 // operation envelope -> create operation

	fieldCreationData = 1 // create operation -> creation data

	fieldPublicKeys = 2 // creation data -> public key entry (repeated)
	fieldServices   = 3 // creation data -> services, never decoded

	fieldKeyID            = 1 // public key entry -> id string
	fieldKeyUsage         = 2 // public key entry -> usage enum
	fieldECKeyData        = 8 // public key entry -> legacy x/y coordinates
	fieldCompressedECData = 9 // public key entry -> compressed key data

	fieldCurve = 1 // key data -> curve name
	fieldData  = 2 // compressed key data -> raw bytes; legacy -> x coordinate
	fieldY     = 3 // legacy key data -> y coordinate
)

// maxNestingDepth bounds recursion on adversarial input. The format itself
// has five levels.
const maxNestingDepth = 8

// decoder threads the walker through the nested message layers and collects
// complete key records.
type decoder struct {
	log     *slog.Logger
	observe func(fieldNumber uint64)
	depth   int

	sawCreate bool
	keys      []KeyRecord
}

// run decodes the operation envelope. A truncated envelope is only an error
// when nothing usable was recovered from it; nested issues reduce key yield
// but never fail the decode.
func (d *decoder) run(state []byte) ([]KeyRecord, error) {
	err := wire.Walk(state, wire.FieldHandler{
		Observer: d.observe,
		Bytes: func(fieldNumber uint64, payload []byte) {
			if fieldNumber == fieldCreateOperation {
				d.sawCreate = true
				d.decodeCreateOperation(payload)
			}
		},
	})
	if err != nil {
		if !d.sawCreate {
			return nil, err
		}
		d.log.Warn("operation envelope ended early", "error", err)
	}
	return d.keys, nil
}

func (d *decoder) decodeCreateOperation(buf []byte) {
	if !d.enter() {
		return
	}
	defer d.leave()

	err := wire.Walk(buf, wire.FieldHandler{
		Observer: d.observe,
		Bytes: func(fieldNumber uint64, payload []byte) {
			if fieldNumber == fieldCreationData {
				d.decodeCreationData(payload)
			}
		},
	})
	if err != nil {
		d.log.Debug("create operation ended early", "error", err)
	}
}

func (d *decoder) decodeCreationData(buf []byte) {
	if !d.enter() {
		return
	}
	defer d.leave()

	err := wire.Walk(buf, wire.FieldHandler{
		Observer: d.observe,
		Bytes: func(fieldNumber uint64, payload []byte) {
			// Services (field 3) carry no key material and are skipped.
			if fieldNumber == fieldPublicKeys {
				d.decodePublicKey(payload)
			}
		},
	})
	if err != nil {
		d.log.Debug("creation data ended early", "error", err)
	}
}

// decodePublicKey decodes one public-key entry. The record is appended only
// when id, usage and key bytes are all present; partial entries are dropped.
func (d *decoder) decodePublicKey(buf []byte) {
	if !d.enter() {
		return
	}
	defer d.leave()

	var rec KeyRecord
	var haveID, haveUsage, haveCompressed bool

	err := wire.Walk(buf, wire.FieldHandler{
		Observer: d.observe,
		Varint: func(fieldNumber uint64, value uint64) {
			if fieldNumber == fieldKeyUsage {
				rec.Usage = KeyUsage(value)
				haveUsage = true
			}
		},
		Bytes: func(fieldNumber uint64, payload []byte) {
			switch fieldNumber {
			case fieldKeyID:
				if utf8.Valid(payload) {
					rec.ID = string(payload)
					haveID = true
				} else {
					d.log.Debug("key id is not valid UTF-8, entry dropped")
				}
			case fieldCompressedECData:
				curve, data, ok := d.decodeCompressedKeyData(payload)
				if ok {
					rec.Curve = curve
					rec.PublicKey = data
					haveCompressed = true
				}
			case fieldECKeyData:
				if haveCompressed {
					return
				}
				curve, data, ok := d.decodeLegacyKeyData(payload)
				if ok {
					rec.Curve = curve
					rec.PublicKey = data
				}
			}
		},
	})
	if err != nil {
		d.log.Debug("public key entry ended early", "error", err)
	}

	if haveID && haveUsage && len(rec.PublicKey) > 0 {
		d.keys = append(d.keys, rec)
	}
}

// decodeCompressedKeyData reads the curve name and raw key bytes from a
// compressed key data sub-message.
func (d *decoder) decodeCompressedKeyData(buf []byte) (string, []byte, bool) {
	if !d.enter() {
		return "", nil, false
	}
	defer d.leave()

	var curve string
	var data []byte

	err := wire.Walk(buf, wire.FieldHandler{
		Observer: d.observe,
		Bytes: func(fieldNumber uint64, payload []byte) {
			switch fieldNumber {
			case fieldCurve:
				curve = strings.ToLower(string(payload))
			case fieldData:
				data = append([]byte(nil), payload...)
			}
		},
	})
	if err != nil {
		d.log.Debug("compressed key data ended early", "error", err)
	}

	return curve, data, len(data) > 0
}

// decodeLegacyKeyData reads the uncompressed x/y coordinate form. For curves
// where a single coordinate suffices the y coordinate is discarded; for
// secp256k1 both coordinates are joined into an uncompressed point.
func (d *decoder) decodeLegacyKeyData(buf []byte) (string, []byte, bool) {
	if !d.enter() {
		return "", nil, false
	}
	defer d.leave()

	var curve string
	var x, y []byte

	err := wire.Walk(buf, wire.FieldHandler{
		Observer: d.observe,
		Bytes: func(fieldNumber uint64, payload []byte) {
			switch fieldNumber {
			case fieldCurve:
				curve = strings.ToLower(string(payload))
			case fieldData:
				x = append([]byte(nil), payload...)
			case fieldY:
				y = append([]byte(nil), payload...)
			}
		},
	})
	if err != nil {
		d.log.Debug("legacy key data ended early", "error", err)
	}

	if curve == "secp256k1" {
		if len(x) == 0 || len(y) == 0 {
			return curve, nil, false
		}
		point := make([]byte, 0, 1+len(x)+len(y))
		point = append(point, 0x04)
		point = append(point, x...)
		point = append(point, y...)
		return curve, point, true
	}

	return curve, x, len(x) > 0
}

func (d *decoder) enter() bool {
	if d.depth >= maxNestingDepth {
		d.log.Debug("nesting depth limit reached")
		return false
	}
	d.depth++
	return true
}

func (d *decoder) leave() {
	d.depth--
}
