// Package ksuid implements K-Sortable Unique IDentifiers.
//
// A KSUID is a 20-byte identifier: a 4-byte timestamp counting seconds
// since a custom epoch (2014-05-13T16:53:20Z) followed by 16 random
// bytes. IDs sort by creation time in both their binary form and their
// 27-character base-62 string form, so running a list of KSUIDs through
// the UNIX sort command orders them by generation time.
//
// Basic usage:
//
//	id := ksuid.New()
//	fmt.Println(id) // 0ujtsYcgvSTl8PAuAdqWYSMnLOv
//
//	ids := ksuid.NewBatch(100)
//
// KSUIDs work well as database primary keys because they are ordered -
// this reduces index fragmentation compared to random UUIDs - while the
// 128-bit random payload keeps them unguessable.
package ksuid

import (
	"bytes"
	"crypto/rand"
	"database/sql/driver"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	// Epoch is the KSUID epoch, 2014-05-13T16:53:20Z as Unix seconds.
	// Starting in 2014 instead of 1970 extends the timestamp range to
	// the year 2150.
	Epoch uint64 = 1400000000

	// MaxTimestamp is the largest Unix timestamp a KSUID can carry.
	MaxTimestamp uint64 = Epoch + math.MaxUint32

	// PayloadSize is the length of the random payload in bytes.
	PayloadSize = 16

	// BinarySize is the length of the binary representation.
	BinarySize = timestampSize + PayloadSize

	// EncodedSize is the length of the base-62 string representation.
	EncodedSize = 27

	timestampSize = 4
)

var (
	// Errors
	ErrInvalidTimestamp     = errors.New("ksuid: timestamp outside representable range")
	ErrInvalidPayloadLength = errors.New("ksuid: payload must be exactly 16 bytes")
	ErrInvalidKSUID         = errors.New("ksuid: not a valid 20-byte KSUID")
	ErrInvalidKSUIDString   = errors.New("ksuid: not a valid KSUID string")
	ErrInvalidBase62Digit   = errors.New("ksuid: invalid base62 digit")
)

// KSUID is a K-sortable unique identifier.
//
// The zero value equals Min and reports IsNil. KSUIDs are immutable:
// every operation returns a new value.
type KSUID [BinarySize]byte

var (
	// Min is the smallest possible KSUID, 20 zero bytes. It doubles as
	// the nil value.
	Min KSUID

	// Max is the largest possible KSUID, 20 bytes of 0xFF.
	Max = KSUID{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}
)

// New creates a KSUID for the current time with a random payload,
// panicking if the random source fails. Most callers want this.
func New() KSUID {
	id, err := NewRandom()
	if err != nil {
		panic(err)
	}
	return id
}

// NewRandom creates a KSUID for the current time with a random payload.
func NewRandom() (KSUID, error) {
	return NewWithTime(time.Now())
}

// NewWithTime creates a KSUID for the given time with a random payload.
func NewWithTime(t time.Time) (KSUID, error) {
	var payload [PayloadSize]byte
	if _, err := rand.Read(payload[:]); err != nil {
		return Min, fmt.Errorf("ksuid: reading random payload: %w", err)
	}
	return FromParts(uint64(t.Unix()), payload[:])
}

// FromParts builds a KSUID from an absolute Unix timestamp in seconds
// and a 16-byte payload. The boundary values are constructible: an
// epoch-exact timestamp with an all-zero payload produces Min.
func FromParts(timestamp uint64, payload []byte) (KSUID, error) {
	if timestamp < Epoch || timestamp > MaxTimestamp {
		return Min, fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidTimestamp, timestamp, Epoch, MaxTimestamp)
	}
	if len(payload) != PayloadSize {
		return Min, fmt.Errorf("%w: got %d", ErrInvalidPayloadLength, len(payload))
	}

	var id KSUID
	binary.BigEndian.PutUint32(id[:timestampSize], uint32(timestamp-Epoch))
	copy(id[timestampSize:], payload)
	return id, nil
}

// FromBytes creates a KSUID from its 20-byte binary form.
func FromBytes(b []byte) (KSUID, error) {
	if !IsValidBytes(b) {
		return Min, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKSUID, len(b), BinarySize)
	}
	var id KSUID
	copy(id[:], b)
	return id, nil
}

// IsValidBytes reports whether b is a well-formed binary KSUID. Every
// 20-byte buffer is one; the check enforces length.
func IsValidBytes(b []byte) bool {
	return len(b) == BinarySize
}

// IsValidString reports whether s is a well-formed KSUID string. Beyond
// length and charset it bounds s by MaxString: 27 base-62 digits can
// name values past 2^160-1, and those have no binary form.
func IsValidString(s string) bool {
	if len(s) != EncodedSize {
		return false
	}
	for i := 0; i < EncodedSize; i++ {
		if base62DecodeMap[s[i]] == 0xFF {
			return false
		}
	}
	return s <= MaxString
}

// Timestamp returns the creation time as absolute Unix seconds.
func (k KSUID) Timestamp() uint64 {
	return Epoch + uint64(binary.BigEndian.Uint32(k[:timestampSize]))
}

// Time returns the creation time as a time.Time.
func (k KSUID) Time() time.Time {
	return time.Unix(int64(k.Timestamp()), 0)
}

// Payload returns a copy of the 16-byte random payload.
func (k KSUID) Payload() []byte {
	p := make([]byte, PayloadSize)
	copy(p, k[timestampSize:])
	return p
}

// Bytes returns a copy of the 20-byte binary form.
func (k KSUID) Bytes() []byte {
	b := make([]byte, BinarySize)
	copy(b, k[:])
	return b
}

// Next returns the successor KSUID: the payload incremented by one,
// carrying into the timestamp when the payload overflows. Only Max has
// no successor; asking for it fails with ErrInvalidTimestamp.
func (k KSUID) Next() (KSUID, error) {
	next := k
	for i := BinarySize - 1; i >= timestampSize; i-- {
		next[i]++
		if next[i] != 0 {
			return next, nil
		}
	}

	// Payload wrapped to zero, carry into the timestamp.
	ts := binary.BigEndian.Uint32(next[:timestampSize])
	if ts == math.MaxUint32 {
		return Min, fmt.Errorf("%w: Max has no successor", ErrInvalidTimestamp)
	}
	binary.BigEndian.PutUint32(next[:timestampSize], ts+1)
	return next, nil
}

// Prev returns the predecessor KSUID: the payload decremented by one,
// borrowing from the timestamp when the payload underflows. Only Min
// has no predecessor; asking for it fails with ErrInvalidTimestamp.
func (k KSUID) Prev() (KSUID, error) {
	prev := k
	for i := BinarySize - 1; i >= timestampSize; i-- {
		prev[i]--
		if prev[i] != 0xFF {
			return prev, nil
		}
	}

	// Payload wrapped to all 0xFF, borrow from the timestamp.
	ts := binary.BigEndian.Uint32(prev[:timestampSize])
	if ts == 0 {
		return Min, fmt.Errorf("%w: Min has no predecessor", ErrInvalidTimestamp)
	}
	binary.BigEndian.PutUint32(prev[:timestampSize], ts-1)
	return prev, nil
}

// Compare returns:
//
//	-1 if k < other (k is earlier)
//	 0 if k == other
//	+1 if k > other (k is later)
//
// Byte order and string order agree, so either form sorts identically.
func (k KSUID) Compare(other KSUID) int {
	return bytes.Compare(k[:], other[:])
}

// Equal returns true if KSUIDs are equal.
func (k KSUID) Equal(other KSUID) bool {
	return k == other
}

// Less returns true if k < other (for sorting).
func (k KSUID) Less(other KSUID) bool {
	return k.Compare(other) < 0
}

// IsNil returns true if the KSUID is the zero value.
func (k KSUID) IsNil() bool {
	return k == Min
}

// Age returns how long ago this KSUID was created.
func (k KSUID) Age() time.Duration {
	return time.Since(k.Time())
}

// Sort orders ids by creation time, in place.
func Sort(ids []KSUID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}

// IsSorted reports whether ids are in creation-time order.
func IsSorted(ids []KSUID) bool {
	return sort.SliceIsSorted(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}

// Text marshaling support
func (k KSUID) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *KSUID) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// JSON marshaling/unmarshaling support
func (k KSUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *KSUID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// SQL database support
func (k KSUID) Value() (driver.Value, error) {
	return k.String(), nil
}

func (k *KSUID) Scan(value interface{}) error {
	if value == nil {
		*k = Min
		return nil
	}

	switch v := value.(type) {
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*k = parsed
		return nil
	case []byte:
		if len(v) == BinarySize {
			parsed, err := FromBytes(v)
			if err != nil {
				return err
			}
			*k = parsed
			return nil
		}
		return k.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into KSUID", value)
	}
}

// Version information
const (
	Version = "1.0.0"
	Name    = "KSUID"
)
