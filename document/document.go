// Package document reads and writes the JSON share document
//
//	{
//	  "keys": {"n": 4, "k": 3},
//	  "1": {"base": "10", "value": "4"},
//	  "2": {"base": "2", "value": "111"}
//	}
//
// where every key other than "keys" is the decimal x-coordinate of a share.
package document

import (
	"bytes"
	"io"
	"slices"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/izouxv/goShamir/bigint"
	"github.com/izouxv/goShamir/shamir"
)

const keysField = "keys"

var (
	// ErrInvalidDocument is returned for a malformed share document.
	ErrInvalidDocument = errors.New("invalid share document")
	// ErrShareCount is returned when n disagrees with the number of shares.
	ErrShareCount = errors.New("share count does not match n")
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary
	// pretty keeps field order when writing
	pretty = jsoniter.Config{
		EscapeHTML:    true,
		SortMapKeys:   true,
		IndentionStep: 2,
	}.Froze()
)

// Keys holds the share count and the threshold.
type Keys struct {
	N int `json:"n"`
	K int `json:"k"`
}

// Document is a decoded share document. Shares are ordered by x-coordinate.
type Document struct {
	Keys
	Shares []shamir.Share
}

type entry struct {
	Base  number `json:"base"`
	Value string `json:"value"`
}

// number accepts both 16 and "16".
type number int

func (n *number) UnmarshalJSON(data []byte) error {
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return errors.Wrapf(ErrInvalidDocument, "base %s is not an integer", data)
	}
	*n = number(v)
	return nil
}

func (n number) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(n)))
}

// Decode reads a share document from r.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read share document")
	}
	return Parse(data)
}

// Parse decodes a share document and checks it for consistency.
func Parse(data []byte) (*Document, error) {
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrapf(ErrInvalidDocument, "decode: %v", err)
	}

	raw, ok := fields[keysField]
	if !ok {
		return nil, errors.Wrap(ErrInvalidDocument, `missing "keys"`)
	}
	doc := &Document{}
	if err := json.Unmarshal(raw, &doc.Keys); err != nil {
		return nil, errors.Wrapf(ErrInvalidDocument, "keys: %v", err)
	}
	delete(fields, keysField)

	xs := make(map[string]bigint.Int, len(fields))
	seen := make(map[bigint.Int]string, len(fields))
	for id, raw := range fields {
		x, err := bigint.Parse(id)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidDocument, "share id %q: %v", id, err)
		}
		if prev, ok := seen[x]; ok {
			return nil, errors.Wrapf(ErrInvalidDocument, "share ids %q and %q name the same x", prev, id)
		}
		seen[x] = id
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, errors.Wrapf(ErrInvalidDocument, "share %q: %v", id, err)
		}
		xs[id] = x
		doc.Shares = append(doc.Shares, shamir.Share{ID: id, Base: int(e.Base), Value: e.Value})
	}
	slices.SortFunc(doc.Shares, func(a, b shamir.Share) int {
		return xs[a.ID].Cmp(xs[b.ID])
	})

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks n against the shares and the range of k.
func (d *Document) Validate() error {
	if d.N != len(d.Shares) {
		return errors.Wrapf(ErrShareCount, "n=%d, got %d shares", d.N, len(d.Shares))
	}
	if d.K < 2 || d.K > d.N {
		return errors.Wrapf(ErrInvalidDocument, "k=%d must be in [2, %d]", d.K, d.N)
	}
	return nil
}

// Encode writes doc in share document form, shares in their current order.
func Encode(w io.Writer, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	stream := pretty.BorrowStream(w)
	defer pretty.ReturnStream(stream)

	stream.WriteObjectStart()
	stream.WriteObjectField(keysField)
	stream.WriteVal(doc.Keys)
	for _, s := range doc.Shares {
		stream.WriteMore()
		stream.WriteObjectField(s.ID)
		stream.WriteVal(entry{Base: number(s.Base), Value: s.Value})
	}
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return errors.Wrap(stream.Error, "encode share document")
	}
	return errors.Wrap(stream.Flush(), "write share document")
}

// Marshal is Encode into a byte slice.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
