package document

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/izouxv/goShamir/bigint"
	"github.com/izouxv/goShamir/consensus"
)

// Report is the JSON form of a consensus result.
type Report struct {
	ID        string     `json:"id"`
	Secret    bigint.Int `json:"secret"`
	SecretHex string     `json:"secret_hex"`
	Votes     int        `json:"votes"`
	Subsets   int        `json:"subsets"`
	Failed    int        `json:"failed"`
	Distinct  int        `json:"distinct"`
	Tied      bool       `json:"tied"`
	Good      []string   `json:"good"`
	Bad       []string   `json:"bad"`

	Commitment string `json:"commitment,omitempty"`
	Address    string `json:"address,omitempty"`
}

// NewReport builds a report from res.
func NewReport(res *consensus.Result) *Report {
	r := &Report{
		ID:        res.ID,
		Secret:    res.Secret,
		SecretHex: hexutil.EncodeBig(toBig(res.Secret)),
		Votes:     res.Votes,
		Subsets:   res.Subsets,
		Failed:    res.Failed,
		Distinct:  len(res.Distinct),
		Tied:      res.Tied,
		Good:      append([]string{}, res.Good...),
		Bad:       append([]string{}, res.Bad...),
	}
	return r
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	_, err = w.Write(append(out, '\n'))
	return errors.Wrap(err, "write report")
}

func toBig(x bigint.Int) *big.Int {
	v, _ := new(big.Int).SetString(x.String(), 10)
	return v
}
