package entities

import (
	"bytes"
	"encoding/gob"
	"errors"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              string
	Name            string
	Price           decimal.Decimal
	Quantity        int
	ImageURL        string
	MachineLocation string
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product name already taken")
)

func (p *Product) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Product) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(p)
}

func init() {
	gob.Register(Product{})
}
