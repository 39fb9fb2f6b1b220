// Package metadata builds and writes the marketplace JSON record for each generated item.
package metadata

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"strconv"

	"github.com/listenupapp/traitmint/internal/combination"
	domainerrors "github.com/listenupapp/traitmint/internal/errors"
	"github.com/listenupapp/traitmint/internal/validation"
)

// Indent is the indentation used for every record on disk.
const Indent = "    "

// Attribute is one trait entry in a record.
type Attribute struct {
	TraitType string `json:"trait_type" validate:"required"`
	Value     string `json:"value" validate:"required"`
}

// Record is the metadata document for one item.
// Field order is the order written to disk.
type Record struct {
	Name            string      `json:"name" validate:"required"`
	Description     string      `json:"description"`
	Image           string      `json:"image" validate:"required"`
	Attributes      []Attribute `json:"attributes" validate:"dive"`
	BackgroundColor string      `json:"background_color,omitempty" validate:"omitempty,hexadecimal,len=6"`
}

// Template holds the collection-wide parts of every record.
type Template struct {
	NamePrefix   string
	Description  string
	ImageBaseURI string
}

// Build returns the record for item id with the given traits.
// Attributes follow the combination's category order.
func (t Template) Build(id int, combo combination.Combination) Record {
	itemID := strconv.Itoa(id)

	attributes := make([]Attribute, 0, len(combo))
	for _, pair := range combo {
		attributes = append(attributes, Attribute{
			TraitType: pair.Category,
			Value:     pair.Value(),
		})
	}

	return Record{
		Name:        t.NamePrefix + itemID,
		Description: t.Description,
		Image:       t.ImageBaseURI + "/" + itemID + ".png",
		Attributes:  attributes,
	}
}

// Encode renders a record as indented JSON.
func Encode(rec Record) ([]byte, error) {
	data, err := json.Marshal(rec, jsontext.WithIndent(Indent))
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "encode metadata")
	}
	return data, nil
}

// Decode parses and validates a record previously produced by Encode.
func Decode(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, domainerrors.Wrap(err, domainerrors.CodeDecode, "decode metadata")
	}
	if err := validation.New().Validate(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}
