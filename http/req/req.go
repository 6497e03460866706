package req

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/nightshift"
)

// A Parser decodes and validates query parameters.
type Parser struct {
	dec *schema.Decoder
	validator
}

// NewParser constructs a Parser ignoring query parameters no field asks for.
func NewParser() *Parser {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return &Parser{dec: dec, validator: newValidator()}
}

// ParseQueryParams decodes params into structPtr.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	rv := reflect.ValueOf(structPtr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("nightshift/http/req: %w: ParseQueryParams called with %T, not a pointer to a struct", nightshift.ErrBadAny, structPtr)
	}

	if err := p.dec.Decode(structPtr, params); err != nil {
		return fmt.Errorf("nightshift/http/req: failed decoding request query params: %w", translateDecoderError(err))
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("nightshift/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseRequest calls ParseQueryParams with the query in r.URL.
func (p *Parser) ParseRequest(r *http.Request, structPtr any) error {
	return p.ParseQueryParams(r.URL.Query(), structPtr)
}
