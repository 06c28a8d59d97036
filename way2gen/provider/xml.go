// Package provider builds ir documents from Wayland protocol XML.
package provider

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/cyuria/way2/way2gen/ir"
)

// ErrNotProtocol is returned for a well-formed document whose root
// element is not <protocol>.
var ErrNotProtocol = errors.New("root element is not <protocol>")

var (
	attrDecoder = newAttrDecoder()
	validate    = newValidator()
)

func newAttrDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report attribute names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("schema"), ",")
		return name
	})
	return v
}

// Attribute sets, one per element kind.
type (
	protocolAttrs struct {
		Name string `schema:"name" validate:"required"`
	}

	interfaceAttrs struct {
		Name    string `schema:"name" validate:"required"`
		Version int    `schema:"version" validate:"gte=0"`
	}

	messageAttrs struct {
		Name  string `schema:"name" validate:"required"`
		Type  string `schema:"type"`
		Since int    `schema:"since"`
	}

	argAttrs struct {
		Name      string `schema:"name" validate:"required"`
		Type      string `schema:"type" validate:"required,oneof=int uint fixed object new_id string array fd"`
		Enum      string `schema:"enum"`
		Interface string `schema:"interface"`
		AllowNull bool   `schema:"allow-null"`
	}

	enumAttrs struct {
		Name     string `schema:"name" validate:"required"`
		Bitfield bool   `schema:"bitfield"`
		Since    int    `schema:"since"`
	}

	entryAttrs struct {
		Name  string `schema:"name" validate:"required"`
		Value string `schema:"value" validate:"required"`
		Since int    `schema:"since"`
	}
)

// XMLProvider parses Wayland protocol XML documents.
type XMLProvider struct{}

// ParseFile parses the document at path.
func (p *XMLProvider) ParseFile(path string) (*ir.Protocol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ir.Errorf(ir.CodeParseFailed, "open").In(path, "").Wrap(err)
	}
	defer f.Close()
	return p.Parse(f, path)
}

// Parse reads one document from r. source is used in diagnostics and
// recorded on the returned Protocol.
//
// Interfaces, messages, arguments, enums and entries keep their
// declaration order. The namespace is inferred from the interface names.
func (p *XMLProvider) Parse(r io.Reader, source string) (*ir.Protocol, error) {
	dec := xml.NewDecoder(r)

	root, err := rootElement(dec)
	if err != nil {
		return nil, ir.Errorf(ir.CodeParseFailed, "read root element").In(source, "").Wrap(err)
	}
	if root.Name.Local != "protocol" {
		return nil, ir.Errorf(ir.CodeNotProtocol, "found <%s>", root.Name.Local).In(source, "").Wrap(ErrNotProtocol)
	}

	ps := &parser{dec: dec}
	proto, err := ps.protocol(root)
	if err != nil {
		return nil, ir.Errorf(ir.CodeParseFailed, "invalid document").In(source, "").Wrap(err)
	}
	proto.Source = source
	proto.Namespace = ir.InferNamespace(proto.InterfaceNames())

	return proto, nil
}

func rootElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, errors.New("document has no root element")
		}
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

type parser struct {
	dec *xml.Decoder
}

// children calls fn for every direct child element of the element
// currently open, until its end element is consumed. fn must consume the
// child it is given, either by decoding it or by skipping it.
func (p *parser) children(fn func(xml.StartElement) error) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *parser) attrs(el xml.StartElement, dst any) error {
	values := make(map[string][]string, len(el.Attr))
	for _, a := range el.Attr {
		values[a.Name.Local] = append(values[a.Name.Local], a.Value)
	}
	if err := attrDecoder.Decode(dst, values); err != nil {
		return fmt.Errorf("<%s>: %w", el.Name.Local, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("<%s>: %w", el.Name.Local, describe(err))
	}
	return nil
}

func (p *parser) protocol(start xml.StartElement) (*ir.Protocol, error) {
	var a protocolAttrs
	if err := p.attrs(start, &a); err != nil {
		return nil, err
	}
	proto := &ir.Protocol{Name: a.Name}

	err := p.children(func(el xml.StartElement) error {
		switch el.Name.Local {
		case "copyright":
			var text struct {
				Body string `xml:",chardata"`
			}
			if err := p.dec.DecodeElement(&text, &el); err != nil {
				return err
			}
			if proto.Copyright == "" {
				proto.Copyright = text.Body
			}
			return nil
		case "interface":
			iface, err := p.iface(el)
			if err != nil {
				return err
			}
			proto.Interfaces = append(proto.Interfaces, iface)
			return nil
		default:
			return p.dec.Skip()
		}
	})
	return proto, err
}

func (p *parser) iface(start xml.StartElement) (*ir.Interface, error) {
	var a interfaceAttrs
	if err := p.attrs(start, &a); err != nil {
		return nil, err
	}
	iface := &ir.Interface{Name: a.Name, Version: a.Version}

	err := p.children(func(el xml.StartElement) error {
		switch el.Name.Local {
		case "request":
			msg, err := p.message(el, ir.Request)
			if err != nil {
				return err
			}
			iface.Requests = append(iface.Requests, msg)
		case "event":
			msg, err := p.message(el, ir.Event)
			if err != nil {
				return err
			}
			iface.Events = append(iface.Events, msg)
		case "enum":
			enum, err := p.enum(el)
			if err != nil {
				return err
			}
			iface.Enums = append(iface.Enums, enum)
		default:
			return p.dec.Skip()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("interface %q: %w", a.Name, err)
	}
	return iface, nil
}

func (p *parser) message(start xml.StartElement, kind ir.MessageKind) (*ir.Message, error) {
	var a messageAttrs
	if err := p.attrs(start, &a); err != nil {
		return nil, err
	}
	msg := &ir.Message{Name: a.Name, Kind: kind}

	err := p.children(func(el xml.StartElement) error {
		if el.Name.Local != "arg" {
			return p.dec.Skip()
		}
		var aa argAttrs
		if err := p.attrs(el, &aa); err != nil {
			return err
		}
		argKind, _ := ir.ParseArgKind(aa.Type)
		msg.Args = append(msg.Args, &ir.Arg{
			Name:      aa.Name,
			Kind:      argKind,
			Enum:      aa.Enum,
			Interface: aa.Interface,
			AllowNull: aa.AllowNull,
		})
		return p.dec.Skip()
	})
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", kind, a.Name, err)
	}
	return msg, nil
}

func (p *parser) enum(start xml.StartElement) (*ir.Enum, error) {
	var a enumAttrs
	if err := p.attrs(start, &a); err != nil {
		return nil, err
	}
	enum := &ir.Enum{Name: a.Name, Bitfield: a.Bitfield}

	err := p.children(func(el xml.StartElement) error {
		if el.Name.Local != "entry" {
			return p.dec.Skip()
		}
		var ea entryAttrs
		if err := p.attrs(el, &ea); err != nil {
			return err
		}
		entry, err := parseEntry(ea)
		if err != nil {
			return err
		}
		enum.Entries = append(enum.Entries, entry)
		return p.dec.Skip()
	})
	if err != nil {
		return nil, fmt.Errorf("enum %q: %w", a.Name, err)
	}
	return enum, nil
}

// parseEntry parses an entry value as hexadecimal when it carries a 0x
// prefix and as decimal otherwise. Leading zeros stay decimal.
func parseEntry(a entryAttrs) (ir.Entry, error) {
	raw := strings.TrimSpace(a.Value)
	digits, base := raw, 10
	if len(raw) > 2 && raw[0] == '0' && (raw[1] == 'x' || raw[1] == 'X') {
		digits, base = raw[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return ir.Entry{}, fmt.Errorf("entry %q: invalid value %q", a.Name, a.Value)
	}
	return ir.Entry{
		Name:  a.Name,
		Value: v,
		Hex:   base == 16,
	}, nil
}

// describe flattens validator errors into a single readable error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("missing attribute %q", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("attribute %q must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("attribute %q failed %q", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
