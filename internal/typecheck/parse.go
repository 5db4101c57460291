package typecheck

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ParseDescriptor parses a textual type expression into a descriptor.
// The grammar covers the built-in descriptor families:
//
//	int | none
//	list[int]
//	dict[str, list[int]]
//	tuple[int, str]  tuple[int, ...]  tuple[()]
//	literal[1, 'a', true, nil]
//	type[int]
//
// Identifiers that are not built-in names become forward references,
// resolved at check time against the context's environment.
func ParseDescriptor(src string) (*Descriptor, error) {
	p := &exprParser{src: src}
	d, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("parsing type %q: unexpected %q at offset %d", src, p.src[p.pos:], p.pos)
	}
	return d, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *exprParser) parseUnion() (*Descriptor, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	members := []*Descriptor{first}
	for {
		p.skipSpace()
		if p.peek() != '|' {
			break
		}
		p.pos++
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	if len(members) == 1 {
		return members[0], nil
	}
	return UnionOf(members...), nil
}

func (p *exprParser) parseAtom() (*Descriptor, error) {
	p.skipSpace()
	name := p.scanIdent()
	if name == "" {
		return nil, fmt.Errorf("parsing type %q: expected a type name at offset %d", p.src, p.pos)
	}

	p.skipSpace()
	if p.peek() != '[' {
		return p.bareDescriptor(name)
	}
	p.pos++
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return p.parameterizedDescriptor(name, args)
}

func (p *exprParser) scanIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// parseArgs consumes the bracketed argument list, including the closing
// bracket. Arguments may be nested type expressions, literal values, the
// "..." ellipsis or the "()" empty-tuple marker.
func (p *exprParser) parseArgs() ([]any, error) {
	var args []any
	for {
		p.skipSpace()
		switch {
		case p.peek() == ']':
			p.pos++
			return args, nil
		case strings.HasPrefix(p.src[p.pos:], "..."):
			p.pos += 3
			args = append(args, EllipsisMarker)
		case strings.HasPrefix(p.src[p.pos:], "()"):
			p.pos += 2
			args = append(args, EmptyTupleMarker)
		case p.peek() == '\'' || p.peek() == '"':
			s, err := p.scanString()
			if err != nil {
				return nil, err
			}
			args = append(args, s)
		case p.peek() == '-' || unicode.IsDigit(rune(p.peek())):
			n, err := p.scanInt()
			if err != nil {
				return nil, err
			}
			args = append(args, n)
		default:
			// A word: either a literal keyword or a nested type.
			save := p.pos
			word := p.scanIdent()
			switch word {
			case "true":
				args = append(args, true)
			case "false":
				args = append(args, false)
			case "nil", "none":
				args = append(args, nil)
			default:
				p.pos = save
				d, err := p.parseUnion()
				if err != nil {
					return nil, err
				}
				args = append(args, d)
			}
		}

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
		default:
			return nil, fmt.Errorf("parsing type %q: expected ',' or ']' at offset %d", p.src, p.pos)
		}
	}
}

func (p *exprParser) scanString() (string, error) {
	quote := p.src[p.pos]
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != quote {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("parsing type %q: unterminated string at offset %d", p.src, start-1)
	}
	s := p.src[start:p.pos]
	p.pos++
	return s, nil
}

func (p *exprParser) scanInt() (int, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && unicode.IsDigit(rune(p.src[p.pos])) {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, fmt.Errorf("parsing type %q: bad integer at offset %d", p.src, start)
	}
	return n, nil
}

func (p *exprParser) bareDescriptor(name string) (*Descriptor, error) {
	switch name {
	case "any":
		return Any(), nil
	case "none", "nil":
		return None(), nil
	case "bool":
		return Bool(), nil
	case "int":
		return Int(), nil
	case "str", "string":
		return Str(), nil
	case "float":
		return Float(), nil
	case "complex":
		return Complex(), nil
	case "bytes":
		return Bytes(), nil
	case "list":
		return List(), nil
	case "sequence":
		return &Descriptor{Origin: OriginSequence}, nil
	case "set":
		return &Descriptor{Origin: OriginSet}, nil
	case "frozenset":
		return &Descriptor{Origin: OriginFrozenSet}, nil
	case "dict":
		return &Descriptor{Origin: OriginDict}, nil
	case "mapping":
		return &Descriptor{Origin: OriginMapping}, nil
	case "mutablemapping":
		return &Descriptor{Origin: OriginMutableMapping}, nil
	case "tuple":
		return Tuple(), nil
	case "literalstring":
		return LiteralString(), nil
	case "typeguard":
		return TypeGuard(), nil
	case "callable":
		return Callable(), nil
	case "reader":
		return Reader(), nil
	case "writer":
		return Writer(), nil
	case "readwriter":
		return ReadWriter(), nil
	case "type":
		return SubclassOf(nil), nil
	case "literal":
		return nil, fmt.Errorf("parsing type %q: literal requires a value list", p.src)
	}
	return RefTo(name), nil
}

func (p *exprParser) parameterizedDescriptor(name string, args []any) (*Descriptor, error) {
	descArgs := func(want int) ([]*Descriptor, error) {
		if want > 0 && len(args) != want {
			return nil, fmt.Errorf("parsing type %q: %s takes %d parameter(s), got %d", p.src, name, want, len(args))
		}
		out := make([]*Descriptor, len(args))
		for i, a := range args {
			d, ok := a.(*Descriptor)
			if !ok {
				return nil, fmt.Errorf("parsing type %q: %s parameters must be types", p.src, name)
			}
			out[i] = d
		}
		return out, nil
	}

	switch name {
	case "list":
		ds, err := descArgs(1)
		if err != nil {
			return nil, err
		}
		return ListOf(ds[0]), nil
	case "sequence":
		ds, err := descArgs(1)
		if err != nil {
			return nil, err
		}
		return SequenceOf(ds[0]), nil
	case "set":
		ds, err := descArgs(1)
		if err != nil {
			return nil, err
		}
		return SetOf(ds[0]), nil
	case "frozenset":
		ds, err := descArgs(1)
		if err != nil {
			return nil, err
		}
		return FrozenSetOf(ds[0]), nil
	case "dict":
		ds, err := descArgs(2)
		if err != nil {
			return nil, err
		}
		return DictOf(ds[0], ds[1]), nil
	case "mapping":
		ds, err := descArgs(2)
		if err != nil {
			return nil, err
		}
		return MappingOf(ds[0], ds[1]), nil
	case "mutablemapping":
		ds, err := descArgs(2)
		if err != nil {
			return nil, err
		}
		return MutableMappingOf(ds[0], ds[1]), nil
	case "tuple":
		return TupleOf(args...), nil
	case "literal":
		return LiteralOf(args...), nil
	case "type":
		ds, err := descArgs(1)
		if err != nil {
			return nil, err
		}
		return SubclassOf(ds[0]), nil
	}
	return nil, fmt.Errorf("parsing type %q: %s does not take parameters", p.src, name)
}

// SchemaFile is the YAML-facing representation of a named descriptor
// environment. Each entry is either a type expression string or a record
// declaration:
//
//	types:
//	  Ints: list[int]
//	  Point:
//	    record:
//	      x: int
//	      y: int
//	      label: {type: str, required: false}
type SchemaFile struct {
	Types map[string]yaml.Node `yaml:"types"`
}

// LoadSchema reads and parses a schema file into a forward-reference
// environment. Schema entries may refer to each other by name, including
// self-referentially; references resolve lazily at check time.
func LoadSchema(path string) (MapEnv, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	return ParseSchema(data, path)
}

// ParseSchema parses schema content from bytes. The path argument is
// used only for error messages.
func ParseSchema(data []byte, path string) (MapEnv, error) {
	var file SchemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(file.Types) == 0 {
		return nil, fmt.Errorf("%s: no types defined", path)
	}

	env := make(MapEnv, len(file.Types))
	for name, node := range file.Types {
		d, err := descriptorFromNode(&node)
		if err != nil {
			return nil, fmt.Errorf("%s: type %q: %w", path, name, err)
		}
		env[name] = d
	}
	return env, nil
}

func descriptorFromNode(node *yaml.Node) (*Descriptor, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return ParseDescriptor(node.Value)
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "record" {
				return recordFromNode(node.Content[i+1])
			}
		}
		return nil, fmt.Errorf("mapping declarations must have a record key")
	}
	return nil, fmt.Errorf("unsupported declaration node")
}

func recordFromNode(node *yaml.Node) (*Descriptor, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("record must be a mapping of field names to types")
	}
	var fields []RecordField
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		desc, err := recordFieldFromNode(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, RecordField{Name: name, Desc: desc})
	}
	return RecordOf(fields...), nil
}

func recordFieldFromNode(node *yaml.Node) (*Descriptor, error) {
	if node.Kind == yaml.ScalarNode {
		return ParseDescriptor(node.Value)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("field must be a type expression or a {type, required} mapping")
	}

	var spec struct {
		Type     string `yaml:"type"`
		Required *bool  `yaml:"required"`
	}
	if err := node.Decode(&spec); err != nil {
		return nil, err
	}
	if spec.Type == "" {
		return nil, fmt.Errorf("field mapping requires a type key")
	}
	d, err := ParseDescriptor(spec.Type)
	if err != nil {
		return nil, err
	}
	if spec.Required != nil && !*spec.Required {
		d = NotRequired(d)
	}
	return d, nil
}
