package annotations

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParserEngine interface defines the core parsing functionality
type ParserEngine interface {
	ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error)
	ValidateAnnotation(annotation *ParsedAnnotation) error
}

// annotationLine is the grammar of a single axon:: comment
type annotationLine struct {
	Type string      `parser:"'//' 'axon' '::' @Ident"`
	Args []*argument `parser:"@@*"`
}

type argument struct {
	Option     *option    `parser:"  @@"`
	Positional *valueList `parser:"| @@"`
}

type option struct {
	Name  string     `parser:"'-' @Ident"`
	Value *valueList `parser:"( '=' @@ )?"`
}

type valueList struct {
	Items []string `parser:"@(String | Path | Number | Ident) ( ',' @(String | Path | Number | Ident) )*"`
}

func (v *valueList) value() interface{} {
	if len(v.Items) == 1 {
		return v.Items[0]
	}
	return append([]string(nil), v.Items...)
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//`},
	{Name: "Separator", Pattern: `::`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Path", Pattern: `/[^\s,]*`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
	{Name: "Punct", Pattern: `[-=,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var annotationGrammar = participle.MustBuild[annotationLine](
	participle.Lexer(annotationLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

type parser struct {
	registry  AnnotationRegistry
	validator SchemaValidator
}

// NewParser creates a parser validating against registry. A nil registry uses
// DefaultRegistry.
func NewParser(registry AnnotationRegistry) ParserEngine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &parser{
		registry:  registry,
		validator: NewValidator(),
	}
}

// IsAnnotation reports whether a comment line is an axon annotation
func IsAnnotation(comment string) bool {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "//") {
		return false
	}
	text = strings.TrimLeftFunc(text[2:], unicode.IsSpace)
	return strings.HasPrefix(text, "axon::")
}

// ParseAnnotation parses a single comment line. Comments that are not axon
// annotations yield ErrNotAnnotation; axon annotations of other types yield
// ErrUnknownAnnotationType.
func (p *parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	if !IsAnnotation(comment) {
		return nil, ErrNotAnnotation
	}

	raw := strings.TrimSpace(comment)
	line, err := annotationGrammar.ParseString(location.File, raw)
	if err != nil {
		return nil, &SyntaxError{
			Msg:   syntaxMessage(err),
			Loc:   location,
			Hint:  "Use format: // axon::type positional -Key=Value -Flag",
			Cause: err,
		}
	}

	annotationType, err := ParseAnnotationType(line.Type)
	if err != nil {
		return nil, err
	}

	schema, err := p.registry.GetSchema(annotationType)
	if err != nil {
		return nil, &SchemaError{
			Msg:  err.Error(),
			Loc:  location,
			Hint: "Register the annotation schema before parsing",
		}
	}

	annotation := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        raw,
	}

	positional := 0
	for _, arg := range line.Args {
		if arg.Positional != nil {
			if positional >= len(schema.Positional) {
				return nil, &SyntaxError{
					Msg:  fmt.Sprintf("unexpected positional argument '%s'", strings.Join(arg.Positional.Items, ",")),
					Loc:  location,
					Hint: fmt.Sprintf("%s accepts %d positional argument(s)", annotationType, len(schema.Positional)),
				}
			}
			annotation.Parameters[schema.Positional[positional]] = arg.Positional.value()
			positional++
			continue
		}

		name := arg.Option.Name
		if arg.Option.Value != nil {
			annotation.Parameters[name] = arg.Option.Value.value()
			continue
		}

		// -Flag means true for bools and the default for everything else
		if spec, ok := schema.Parameters[name]; ok && spec.Type != BoolType && spec.DefaultValue != nil {
			annotation.Parameters[name] = spec.DefaultValue
		} else {
			annotation.Parameters[name] = true
		}
	}

	if len(schema.Positional) > 0 {
		annotation.Target = fmt.Sprintf("%v", annotation.Parameters[schema.Positional[0]])
	}

	if err := p.ValidateAnnotation(annotation); err != nil {
		return nil, err
	}

	return annotation, nil
}

// ValidateAnnotation applies defaults, converts parameter types and validates
// the annotation against its schema
func (p *parser) ValidateAnnotation(annotation *ParsedAnnotation) error {
	schema, err := p.registry.GetSchema(annotation.Type)
	if err != nil {
		return &SchemaError{
			Msg:  fmt.Sprintf("no schema found for annotation type: %s", annotation.Type),
			Loc:  annotation.Location,
			Hint: "Check if annotation type is registered",
		}
	}

	if err := p.validator.ApplyDefaults(annotation, schema); err != nil {
		return err
	}
	if err := p.validator.TransformParameters(annotation, schema); err != nil {
		return err
	}
	return p.validator.Validate(annotation, schema)
}

func syntaxMessage(err error) string {
	var perr participle.Error
	if errors.As(err, &perr) {
		return perr.Message()
	}
	return err.Error()
}
