package sdl

import (
	"strings"

	"github.com/leapstack-labs/leapgraph/pkg/core"
)

// RenderType renders one type definition to canonical SDL.
//
// Rendering never fails on a well-formed model; unknown kinds cannot reach
// this point because the builder rejects them.
func RenderType(def *core.TypeDefinition) string {
	p := newPrinter()

	switch def.Kind {
	case core.KindObject:
		renderObject(p, def)
	case core.KindInputObject:
		renderInputObject(p, def)
	case core.KindInterface:
		renderInterface(p, def)
	case core.KindEnum:
		renderEnum(p, def)
	case core.KindUnion:
		renderUnion(p, def)
	case core.KindScalar:
		p.write("scalar " + def.Name)
	}

	return p.String()
}

// RenderField renders a single field as "name(arg: Type = default, ...): ReturnType".
// Arguments keep their original order; default literals are emitted verbatim.
func RenderField(f core.FieldDefinition) string {
	var b strings.Builder
	b.WriteString(f.Name)

	if len(f.Args) > 0 {
		b.WriteString("(")
		for i, arg := range f.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(renderArgument(arg))
		}
		b.WriteString(")")
	}

	b.WriteString(": ")
	b.WriteString(f.Type.String())
	return b.String()
}

// RenderSchema renders every type in the model, in model order, separated
// by blank lines.
func RenderSchema(model *core.SchemaModel) string {
	parts := make([]string, 0, model.Len())
	for _, name := range model.TypeNames() {
		parts = append(parts, RenderType(model.Type(name)))
	}
	return strings.Join(parts, "\n\n")
}

func renderArgument(arg core.ArgumentDefinition) string {
	out := arg.Name + ": " + arg.Type.String()
	if arg.DefaultValue != nil {
		out += " = " + *arg.DefaultValue
	}
	return out
}

func renderObject(p *printer, def *core.TypeDefinition) {
	p.write("type " + def.Name)
	if len(def.Interfaces) > 0 {
		p.write(" implements " + strings.Join(def.Interfaces, " & "))
	}
	renderFieldBlock(p, def.Fields)
}

func renderInterface(p *printer, def *core.TypeDefinition) {
	p.write("interface " + def.Name)
	renderFieldBlock(p, def.Fields)
}

func renderInputObject(p *printer, def *core.TypeDefinition) {
	p.write("input " + def.Name)
	p.write(" {")
	p.writeln()
	p.indent()
	for _, f := range def.InputFields {
		p.write(renderArgument(f))
		p.writeln()
	}
	p.dedent()
	p.write("}")
}

func renderEnum(p *printer, def *core.TypeDefinition) {
	p.write("enum " + def.Name)
	p.write(" {")
	p.writeln()
	p.indent()
	for _, v := range def.EnumValues {
		p.write(v.Name)
		p.writeln()
	}
	p.dedent()
	p.write("}")
}

func renderUnion(p *printer, def *core.TypeDefinition) {
	p.write("union " + def.Name + " = " + strings.Join(def.PossibleTypes, " | "))
}

func renderFieldBlock(p *printer, fields []core.FieldDefinition) {
	p.write(" {")
	p.writeln()
	p.indent()
	for _, f := range fields {
		p.write(RenderField(f))
		p.writeln()
	}
	p.dedent()
	p.write("}")
}
