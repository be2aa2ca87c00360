package compiler

import (
	"leoscript/internal/ast"
	"leoscript/internal/value"
)

// compileClass lowers a class to a Class template (spec.md §4.3.3): one
// Null-initialized member per instance attribute, one Statics entry per
// static attribute holding its constant default, a constructor FunctionPointer
// (synthesized if the class declared none), and one FunctionPointer per
// method.
func (c *Compiler) compileClass(decl ast.ClassDecl) (value.Variant, error) {
	cls := &value.Class{
		Name:    decl.Name,
		Members: make(map[string]value.Variant, len(decl.Attributes)+len(decl.Methods)+2),
		Statics: make(map[string]value.Variant),
	}
	cls.Members["_type"] = value.Type(decl.Name)
	for _, attr := range decl.Attributes {
		if attr.Static {
			def := value.Null
			if attr.Default != nil {
				v, err := c.constEval(attr.Default)
				if err != nil {
					return value.Variant{}, err
				}
				def = v
			}
			cls.Statics[attr.Name] = def
			continue
		}
		cls.Members[attr.Name] = value.Null
	}

	ctorParams, ctorBody := synthesizeConstructor(decl)
	ctorIP, err := c.compileFunction(decl.Name+".constructor", ctorParams, ctorBody, true)
	if err != nil {
		return value.Variant{}, err
	}
	cls.Ctor = value.FunctionPointer(ctorIP)
	cls.Members["constructor"] = cls.Ctor

	for _, m := range decl.Methods {
		ip, err := c.compileFunction(decl.Name+"."+m.Name, m.Params, m.Body, !m.Static)
		if err != nil {
			return value.Variant{}, err
		}
		cls.Members[m.Name] = value.FunctionPointer(ip)
	}

	return value.NewClass(cls), nil
}

// synthesizeConstructor builds the constructor's parameter list and body
// per spec.md §4.3.3: for each non-static attribute in declaration order,
// prepend `self.attr = default-or-null`, then the declared constructor
// body (empty if none was written), then append `return self`. self itself
// is seated separately by compileFunction's selfFirst flag, not as a
// parameter here. Static attributes (see DESIGN.md O4) live on
// the Class template's Statics table instead and are not per-instance, so
// they are not re-initialized here.
func synthesizeConstructor(decl ast.ClassDecl) ([]string, []ast.Stmt) {
	var params []string
	var userBody []ast.Stmt
	if decl.Constructor != nil {
		params = decl.Constructor.Params
		userBody = decl.Constructor.Body
	}

	self := ast.Identifier{Name: "self"}
	body := make([]ast.Stmt, 0, len(decl.Attributes)+len(userBody)+1)
	for _, attr := range decl.Attributes {
		if attr.Static {
			continue
		}
		def := attr.Default
		if def == nil {
			def = ast.Null{}
		}
		body = append(body, ast.Assign{
			Target: ast.MemberAccess{Target: self, Name: attr.Name},
			Value:  def,
		})
	}
	body = append(body, userBody...)
	body = append(body, ast.ReturnStmt{Value: self})
	return params, body
}
