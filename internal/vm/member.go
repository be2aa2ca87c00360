package vm

import "leoscript/internal/value"

func isCallable(v value.Variant) bool {
	return v.Kind == value.KindFunctionPointer || v.Kind == value.KindNativeFunctionRef
}

// execLoadMember implements spec.md §4.4.2's LoadMember: pops an
// Identifier(name) then the parent it names a member of. Object/Class/
// Module each push the looked-up value, and additionally push the parent
// itself when that value is callable -- the receiver Call(argc) expects.
func (t *Thread) execLoadMember() error {
	name := t.pop()
	parent := t.pop()
	if name.Kind != value.KindIdentifier {
		return t.fail("ExpectedObjectOnStack", "LoadMember requires an Identifier key, got %s", name.TypeName())
	}

	switch parent.Kind {
	case value.KindObject:
		v, ok := parent.Obj.Fields[name.Str]
		if !ok {
			return t.fail("MethodNotFound", "object has no member %q", name.Str)
		}
		t.push(v)
		if isCallable(v) {
			t.push(parent)
		}
		return nil
	case value.KindClass:
		v, ok := parent.Cls.Members[name.Str]
		if !ok {
			v, ok = parent.Cls.Statics[name.Str]
		}
		if !ok {
			return t.fail("MethodNotFound", "class %q has no member %q", parent.Cls.Name, name.Str)
		}
		t.push(v)
		if isCallable(v) {
			t.push(parent)
		}
		return nil
	case value.KindModule:
		v, ok := parent.Mod.Members[name.Str]
		if !ok {
			return t.fail("MethodNotFound", "module %q has no member %q", parent.Mod.Name, name.Str)
		}
		t.push(v)
		if isCallable(v) {
			t.push(parent)
		}
		return nil
	default:
		return t.fail("ExpectedObjectOnStack", "cannot read member %q of %s", name.Str, parent.TypeName())
	}
}

// execGetCollectionItem implements bracket/static access (spec.md §4.4.2):
// pops a key then a collection, dispatching by the collection's kind.
func (t *Thread) execGetCollectionItem() error {
	key := t.pop()
	coll := t.pop()

	switch coll.Kind {
	case value.KindArray:
		if key.Kind != value.KindInteger {
			return t.fail("InvalidArrayIndex", "array index must be an Integer, got %s", key.TypeName())
		}
		idx := key.Int
		if idx < 0 || idx >= int64(len(coll.Arr.Elements)) {
			return t.fail("InvalidArrayIndex", "index %d out of bounds (len %d)", idx, len(coll.Arr.Elements))
		}
		t.push(coll.Arr.Elements[idx])
		return nil
	case value.KindObject:
		if key.Kind != value.KindIdentifier {
			return t.fail("InvalidObjectMember", "object member key must be an Identifier, got %s", key.TypeName())
		}
		v, ok := coll.Obj.Fields[key.Str]
		if !ok {
			return t.fail("InvalidObjectMember", "object has no member %q", key.Str)
		}
		t.push(v)
		return nil
	case value.KindClass:
		if key.Kind != value.KindIdentifier {
			return t.fail("InvalidObjectMember", "class member key must be an Identifier, got %s", key.TypeName())
		}
		v, ok := coll.Cls.Members[key.Str]
		if !ok {
			v, ok = coll.Cls.Statics[key.Str]
		}
		if !ok {
			return t.fail("InvalidObjectMember", "class %q has no static member %q", coll.Cls.Name, key.Str)
		}
		t.push(v)
		return nil
	case value.KindModule:
		if key.Kind != value.KindIdentifier {
			return t.fail("ModuleIndexNotFound", "module member key must be an Identifier, got %s", key.TypeName())
		}
		v, ok := coll.Mod.Members[key.Str]
		if !ok {
			return t.fail("ModuleIndexNotFound", "module %q has no member %q", coll.Mod.Name, key.Str)
		}
		t.push(v)
		return nil
	case value.KindEnum:
		if key.Kind != value.KindIdentifier {
			return t.fail("EnumIndexNotFound", "enum member key must be an Identifier, got %s", key.TypeName())
		}
		ord, ok := coll.En.Members[key.Str]
		if !ok {
			return t.fail("EnumIndexNotFound", "enum %q has no member %q", coll.En.Name, key.Str)
		}
		t.push(value.Int(int64(ord)))
		return nil
	default:
		return t.fail("ExpectedObjectOnStack", "cannot index %s", coll.TypeName())
	}
}

// execSetCollectionItem implements assignment to a MemberAccess,
// ArrayAccess or StaticAccess target: pops value, key, collection in that order (spec.md
// §4.3 assignment lowering, §4.4.2).
func (t *Thread) execSetCollectionItem() error {
	v := t.pop()
	key := t.pop()
	coll := t.pop()

	switch coll.Kind {
	case value.KindArray:
		if key.Kind != value.KindInteger {
			return t.fail("InvalidArrayIndex", "array index must be an Integer, got %s", key.TypeName())
		}
		idx := key.Int
		if idx < 0 || idx >= int64(len(coll.Arr.Elements)) {
			return t.fail("InvalidArrayIndex", "index %d out of bounds (len %d)", idx, len(coll.Arr.Elements))
		}
		coll.Arr.Elements[idx] = v
		return nil
	case value.KindObject:
		if key.Kind != value.KindIdentifier {
			return t.fail("InvalidObjectMember", "object member key must be an Identifier, got %s", key.TypeName())
		}
		coll.Obj.Fields[key.Str] = v
		return nil
	case value.KindMap:
		if key.Kind != value.KindString && key.Kind != value.KindIdentifier {
			return t.fail("InvalidDictionaryKey", "map key must be a String, got %s", key.TypeName())
		}
		coll.Map.Set(key.Str, v)
		return nil
	case value.KindClass:
		// Only static attributes are writable through a Class handle: the
		// template's per-instance Members stay immutable after build
		// (spec.md §3.4), but a static attribute is shared class-level
		// state (see DESIGN.md O4).
		if key.Kind != value.KindIdentifier {
			return t.fail("InvalidObjectMember", "class member key must be an Identifier, got %s", key.TypeName())
		}
		if _, ok := coll.Cls.Statics[key.Str]; !ok {
			return t.fail("InvalidObjectMember", "class %q has no static member %q", coll.Cls.Name, key.Str)
		}
		coll.Cls.Statics[key.Str] = v
		return nil
	default:
		return t.fail("ExpectedObjectOnStack", "cannot assign into %s", coll.TypeName())
	}
}
