package easylog

import "reflect"

func typeName(typ reflect.Type) string {
	if typ == nil {
		return "nil"
	}
	if typ.Kind() == reflect.Ptr {
		return "*" + typeName(typ.Elem())
	}
	name := typ.Name()
	if len(typ.PkgPath()) != 0 {
		name = typ.PkgPath() + "." + name
	}
	if len(name) == 0 {
		name = typ.String()
	}
	return name
}
