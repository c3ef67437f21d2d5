package xutil

import (
	"fmt"
	"reflect"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Tags can be used with: `loadAtoms:"atomname"`.
// "st" should be a pointer to a struct with xproto.Atom fields.
// "onlyIfExists" asks the x server to assign a value only if the atom exists.
func LoadAtoms(conn *xgb.Conn, st any, onlyIfExists bool) error {
	names, err := AtomNames(st)
	if err != nil {
		return err
	}
	// request all before waiting for the first reply
	cookies := make([]xproto.InternAtomCookie, len(names))
	for i, name := range names {
		cookies[i] = xproto.InternAtom(conn, onlyIfExists, uint16(len(name)), name)
	}
	val := reflect.Indirect(reflect.ValueOf(st))
	for i := range names {
		reply, err := cookies[i].Reply()
		if err != nil {
			return fmt.Errorf("intern atom %q: %w", names[i], err)
		}
		val.Field(i).Set(reflect.ValueOf(reply.Atom))
	}
	return nil
}

// AtomNames returns the atom name of each field of the struct pointed by
// st: the `loadAtoms` tag if present, the field name otherwise.
func AtomNames(st any) ([]string, error) {
	v := reflect.ValueOf(st)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("atoms: expecting pointer to struct: %T", st)
	}
	typ := v.Elem().Type()
	atomTyp := reflect.TypeOf(xproto.Atom(0))
	names := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if sf.Type != atomTyp {
			return nil, fmt.Errorf("atoms: field %v is not an atom", sf.Name)
		}
		name := sf.Name
		if tag := sf.Tag.Get("loadAtoms"); tag != "" {
			name = tag
		}
		names = append(names, name)
	}
	return names, nil
}

//----------

func GetAtomName(conn *xgb.Conn, atom xproto.Atom) (string, error) {
	cookie := xproto.GetAtomName(conn, atom)
	r, err := cookie.Reply()
	if err != nil {
		return "", err
	}
	return r.Name, nil
}
