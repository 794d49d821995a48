package wire

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
)

type int64Field struct {
	fd       protoreflect.FieldDescriptor
	unsigned bool
}

func (f int64Field) get(m protoreflect.Message) int64 {
	v := m.Get(f.fd)
	if f.unsigned {
		return int64(v.Uint())
	}
	return v.Int()
}

type uint64Field struct {
	fd     protoreflect.FieldDescriptor
	signed bool
}

func (f uint64Field) get(m protoreflect.Message) uint64 {
	v := m.Get(f.fd)
	if f.signed {
		return uint64(v.Int())
	}
	return v.Uint()
}

func lookup(md protoreflect.MessageDescriptor, name protoreflect.Name) (protoreflect.FieldDescriptor, error) {
	fd := md.Fields().ByName(name)
	if fd == nil {
		return nil, fmt.Errorf("message %s has no field %q", md.FullName(), name)
	}
	return fd, nil
}

func messageField(md protoreflect.MessageDescriptor, name protoreflect.Name, repeated bool) (protoreflect.FieldDescriptor, error) {
	fd, err := lookup(md, name)
	if err != nil {
		return nil, err
	}
	if fd.Kind() != protoreflect.MessageKind || fd.IsMap() {
		return nil, fmt.Errorf("field %s must be a message, got %s", fd.FullName(), fd.Kind())
	}
	if fd.IsList() != repeated {
		return nil, fmt.Errorf("field %s: repeated=%t, want %t", fd.FullName(), fd.IsList(), repeated)
	}
	return fd, nil
}

func scalarField(md protoreflect.MessageDescriptor, name protoreflect.Name, kind protoreflect.Kind) (protoreflect.FieldDescriptor, error) {
	fd, err := lookup(md, name)
	if err != nil {
		return nil, err
	}
	if fd.Kind() != kind {
		return nil, fmt.Errorf("field %s must be %s, got %s", fd.FullName(), kind, fd.Kind())
	}
	if fd.IsList() {
		return nil, fmt.Errorf("field %s must not be repeated", fd.FullName())
	}
	return fd, nil
}

// sixtyFourBit accepts any 64-bit integer encoding and reports whether the
// field is read through Uint.
func sixtyFourBit(md protoreflect.MessageDescriptor, name protoreflect.Name) (protoreflect.FieldDescriptor, bool, error) {
	fd, err := lookup(md, name)
	if err != nil {
		return nil, false, err
	}
	if fd.IsList() {
		return nil, false, fmt.Errorf("field %s must not be repeated", fd.FullName())
	}
	switch fd.Kind() {
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return fd, false, nil
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return fd, true, nil
	default:
		return nil, false, fmt.Errorf("field %s must be a 64-bit integer, got %s", fd.FullName(), fd.Kind())
	}
}

func bindInt64(md protoreflect.MessageDescriptor, name protoreflect.Name) (int64Field, error) {
	fd, unsigned, err := sixtyFourBit(md, name)
	if err != nil {
		return int64Field{}, err
	}
	return int64Field{fd: fd, unsigned: unsigned}, nil
}

func bindUint64(md protoreflect.MessageDescriptor, name protoreflect.Name) (uint64Field, error) {
	fd, unsigned, err := sixtyFourBit(md, name)
	if err != nil {
		return uint64Field{}, err
	}
	return uint64Field{fd: fd, signed: !unsigned}, nil
}
