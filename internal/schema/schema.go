package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/lekkimworld/smartme-protobuf-parser/internal/wire"
)

// RootMessage is the top-level message every payload is decoded as.
const RootMessage protoreflect.FullName = "smartme.DeviceDataArray"

var (
	// ErrSchemaLoad reports a missing, unparsable or incompatible schema.
	ErrSchemaLoad = errors.New("schema load failed")
	// ErrDecode reports a payload that does not conform to the schema.
	ErrDecode = wire.ErrDecode
)

//go:embed smartme.desc.json
var embeddedDescriptor []byte

// Schema is a loaded, read-only message schema. It is safe for concurrent use.
type Schema struct {
	layout *wire.Layout
}

// Parse builds a Schema from a FileDescriptorSet, given either as protojson
// or in binary wire form.
func Parse(data []byte) (*Schema, error) {
	var set descriptorpb.FileDescriptorSet
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty descriptor set", ErrSchemaLoad)
	}
	var err error
	if trimmed[0] == '{' {
		err = protojson.Unmarshal(trimmed, &set)
	} else {
		err = proto.Unmarshal(data, &set)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse descriptor set: %w", ErrSchemaLoad, err)
	}
	files, err := protodesc.NewFiles(&set)
	if err != nil {
		return nil, fmt.Errorf("%w: build descriptors: %w", ErrSchemaLoad, err)
	}
	desc, err := files.FindDescriptorByName(RootMessage)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaLoad, RootMessage, err)
	}
	md, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a message", ErrSchemaLoad, RootMessage)
	}
	layout, err := wire.Bind(md)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaLoad, err)
	}
	return &Schema{layout: layout}, nil
}

// Decode unmarshals a payload and converts it into the typed raw tree. It is
// a pure function of b.
func (s *Schema) Decode(b []byte) (wire.Payload, error) {
	msg := dynamicpb.NewMessage(s.layout.Root())
	if err := proto.Unmarshal(b, msg); err != nil {
		return wire.Payload{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return s.layout.Convert(msg)
}
