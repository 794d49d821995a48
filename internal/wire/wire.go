package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// ErrDecode marks payloads that do not conform to the schema.
var ErrDecode = errors.New("payload does not conform to schema")

// Payload is the decoded DeviceDataArray message.
type Payload struct {
	Items []DeviceData
}

// DeviceData is one device reading as it arrived on the wire.
type DeviceData struct {
	Ticks    int64
	DeviceID DeviceID
	Values   []Value
}

// DeviceID carries the two 64-bit halves of the device GUID.
type DeviceID struct {
	Lo uint64
	Hi uint64
}

// Value is a raw OBIS tagged reading.
type Value struct {
	Obis  []byte
	Value float64
}

// Layout holds the resolved field descriptors of a DeviceDataArray schema.
// Build one with Bind; it is immutable afterwards.
type Layout struct {
	root  protoreflect.MessageDescriptor
	items protoreflect.FieldDescriptor

	dateTime protoreflect.FieldDescriptor
	deviceID protoreflect.FieldDescriptor
	values   protoreflect.FieldDescriptor

	ticks int64Field
	lo    uint64Field
	hi    uint64Field

	obis  protoreflect.FieldDescriptor
	value protoreflect.FieldDescriptor
}

// Root returns the top-level message descriptor.
func (l *Layout) Root() protoreflect.MessageDescriptor {
	return l.root
}

// Bind checks that md has the DeviceDataArray shape and records the
// descriptors needed by Convert.
func Bind(md protoreflect.MessageDescriptor) (*Layout, error) {
	l := &Layout{root: md}
	var err error
	if l.items, err = messageField(md, "DeviceDataItems", true); err != nil {
		return nil, err
	}
	item := l.items.Message()
	if l.dateTime, err = messageField(item, "DateTime", false); err != nil {
		return nil, err
	}
	if l.deviceID, err = messageField(item, "DeviceId", false); err != nil {
		return nil, err
	}
	if l.values, err = messageField(item, "DeviceValues", true); err != nil {
		return nil, err
	}
	if l.ticks, err = bindInt64(l.dateTime.Message(), "value"); err != nil {
		return nil, err
	}
	if l.lo, err = bindUint64(l.deviceID.Message(), "lo"); err != nil {
		return nil, err
	}
	if l.hi, err = bindUint64(l.deviceID.Message(), "hi"); err != nil {
		return nil, err
	}
	entry := l.values.Message()
	if l.obis, err = scalarField(entry, "Obis", protoreflect.BytesKind); err != nil {
		return nil, err
	}
	if l.value, err = scalarField(entry, "Value", protoreflect.DoubleKind); err != nil {
		return nil, err
	}
	return l, nil
}

// Convert walks a decoded message into the typed Payload. Fields the schema
// does not declare are skipped; a declared field carried with the wrong wire
// type is rejected.
func (l *Layout) Convert(m protoreflect.Message) (Payload, error) {
	if m.Descriptor().FullName() != l.root.FullName() {
		return Payload{}, fmt.Errorf("%w: message %s, want %s", ErrDecode, m.Descriptor().FullName(), l.root.FullName())
	}
	if err := checkUnknown(m, "payload"); err != nil {
		return Payload{}, err
	}
	list := m.Get(l.items).List()
	payload := Payload{Items: make([]DeviceData, 0, list.Len())}
	for i := 0; i < list.Len(); i++ {
		dd, err := l.convertItem(list.Get(i).Message(), i)
		if err != nil {
			return Payload{}, err
		}
		payload.Items = append(payload.Items, dd)
	}
	return payload, nil
}

func (l *Layout) convertItem(m protoreflect.Message, idx int) (DeviceData, error) {
	where := fmt.Sprintf("item %d", idx)
	if err := checkUnknown(m, where); err != nil {
		return DeviceData{}, err
	}
	if !m.Has(l.dateTime) {
		return DeviceData{}, fmt.Errorf("%w: %s: DateTime missing", ErrDecode, where)
	}
	if !m.Has(l.deviceID) {
		return DeviceData{}, fmt.Errorf("%w: %s: DeviceId missing", ErrDecode, where)
	}
	dt := m.Get(l.dateTime).Message()
	if err := checkUnknown(dt, where+" DateTime"); err != nil {
		return DeviceData{}, err
	}
	id := m.Get(l.deviceID).Message()
	if err := checkUnknown(id, where+" DeviceId"); err != nil {
		return DeviceData{}, err
	}

	values := m.Get(l.values).List()
	dd := DeviceData{
		Ticks: l.ticks.get(dt),
		DeviceID: DeviceID{
			Lo: l.lo.get(id),
			Hi: l.hi.get(id),
		},
		Values: make([]Value, 0, values.Len()),
	}
	for j := 0; j < values.Len(); j++ {
		v := values.Get(j).Message()
		if err := checkUnknown(v, fmt.Sprintf("%s value %d", where, j)); err != nil {
			return DeviceData{}, err
		}
		raw := v.Get(l.obis).Bytes()
		obis := make([]byte, len(raw))
		copy(obis, raw)
		dd.Values = append(dd.Values, Value{
			Obis:  obis,
			Value: v.Get(l.value).Float(),
		})
	}
	return dd, nil
}

// checkUnknown rejects unknown field data whose number is declared on m.
// The runtime parks declared fields there only when their wire type does not
// match the descriptor.
func checkUnknown(m protoreflect.Message, where string) error {
	raw := m.GetUnknown()
	fields := m.Descriptor().Fields()
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeField(raw)
		if n < 0 {
			return fmt.Errorf("%w: %s: %w", ErrDecode, where, protowire.ParseError(n))
		}
		if fd := fields.ByNumber(num); fd != nil {
			return fmt.Errorf("%w: %s: field %s has wire type %d", ErrDecode, where, fd.Name(), typ)
		}
		raw = raw[n:]
	}
	return nil
}
