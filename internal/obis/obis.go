package obis

import "fmt"

// Code is a six byte OBIS identifier (A-B:C.D.E*F).
type Code [6]byte

// String renders the code in IEC 62056-61 notation, e.g. 1-0:1.8.0*255.
func (c Code) String() string {
	return fmt.Sprintf("%d-%d:%d.%d.%d*%d", c[0], c[1], c[2], c[3], c[4], c[5])
}

// Hex renders the raw bytes as uppercase hex.
func (c Code) Hex() string {
	return fmt.Sprintf("%02X%02X%02X%02X%02X%02X", c[0], c[1], c[2], c[3], c[4], c[5])
}

// CodeFromBytes copies b into a Code. The boolean is false unless b holds
// exactly six bytes.
func CodeFromBytes(b []byte) (Code, bool) {
	var c Code
	if len(b) != len(c) {
		return c, false
	}
	copy(c[:], b)
	return c, true
}

// Kind identifies a recognised measurement. The zero value is not a valid kind.
type Kind uint8

const (
	CurrentPhaseL1 Kind = iota + 1
	CurrentPhaseL2
	CurrentPhaseL3
	ActiveEnergyTotalImport
	ActiveEnergyTariff1Import
	ActiveEnergyTariff2Import
	ActiveEnergyTariff3Import
	ActiveEnergyTariff4Import
	ActiveEnergyTotalExport
	ActivePowerTotalImportExport
	ActivePowerTotal
	ActivePowerPhaseL1
	ActivePowerPhaseL2
	ActivePowerPhaseL3
	VoltagePhaseL1
	VoltagePhaseL2
	VoltagePhaseL3
)

var kindDefs = []struct {
	kind Kind
	name string
	code Code
}{
	{CurrentPhaseL1, "CurrentPhaseL1", Code{0x01, 0x00, 0x1F, 0x07, 0x00, 0xFF}},
	{CurrentPhaseL2, "CurrentPhaseL2", Code{0x01, 0x00, 0x33, 0x07, 0x00, 0xFF}},
	{CurrentPhaseL3, "CurrentPhaseL3", Code{0x01, 0x00, 0x47, 0x07, 0x00, 0xFF}},
	{ActiveEnergyTotalImport, "ActiveEnergyTotalImport", Code{0x01, 0x00, 0x01, 0x08, 0x00, 0xFF}},
	{ActiveEnergyTariff1Import, "ActiveEnergyTariff1Import", Code{0x01, 0x00, 0x01, 0x08, 0x01, 0xFF}},
	{ActiveEnergyTariff2Import, "ActiveEnergyTariff2Import", Code{0x01, 0x00, 0x01, 0x08, 0x02, 0xFF}},
	{ActiveEnergyTariff3Import, "ActiveEnergyTariff3Import", Code{0x01, 0x00, 0x01, 0x08, 0x03, 0xFF}},
	{ActiveEnergyTariff4Import, "ActiveEnergyTariff4Import", Code{0x01, 0x00, 0x01, 0x08, 0x04, 0xFF}},
	{ActiveEnergyTotalExport, "ActiveEnergyTotalExport", Code{0x01, 0x00, 0x02, 0x08, 0x00, 0xFF}},
	{ActivePowerTotalImportExport, "ActivePowerTotal_ImportExport", Code{0x01, 0x00, 0x10, 0x07, 0x00, 0xFF}},
	{ActivePowerTotal, "ActivePowerTotal", Code{0x01, 0x00, 0x01, 0x07, 0x00, 0xFF}},
	{ActivePowerPhaseL1, "ActivePowerPhaseL1", Code{0x01, 0x00, 0x15, 0x07, 0x00, 0xFF}},
	{ActivePowerPhaseL2, "ActivePowerPhaseL2", Code{0x01, 0x00, 0x29, 0x07, 0x00, 0xFF}},
	{ActivePowerPhaseL3, "ActivePowerPhaseL3", Code{0x01, 0x00, 0x3D, 0x07, 0x00, 0xFF}},
	{VoltagePhaseL1, "VoltagePhaseL1", Code{0x01, 0x00, 0x20, 0x07, 0x00, 0xFF}},
	{VoltagePhaseL2, "VoltagePhaseL2", Code{0x01, 0x00, 0x34, 0x07, 0x00, 0xFF}},
	{VoltagePhaseL3, "VoltagePhaseL3", Code{0x01, 0x00, 0x48, 0x07, 0x00, 0xFF}},
}

var byCode = func() map[Code]Kind {
	m := make(map[Code]Kind, len(kindDefs))
	for _, def := range kindDefs {
		if _, dup := m[def.code]; dup {
			panic(fmt.Sprintf("obis: duplicate code %s", def.code))
		}
		m[def.code] = def.kind
	}
	return m
}()

// Classify maps a raw OBIS code to its measurement kind. Anything that is not
// an exact six byte match against the table reports false.
func Classify(raw []byte) (Kind, bool) {
	code, ok := CodeFromBytes(raw)
	if !ok {
		return 0, false
	}
	kind, ok := byCode[code]
	return kind, ok
}

// Kinds returns every recognised kind in table order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindDefs))
	for _, def := range kindDefs {
		out = append(out, def.kind)
	}
	return out
}

// Valid reports whether k is one of the recognised kinds.
func (k Kind) Valid() bool {
	return k >= CurrentPhaseL1 && k <= VoltagePhaseL3
}

// Code returns the OBIS code assigned to k.
func (k Kind) Code() Code {
	if !k.Valid() {
		return Code{}
	}
	return kindDefs[k-1].code
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindDefs[k-1].name
}

// ParseKind resolves a kind by its String name.
func ParseKind(name string) (Kind, error) {
	for _, def := range kindDefs {
		if def.name == name {
			return def.kind, nil
		}
	}
	return 0, fmt.Errorf("unknown measurement kind %q", name)
}
