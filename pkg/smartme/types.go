package smartme

import (
	"github.com/lekkimworld/smartme-protobuf-parser/internal/obis"
	"github.com/lekkimworld/smartme-protobuf-parser/internal/sample"
)

// DeviceSample is one device's reading at one instant.
type DeviceSample = sample.DeviceSample

// Measurement pairs a measurement kind with its value.
type Measurement = sample.Measurement

// Kind identifies a recognised OBIS measurement.
type Kind = obis.Kind

// Code is a raw six byte OBIS code.
type Code = obis.Code

const (
	CurrentPhaseL1               = obis.CurrentPhaseL1
	CurrentPhaseL2               = obis.CurrentPhaseL2
	CurrentPhaseL3               = obis.CurrentPhaseL3
	ActiveEnergyTotalImport      = obis.ActiveEnergyTotalImport
	ActiveEnergyTariff1Import    = obis.ActiveEnergyTariff1Import
	ActiveEnergyTariff2Import    = obis.ActiveEnergyTariff2Import
	ActiveEnergyTariff3Import    = obis.ActiveEnergyTariff3Import
	ActiveEnergyTariff4Import    = obis.ActiveEnergyTariff4Import
	ActiveEnergyTotalExport      = obis.ActiveEnergyTotalExport
	ActivePowerTotalImportExport = obis.ActivePowerTotalImportExport
	ActivePowerTotal             = obis.ActivePowerTotal
	ActivePowerPhaseL1           = obis.ActivePowerPhaseL1
	ActivePowerPhaseL2           = obis.ActivePowerPhaseL2
	ActivePowerPhaseL3           = obis.ActivePowerPhaseL3
	VoltagePhaseL1               = obis.VoltagePhaseL1
	VoltagePhaseL2               = obis.VoltagePhaseL2
	VoltagePhaseL3               = obis.VoltagePhaseL3
)

// Kinds lists every recognised measurement kind.
func Kinds() []Kind {
	return obis.Kinds()
}
