package core

// Ingest normalizes a raw table into records.
//
// Every canonical column is read from the header if present and defaults to
// "" (or 0 for the two counters) otherwise. Extra columns are ignored. Status
// is replaced by its canonical classification; the raw text is not kept.
func Ingest(raw RawTable) []Record {
	idx := MakeHeaderIndex(raw.Header)

	records := make([]Record, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		records = append(records, buildRecord(idx, row))
	}
	return records
}

func buildRecord(idx HeaderIndex, row []string) Record {
	cell := func(name string) string { return idx.Cell(row, name) }

	return Record{
		Sn:               cell(ColSn),
		AgentID:          cell(ColAgentID),
		RetailerID:       cell(ColRetailerID),
		Name:             cell(ColName),
		State:            cell(ColState),
		District:         cell(ColDistrict),
		MobNo:            cell(ColMobNo),
		PinCode:          cell(ColPinCode),
		Address:          cell(ColAddress),
		Status:           Classify(cell(ColStatus)),
		SubStatus:        cell(ColSubStatus),
		ActionableRemark: cell(ColActionableRemark),
		ActiveYTD:        ParseNumber(cell(ColActiveYTD)),
		ActiveMTD:        ParseNumber(cell(ColActiveMTD)),
		RetailerType:     cell(ColRetailerType),
		OnboardedDate:    cell(ColOnboardedDate),
		FEDI:             cell(ColFEDI),
		FEDIMobNo:        cell(ColFEDIMobNo),
		AreaHead:         cell(ColAreaHead),
		AHMobile:         cell(ColAHMobile),
		AHEmailID:        cell(ColAHEmailID),
	}
}

// MissingColumns returns the canonical columns absent from header, in
// canonical order. Missing columns are filled, not rejected; callers use this
// for logging.
func MissingColumns(header []string) []string {
	idx := MakeHeaderIndex(header)
	var missing []string
	for _, col := range Columns {
		if _, ok := idx.Lookup(col); !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
