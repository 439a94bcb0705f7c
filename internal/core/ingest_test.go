package core

import (
	"reflect"
	"testing"
)

func TestIngest_FillsMissingColumns(t *testing.T) {
	raw := RawTable{
		Header: []string{"Status", "Active_YTD"},
		Rows: [][]string{
			{"Pending KYC verification", "10"},
			{"", ""},
			{"xyz", "abc"},
		},
	}

	records := Ingest(raw)

	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	wantStatus := []Status{StatusKYCPending, StatusOthers, StatusOthers}
	for i, r := range records {
		if r.Status != wantStatus[i] {
			t.Errorf("records[%d].Status = %q, want %q", i, r.Status, wantStatus[i])
		}
		if r.ActiveMTD != 0 {
			t.Errorf("records[%d].ActiveMTD = %v, want 0 for missing column", i, r.ActiveMTD)
		}
		if r.State != "" || r.AgentID != "" {
			t.Errorf("records[%d] missing text columns should be empty, got %+v", i, r)
		}
	}

	m := Aggregate(records, Filter{})
	if m.ActiveYTD != 10 {
		t.Errorf("ActiveYTD = %v, want 10", m.ActiveYTD)
	}
	if m.StatusCounts[StatusKYCPending] != 1 || m.StatusCounts[StatusOthers] != 2 {
		t.Errorf("StatusCounts = %v", m.StatusCounts)
	}
}

func TestIngest_HeaderCaseAndRaggedRows(t *testing.T) {
	raw := RawTable{
		Header: []string{"Agent_ID", "STATE", "District", "Retailer_Type", "Active_MTD"},
		Rows: [][]string{
			{"A1", "Bihar", "Patna", "Retail", "3", "extra cell"},
			{"A2", "Bihar"},
		},
	}

	records := Ingest(raw)

	// "STATE" is not the State column, so State is filled with "".
	want := []Record{
		{AgentID: "A1", District: "Patna", RetailerType: "Retail", ActiveMTD: 3, Status: StatusOthers},
		{AgentID: "A2", Status: StatusOthers},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("Ingest() = %+v, want %+v", records, want)
	}
}

func TestIngest_HeaderOnly(t *testing.T) {
	records := Ingest(RawTable{Header: Columns})
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
	if records == nil {
		t.Error("records should be empty, not nil")
	}
}

func TestMissingColumns(t *testing.T) {
	if got := MissingColumns(Columns); len(got) != 0 {
		t.Errorf("MissingColumns(Columns) = %v, want none", got)
	}

	got := MissingColumns([]string{"sn", "Agent_ID", "Extra"})
	if len(got) != len(Columns)-1 {
		t.Fatalf("MissingColumns() returned %d columns, want %d", len(got), len(Columns)-1)
	}
	if got[0] != ColSn {
		t.Errorf("first missing column = %q, want %q (lower-case sn does not match)", got[0], ColSn)
	}
}
