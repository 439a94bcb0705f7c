package core

import (
	"reflect"
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{AgentID: "A1", State: "Bihar", District: "Patna", RetailerType: "Retail", Status: StatusOnBoarded, ActiveYTD: 10, ActiveMTD: 2},
		{AgentID: "A1", State: "Bihar", District: "Gaya", RetailerType: "Wholesale", Status: StatusKYCPending, ActiveYTD: 5, ActiveMTD: 1},
		{AgentID: "a1", State: "Odisha", District: "Puri", RetailerType: "Retail", Status: StatusApprovalRejected, ActiveYTD: 2.5},
		{AgentID: "", State: "Odisha", District: "Puri", RetailerType: "Retail", Status: StatusOthers},
		{AgentID: "A2", State: "Bihar", District: "Patna", RetailerType: "Retail", Status: StatusReplacementRequired, ActiveYTD: 1, ActiveMTD: 1},
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name       string
		filter     Filter
		wantTotal  int
		wantYTD    float64
		wantMTD    float64
		wantAgents int
		wantCounts map[Status]int
	}{
		{
			name:       "no filter",
			filter:     Filter{},
			wantTotal:  5,
			wantYTD:    18.5,
			wantMTD:    4,
			wantAgents: 3, // A1, a1, A2; blanks are not agents
			wantCounts: map[Status]int{
				StatusApprovalPending:     0,
				StatusApprovalRejected:    1,
				StatusOnBoarded:           1,
				StatusKYCPending:          1,
				StatusReplacementRequired: 1,
				StatusOthers:              1,
			},
		},
		{
			name:       "state and district",
			filter:     Filter{State: "Bihar", District: "Patna"},
			wantTotal:  2,
			wantYTD:    11,
			wantMTD:    3,
			wantAgents: 2,
			wantCounts: map[Status]int{
				StatusApprovalPending:     0,
				StatusApprovalRejected:    0,
				StatusOnBoarded:           1,
				StatusKYCPending:          0,
				StatusReplacementRequired: 1,
				StatusOthers:              0,
			},
		},
		{
			name:       "no match yields zeros",
			filter:     Filter{State: "Goa"},
			wantTotal:  0,
			wantAgents: 0,
			wantCounts: map[Status]int{
				StatusApprovalPending:     0,
				StatusApprovalRejected:    0,
				StatusOnBoarded:           0,
				StatusKYCPending:          0,
				StatusReplacementRequired: 0,
				StatusOthers:              0,
			},
		},
		{
			name:       "filter values are case sensitive",
			filter:     Filter{State: "bihar"},
			wantTotal:  0,
			wantCounts: map[Status]int{StatusApprovalPending: 0, StatusApprovalRejected: 0, StatusOnBoarded: 0, StatusKYCPending: 0, StatusReplacementRequired: 0, StatusOthers: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Aggregate(sampleRecords(), tt.filter)

			if m.TotalRecords != tt.wantTotal {
				t.Errorf("TotalRecords = %d, want %d", m.TotalRecords, tt.wantTotal)
			}
			if m.ActiveYTD != tt.wantYTD {
				t.Errorf("ActiveYTD = %v, want %v", m.ActiveYTD, tt.wantYTD)
			}
			if m.ActiveMTD != tt.wantMTD {
				t.Errorf("ActiveMTD = %v, want %v", m.ActiveMTD, tt.wantMTD)
			}
			if m.UniqueAgents != tt.wantAgents {
				t.Errorf("UniqueAgents = %d, want %d", m.UniqueAgents, tt.wantAgents)
			}
			if !reflect.DeepEqual(m.StatusCounts, tt.wantCounts) {
				t.Errorf("StatusCounts = %v, want %v", m.StatusCounts, tt.wantCounts)
			}
		})
	}
}

// TestAggregate_CountsSumToTotal checks that every record lands in exactly
// one status bucket.
func TestAggregate_CountsSumToTotal(t *testing.T) {
	filters := []Filter{{}, {State: "Bihar"}, {RetailerType: "Retail"}, {District: "Puri"}}
	for _, f := range filters {
		m := Aggregate(sampleRecords(), f)
		total := 0
		for _, n := range m.StatusCounts {
			total += n
		}
		if total != m.TotalRecords {
			t.Errorf("filter %+v: status counts sum to %d, want %d", f, total, m.TotalRecords)
		}
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	records := sampleRecords()
	reversed := make([]Record, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	f := Filter{RetailerType: "Retail"}
	if a, b := Aggregate(records, f), Aggregate(reversed, f); !reflect.DeepEqual(a, b) {
		t.Errorf("Aggregate depends on order: %+v vs %+v", a, b)
	}
}

func TestAggregate_Empty(t *testing.T) {
	m := Aggregate(nil, Filter{})
	if m.TotalRecords != 0 || m.ActiveYTD != 0 || m.UniqueAgents != 0 {
		t.Errorf("Aggregate(nil) = %+v, want zeros", m)
	}
	if len(m.StatusCounts) != len(AllStatuses) {
		t.Errorf("StatusCounts has %d keys, want %d", len(m.StatusCounts), len(AllStatuses))
	}
}

func TestSelect_ZeroFilterKeepsAll(t *testing.T) {
	records := sampleRecords()
	if got := Select(records, Filter{}); len(got) != len(records) {
		t.Errorf("Select() kept %d records, want %d", len(got), len(records))
	}
}

func TestBuildFilterOptions(t *testing.T) {
	got := BuildFilterOptions(sampleRecords())
	want := FilterOptions{
		States:        []string{"Bihar", "Odisha"},
		Districts:     []string{"Gaya", "Patna", "Puri"},
		RetailerTypes: []string{"Retail", "Wholesale"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildFilterOptions() = %+v, want %+v", got, want)
	}
}
