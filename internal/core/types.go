package core

import (
	"strconv"
	"time"
)

// Status is one of the six canonical retailer statuses.
type Status string

const (
	StatusApprovalPending     Status = "Approval Pending"
	StatusApprovalRejected    Status = "Approval Rejected"
	StatusOnBoarded           Status = "On-Boarded"
	StatusKYCPending          Status = "Qualified-(KYC Pending)"
	StatusReplacementRequired Status = "Replacment required" // label kept as shipped in existing exports
	StatusOthers              Status = "Others"
)

// NamedStatuses are the five statuses that have their own bucket.
// Others is everything outside this set.
var NamedStatuses = []Status{
	StatusApprovalPending,
	StatusApprovalRejected,
	StatusOnBoarded,
	StatusKYCPending,
	StatusReplacementRequired,
}

// AllStatuses lists every canonical status in display order.
var AllStatuses = append(append([]Status(nil), NamedStatuses...), StatusOthers)

// IsNamed reports whether s is one of the five named statuses.
func (s Status) IsNamed() bool {
	for _, n := range NamedStatuses {
		if s == n {
			return true
		}
	}
	return false
}

// Column names in canonical order. Input order doesn't matter; output always
// uses this order.
const (
	ColSn               = "Sn"
	ColAgentID          = "Agent_ID"
	ColRetailerID       = "Retailer_ID"
	ColName             = "Name"
	ColState            = "State"
	ColDistrict         = "District"
	ColMobNo            = "Mob_No"
	ColPinCode          = "Pin_Code"
	ColAddress          = "Address"
	ColStatus           = "Status"
	ColSubStatus        = "Sub_Status"
	ColActionableRemark = "Actionable_Remark"
	ColActiveYTD        = "Active_YTD"
	ColActiveMTD        = "Active_MTD"
	ColRetailerType     = "Retailer_Type"
	ColOnboardedDate    = "Onboarded_Date"
	ColFEDI             = "FE_DI"
	ColFEDIMobNo        = "FE_DI_Mob_No"
	ColAreaHead         = "Area_Head"
	ColAHMobile         = "AH_Mobile"
	ColAHEmailID        = "AH_Email_ID"
)

// Columns is the canonical 21-column order.
var Columns = []string{
	ColSn, ColAgentID, ColRetailerID, ColName, ColState, ColDistrict,
	ColMobNo, ColPinCode, ColAddress, ColStatus, ColSubStatus,
	ColActionableRemark, ColActiveYTD, ColActiveMTD, ColRetailerType,
	ColOnboardedDate, ColFEDI, ColFEDIMobNo, ColAreaHead, ColAHMobile,
	ColAHEmailID,
}

// Record is one retailer row after normalization.
type Record struct {
	Sn               string  `json:"Sn"`
	AgentID          string  `json:"Agent_ID"`
	RetailerID       string  `json:"Retailer_ID"`
	Name             string  `json:"Name"`
	State            string  `json:"State"`
	District         string  `json:"District"`
	MobNo            string  `json:"Mob_No"`
	PinCode          string  `json:"Pin_Code"`
	Address          string  `json:"Address"`
	Status           Status  `json:"Status"`
	SubStatus        string  `json:"Sub_Status"`
	ActionableRemark string  `json:"Actionable_Remark"`
	ActiveYTD        float64 `json:"Active_YTD"`
	ActiveMTD        float64 `json:"Active_MTD"`
	RetailerType     string  `json:"Retailer_Type"`
	OnboardedDate    string  `json:"Onboarded_Date"`
	FEDI             string  `json:"FE_DI"`
	FEDIMobNo        string  `json:"FE_DI_Mob_No"`
	AreaHead         string  `json:"Area_Head"`
	AHMobile         string  `json:"AH_Mobile"`
	AHEmailID        string  `json:"AH_Email_ID"`
}

// Values returns the record's cells in canonical column order, with numbers
// rendered without trailing zeros.
func (r Record) Values() []string {
	return []string{
		r.Sn, r.AgentID, r.RetailerID, r.Name, r.State, r.District,
		r.MobNo, r.PinCode, r.Address, string(r.Status), r.SubStatus,
		r.ActionableRemark, FormatNumber(r.ActiveYTD), FormatNumber(r.ActiveMTD),
		r.RetailerType, r.OnboardedDate, r.FEDI, r.FEDIMobNo, r.AreaHead,
		r.AHMobile, r.AHEmailID,
	}
}

// FormatNumber renders a counter as a plain number ("10", "2.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Table is one uploaded spreadsheet after normalization.
// A Table is never modified after it is built; uploads replace it.
type Table struct {
	ID       string
	FileName string
	LoadedAt time.Time
	Records  []Record
}

// Len returns the number of records, tolerating a nil table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// RawTable is a generic tabular input: a header row plus data rows.
// Rows may be shorter or longer than the header.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Filter holds optional exact-match constraints, combined with AND.
// An empty field means no restriction.
type Filter struct {
	State        string `json:"state"`
	District     string `json:"district"`
	RetailerType string `json:"type"`
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether r passes every non-empty constraint.
func (f Filter) Match(r Record) bool {
	if f.State != "" && r.State != f.State {
		return false
	}
	if f.District != "" && r.District != f.District {
		return false
	}
	if f.RetailerType != "" && r.RetailerType != f.RetailerType {
		return false
	}
	return true
}

// Metrics are the aggregate counters for a filtered subset.
type Metrics struct {
	ActiveYTD    float64        `json:"activeYtd"`
	ActiveMTD    float64        `json:"activeMtd"`
	TotalRecords int            `json:"totalRecords"`
	UniqueAgents int            `json:"uniqueAgents"`
	StatusCounts map[Status]int `json:"statusCounts"`
}

// FilterOptions are the distinct values offered in the filter dropdowns.
type FilterOptions struct {
	States        []string `json:"states"`
	Districts     []string `json:"districts"`
	RetailerTypes []string `json:"retailerTypes"`
}

// View is everything the dashboard needs to render one filter selection.
type View struct {
	TableID  string        `json:"tableId"`
	FileName string        `json:"fileName"`
	Filter   Filter        `json:"filter"`
	Metrics  Metrics       `json:"metrics"`
	Options  FilterOptions `json:"options"`
	Records  []Record      `json:"-"`
}
