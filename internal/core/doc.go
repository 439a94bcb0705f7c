// Package core provides the business logic for the field team retailer
// dashboard.
//
// This package holds all domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # Status taxonomy
//
// Free-text statuses from the field are normalized by [Classify] into six
// canonical values. Rules are tried in a fixed order and the first match
// wins, so "Rejected - KYC incomplete" is a KYC case:
//
//	Qualified-(KYC Pending)  anything mentioning kyc
//	Approval Pending         "approval pending", or "pending" without kyc
//	Approval Rejected        "reject"
//	On-Boarded               "on-board", "on board", or "on" with "board"
//	Replacment required      "replac"
//	Others                   everything else, including empty input
//
// # Data flow
//
//  1. A spreadsheet is parsed into a [RawTable] (see package spreadsheet)
//  2. [Ingest] fills missing columns, coerces counters and classifies Status
//  3. The resulting [Table] replaces the one held by the [RecordStore]
//  4. [Aggregate] and [ExportCSV] read the current table with a [Filter]
//
// # Error Handling
//
// Unreadable uploads fail with [*ParseError] and leave the store untouched.
// Views and exports before the first upload fail with [ErrNoData]. Technical
// errors are mapped to user-facing messages by [MapError].
package core
