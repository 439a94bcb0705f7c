package core

// # Error Codes Reference
//
// User-facing errors carry a code that users can quote to support.
//
// # Data Errors (DATA001-DATA099)
//
//	DATA001 - No data: nothing has been uploaded yet
//	          Action: Upload a spreadsheet first
//	          Patterns: "no data uploaded"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: upload exceeds the configured size limit
//	FILE002 - Invalid spreadsheet: the file could not be parsed
//	FILE003 - Encoding error: the file contains invalid characters
//	FILE004 - No file: no file was selected
//	FILE005 - Empty file: the uploaded file has no header row
//	FILE006 - Unsupported type: only .xlsx and .csv are accepted
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: too many uploads in progress
//	UPL004 - Request cancelled
//	UPL005 - Request timeout
//
// # Upload Log Errors (DB001-DB099)
//
//	DB004 - Connection refused: upload log database unreachable
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Too many requests
//
// Anything else maps to ERR000; check the logs for the technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns come before general ones. For a
// *ParseError only the wrapped cause is matched; the file name is user input
// and never picks the code.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
	Detail  string // Underlying parse failure, set for *ParseError only
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "no data uploaded",
		msg: UserMessage{
			Message: "No data has been uploaded yet",
			Action:  "Upload a spreadsheet first",
			Code:    "DATA001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select an .xlsx or .csv file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Remove unused sheets or split the file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a spreadsheet with a header row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Save the sheet as .xlsx or .csv and upload again",
			Code:    "FILE006",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save file as UTF-8 encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "invalid spreadsheet",
		msg:     invalidSpreadsheetMessage,
	},
	{
		pattern: "too many concurrent uploads",
		msg: UserMessage{
			Message: "System is busy processing other uploads",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try uploading a smaller file or check your connection",
			Code:    "UPL005",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var invalidSpreadsheetMessage = UserMessage{
	Message: "The spreadsheet could not be read",
	Action:  "Check that the file opens in Excel and is not password protected",
	Code:    "FILE002",
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A *ParseError always yields a FILE code and carries its cause in Detail.
// If no pattern matches, the ERR000 fallback is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var pe *ParseError
	if errors.As(err, &pe) && pe.Err != nil {
		msg, ok := matchPattern(pe.Err)
		if !ok || !strings.HasPrefix(msg.Code, "FILE") {
			msg = invalidSpreadsheetMessage
		}
		msg.Detail = pe.Err.Error()
		return msg
	}

	if msg, ok := matchPattern(err); ok {
		return msg
	}
	return defaultMessage
}

func matchPattern(err error) (UserMessage, bool) {
	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg, true
		}
	}
	return UserMessage{}, false
}

// FormatUserError formats err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
